package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/Swaminathan-5/midi-maestro/analyze"
	"github.com/Swaminathan-5/midi-maestro/logging"
	"github.com/Swaminathan-5/midi-maestro/midi"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analysis results over HTTP",
	Long:  `Serves analysis results over HTTP`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

type analyzeRequest struct {
	Path          string  `json:"path"`
	WindowSeconds float64 `json:"window_seconds,omitempty"`
	HopSeconds    float64 `json:"hop_seconds,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func serve() error {
	r := mux.NewRouter()
	r.HandleFunc("/health", handleHealth).Methods("GET")
	r.HandleFunc("/analyze", handleAnalyze).Methods("POST")

	handler := cors.Default().Handler(r)
	addr := fmt.Sprintf(":%d", servePort)

	logging.Info("listening", logging.Fields{"addr": addr})
	return http.ListenAndServe(addr, handler)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path is required"})
		return
	}

	piece, err := midi.Load(req.Path)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	analyzer := analyze.NewAnalyzerWithParams(analyze.Params{
		WindowSeconds: req.WindowSeconds,
		HopSeconds:    req.HopSeconds,
	})
	writeJSON(w, http.StatusOK, analyzer.Analyze(piece))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error(err, "encoding response")
	}
}
