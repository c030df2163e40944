package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Swaminathan-5/midi-maestro/analyze"
	"github.com/Swaminathan-5/midi-maestro/midi"
)

var (
	analyzeMidiPath string
	analyzeOutDir   string
	analyzeWindow   float64
	analyzeHop      float64
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMidiPath, "midi", "", "path to MIDI file (.mid)")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "outdir", "analysis_outputs", "output directory")
	analyzeCmd.Flags().Float64Var(&analyzeWindow, "window", 0.5, "chord analysis window in seconds")
	analyzeCmd.Flags().Float64Var(&analyzeHop, "hop", 0.1, "chroma hop length in seconds")
	analyzeCmd.MarkFlagRequired("midi")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyzes a MIDI file and writes JSON/CSV results",
	Long:  `Analyzes a MIDI file and writes JSON/CSV results`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

func runAnalyze() error {
	piece, err := midi.Load(analyzeMidiPath)
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzerWithParams(analyze.Params{
		WindowSeconds: analyzeWindow,
		HopSeconds:    analyzeHop,
	})
	result := analyzer.Analyze(piece)

	if err := analyze.Save(result, analyzeOutDir); err != nil {
		return err
	}

	fmt.Printf("Analysis complete. Results saved to: %s\n", analyzeOutDir)
	fmt.Printf("Detected key: %s (confidence: %.3f)\n", result.Key.Key, result.Key.Confidence)
	fmt.Printf("Duration: %.2f seconds\n", result.Basic.Duration)
	fmt.Printf("Total notes: %d\n", result.Basic.TotalNotes)
	return nil
}
