package analyze

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Swaminathan-5/midi-maestro/algorithms/chroma"
	"github.com/Swaminathan-5/midi-maestro/logging"
)

// Save writes the full result as JSON plus the tabular sub-results as
// CSV files into outDir, creating it if needed.
func Save(result *Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if err := saveJSON(result, filepath.Join(outDir, "analysis_results.json")); err != nil {
		return err
	}

	csvs := []struct {
		name  string
		write func(w *csv.Writer) error
	}{
		{"chords.csv", result.writeChordsCSV},
		{"tempo_changes.csv", result.writeTempoCSV},
		{"note_density.csv", result.writeDensityCSV},
		{"pitch_class_histogram.csv", result.writePitchClassCSV},
		{"melody_notes.csv", result.writeMelodyCSV},
	}

	for _, c := range csvs {
		if err := saveCSV(filepath.Join(outDir, c.name), c.write); err != nil {
			return err
		}
	}

	logging.Info("results saved", logging.Fields{"dir": outDir})
	return nil
}

func saveJSON(result *Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func saveCSV(path string, write func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func (r *Result) writeChordsCSV(w *csv.Writer) error {
	if err := w.Write([]string{"time_sec", "chord", "confidence"}); err != nil {
		return err
	}
	for _, c := range r.Harmony.Chords {
		if err := w.Write([]string{formatFloat(c.Time), c.Label, formatFloat(c.Confidence)}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) writeTempoCSV(w *csv.Writer) error {
	if err := w.Write([]string{"time_sec", "bpm"}); err != nil {
		return err
	}
	for _, tc := range r.Rhythm.TempoChanges {
		if err := w.Write([]string{formatFloat(tc.Time), formatFloat(tc.BPM)}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) writeDensityCSV(w *csv.Writer) error {
	if err := w.Write([]string{"time_sec", "density"}); err != nil {
		return err
	}
	for i, t := range r.Rhythm.DensityTimes {
		if err := w.Write([]string{formatFloat(t), formatFloat(r.Rhythm.Density[i])}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) writePitchClassCSV(w *csv.Writer) error {
	if err := w.Write([]string{"pitch_class", "proportion"}); err != nil {
		return err
	}
	for pc, v := range r.PitchClass {
		if err := w.Write([]string{chroma.PitchClassNames[pc], formatFloat(v)}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) writeMelodyCSV(w *csv.Writer) error {
	if err := w.Write([]string{"pitch", "start", "end", "velocity", "instrument"}); err != nil {
		return err
	}
	for _, n := range r.Melody.Notes {
		row := []string{
			strconv.Itoa(n.Pitch),
			formatFloat(n.Start),
			formatFloat(n.End),
			strconv.Itoa(n.Velocity),
			strconv.Itoa(n.Instrument),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
