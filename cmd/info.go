package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Swaminathan-5/midi-maestro/midi"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <file.mid>",
	Short: "Prints metadata about a MIDI file",
	Long:  `Prints metadata about a MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

func runInfo(path string) error {
	piece, err := midi.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Duration: %.2f seconds\n", piece.EndTime())
	fmt.Printf("Notes: %d\n", piece.TotalNotes())
	fmt.Printf("Tempo changes: %d\n", len(piece.TempoChanges))
	for _, tc := range piece.TempoChanges {
		fmt.Printf("  %.2fs: %.1f BPM\n", tc.Time, tc.BPM)
	}
	fmt.Printf("Time signatures: %d\n", len(piece.TimeSignatures))
	for _, ts := range piece.TimeSignatures {
		fmt.Printf("  %.2fs: %d/%d\n", ts.Time, ts.Numerator, ts.Denominator)
	}
	fmt.Printf("Instruments: %d\n", len(piece.Instruments))
	for _, inst := range piece.Instruments {
		fmt.Printf("  %s (program %d, %d notes)\n", inst.Name, inst.Program, inst.NoteCount)
	}
	return nil
}
