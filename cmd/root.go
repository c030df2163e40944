package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Swaminathan-5/midi-maestro/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "midi-maestro",
	Short: "Musicological analysis of MIDI performances",
	Long: `midi-maestro recovers musical structure from a MIDI file:
key, chord progression, rhythmic pulse and melodic shape.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
