package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "triagewatch",
	Short: "Deterministic triage router with a golden-set evaluation gate",
	Long: "Routes support messages to a fixed intent/action taxonomy, simulates the\n" +
		"tool calls some routes require, and grades the combined behavior against\n" +
		"a golden test set. Every tool failure becomes a human handoff; contact\n" +
		"answers only ever come from a verified source.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
