package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/hygiene"
)

var (
	hygieneRoot   string
	hygieneCases  string
	hygieneBanned []string
)

func init() {
	rootCmd.AddCommand(hygieneCmd)
	hygieneCmd.Flags().StringVar(&hygieneRoot, "root", ".", "Tree to scan for banned terms")
	hygieneCmd.Flags().StringVar(&hygieneCases, "cases", "tests.jsonl", "Golden set to validate")
	hygieneCmd.Flags().StringSliceVar(&hygieneBanned, "banned", nil, "Banned terms (default: built-in list)")
}

var hygieneCmd = &cobra.Command{
	Use:   "hygiene",
	Short: "Run the security hygiene gate",
	Long: "Scans source and fixture files for banned confidential terms and\n" +
		"validates the golden set: no URLs or emails, contact cases must expect\n" +
		"USE_VERIFIED_SOURCE, tool scenarios must be valid.\n\n" +
		"Exit code 0 if all checks pass, 1 if any fail.",
	RunE: runHygiene,
}

func runHygiene(cmd *cobra.Command, args []string) error {
	results, ok := hygiene.Run(hygieneRoot, hygieneCases, hygieneBanned)

	for _, r := range results {
		if r.OK {
			fmt.Printf("  PASS  %s\n", r.Label)
		} else {
			fmt.Printf("  FAIL  %s\n", r.Label)
			for _, v := range r.Violations {
				fmt.Printf("        %s\n", v)
			}
		}
		for _, w := range r.Warnings {
			fmt.Printf("  warn  %s\n", w)
		}
	}

	if !ok {
		fmt.Println("\nHygiene FAIL")
		os.Exit(1)
	}

	fmt.Println("\nHygiene PASS")
	return nil
}
