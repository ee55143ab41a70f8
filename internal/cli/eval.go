package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/eval"
	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

var (
	evalCases     string
	evalRules     string
	evalTools     string
	evalThreshold float64
	evalReport    string
	evalFormat    string
)

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalCases, "cases", "", "Path to golden set JSONL (required)")
	evalCmd.Flags().StringVar(&evalRules, "rules", "", "Path to routing rules YAML (optional)")
	evalCmd.Flags().StringVar(&evalTools, "tools", "", "Path to tool registry YAML (optional)")
	evalCmd.Flags().Float64Var(&evalThreshold, "threshold", eval.DefaultThreshold, "Pass-rate gate in [0,1]")
	evalCmd.Flags().StringVar(&evalReport, "report", "", "Write JSON report artifact to this path (optional)")
	evalCmd.Flags().StringVarP(&evalFormat, "format", "f", "text", "Output format (text|json)")
	evalCmd.MarkFlagRequired("cases")
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Replay the golden set and enforce the pass-rate gate",
	Long: "Loads golden test cases, drives each through the triage pipeline,\n" +
		"aggregates pass/fail by category, and applies the pass-rate threshold.\n\n" +
		"Exit code 0 only when the gate passes. Malformed fixtures abort the run.\n" +
		"Use in CI to gate routing changes on golden-set correctness.",
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	if evalThreshold < 0 || evalThreshold > 1 {
		return fmt.Errorf("threshold %v out of range [0,1]", evalThreshold)
	}

	cases, err := eval.LoadCases(evalCases)
	if err != nil {
		return err
	}

	rules, err := router.LoadRules(evalRules)
	if err != nil {
		return err
	}

	registry, err := tool.LoadRegistry(evalTools)
	if err != nil {
		return err
	}

	report, err := eval.Run(cases, eval.Options{
		Rules:     rules,
		Simulator: tool.New(registry),
		Threshold: evalThreshold,
	})
	if err != nil {
		return err
	}

	switch evalFormat {
	case "json":
		out, err := eval.FormatJSON(report)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(eval.FormatText(report))
	}

	if evalReport != "" {
		if err := eval.WriteFile(report, evalReport); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", evalReport)
	}

	// Binary gate: pass or fail, no partial-credit exit codes.
	if !report.Passed {
		os.Exit(1)
	}

	return nil
}
