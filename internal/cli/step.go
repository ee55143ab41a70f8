package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/model"
	"github.com/ppiankov/triagewatch/internal/orchestrator"
	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

var (
	stepRules    string
	stepTools    string
	stepTool     string
	stepScenario string
	stepFormat   string
)

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringVar(&stepRules, "rules", "", "Path to routing rules YAML (optional)")
	stepCmd.Flags().StringVar(&stepTools, "tools", "", "Path to tool registry YAML (optional)")
	stepCmd.Flags().StringVar(&stepTool, "tool", "", "Tool name override for CALL_TOOL routes")
	stepCmd.Flags().StringVar(&stepScenario, "scenario", "ok", "Tool scenario (ok|timeout|auth_error|missing_fields)")
	stepCmd.Flags().StringVarP(&stepFormat, "format", "f", "text", "Output format (text|json)")
}

var stepCmd = &cobra.Command{
	Use:   "step <message>",
	Short: "Run one message through the full triage pipeline",
	Long: "Classifies the message and, for CALL_TOOL routes, invokes the simulated\n" +
		"tool under the requested scenario. Tool failures surface as ESCALATE.",
	Args: cobra.MinimumNArgs(1),
	RunE: runStep,
}

func runStep(cmd *cobra.Command, args []string) error {
	scenario, err := model.ParseScenario(stepScenario)
	if err != nil {
		return err
	}

	rules, err := router.LoadRules(stepRules)
	if err != nil {
		return err
	}

	registry, err := tool.LoadRegistry(stepTools)
	if err != nil {
		return err
	}

	outcome, err := orchestrator.Step(rules, tool.New(registry), strings.Join(args, " "), stepTool, scenario)
	if err != nil {
		return err
	}

	switch stepFormat {
	case "json":
		out, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		fmt.Printf("intent: %s\naction: %s\n", outcome.Intent, outcome.Action)
		if outcome.ToolError != "" {
			fmt.Printf("tool_error: %s\n", outcome.ToolError)
		}
	}

	return nil
}
