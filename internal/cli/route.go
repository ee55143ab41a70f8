package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/router"
)

var (
	routeRules  string
	routeFormat string
)

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVar(&routeRules, "rules", "", "Path to routing rules YAML (optional)")
	routeCmd.Flags().StringVarP(&routeFormat, "format", "f", "text", "Output format (text|json)")
}

var routeCmd = &cobra.Command{
	Use:   "route <message>",
	Short: "Classify a single message without invoking any tool",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoute,
}

func runRoute(cmd *cobra.Command, args []string) error {
	rules, err := router.LoadRules(routeRules)
	if err != nil {
		return err
	}

	outcome := router.Classify(rules, strings.Join(args, " "))

	switch routeFormat {
	case "json":
		out, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		fmt.Printf("intent: %s\naction: %s\n", outcome.Intent, outcome.Action)
	}

	return nil
}
