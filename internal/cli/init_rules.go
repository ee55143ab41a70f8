package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/triagewatch/internal/router"
)

var initRulesOut string

func init() {
	rootCmd.AddCommand(initRulesCmd)
	initRulesCmd.Flags().StringVar(&initRulesOut, "out", "", "Output path (default: ~/.triagewatch/rules.yaml)")
}

var initRulesCmd = &cobra.Command{
	Use:   "init-rules",
	Short: "Generate default rules.yaml with comments",
	Long: "Creates a commented routing rules file with the built-in marker lists.\n" +
		"Edit it to customize classification markers; precedence is fixed.",
	RunE: runInitRules,
}

func runInitRules(cmd *cobra.Command, args []string) error {
	path := initRulesOut
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir := filepath.Join(home, ".triagewatch")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
		path = filepath.Join(dir, "rules.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("rules file already exists at %s", path)
	}

	if err := os.WriteFile(path, []byte(router.DefaultRulesYAML()), 0644); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
