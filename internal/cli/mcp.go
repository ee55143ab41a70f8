package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	triagemcp "github.com/ppiankov/triagewatch/internal/mcp"
)

var (
	mcpRules string
	mcpTools string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRules, "rules", "", "Path to routing rules YAML (optional)")
	mcpCmd.Flags().StringVar(&mcpTools, "tools", "", "Path to tool registry YAML (optional)")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs triagewatch as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the triage tools: route, step.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := triagemcp.New(triagemcp.Config{
		RulesPath: mcpRules,
		ToolsPath: mcpTools,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "triagewatch MCP server running on stdio")

	return srv.Run(ctx)
}
