// Package mcp exposes the triage pipeline as MCP tools over stdio, so
// agents can consult the router without embedding its rules.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

// Config holds MCP server configuration.
type Config struct {
	RulesPath string
	ToolsPath string
}

// Server wraps the MCP SDK server around the triage pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	rules     *router.Rules
	sim       *tool.Simulator
}

// New creates an MCP server with loaded rules and tool registry.
func New(cfg Config) (*Server, error) {
	rules, err := router.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	registry, err := tool.LoadRegistry(cfg.ToolsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool registry: %w", err)
	}

	s := &Server{
		rules: rules,
		sim:   tool.New(registry),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "triagewatch",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds the triage tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "triagewatch_route",
		Description: "Classify a support message into an intent and prescribed action. Deterministic, no side effects.",
	}, s.handleRoute)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "triagewatch_step",
		Description: "Run a support message through the full triage pipeline, including the simulated tool call for CALL_TOOL routes. Tool failures surface as an ESCALATE outcome.",
	}, s.handleStep)
}
