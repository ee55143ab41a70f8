package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/triagewatch/internal/model"
	"github.com/ppiankov/triagewatch/internal/orchestrator"
	"github.com/ppiankov/triagewatch/internal/router"
)

// RouteInput defines parameters for the triagewatch_route tool.
type RouteInput struct {
	Message string `json:"message" jsonschema:"support message to classify"`
}

// RouteOutput contains the routing decision.
type RouteOutput struct {
	Intent string `json:"intent"`
	Action string `json:"action"`
}

// StepInput defines parameters for the triagewatch_step tool.
type StepInput struct {
	Message  string `json:"message" jsonschema:"support message to triage"`
	Tool     string `json:"tool,omitempty" jsonschema:"tool name override for CALL_TOOL routes"`
	Scenario string `json:"scenario,omitempty" jsonschema:"tool scenario (ok/timeout/auth_error/missing_fields), defaults to ok"`
}

// StepOutput contains the final pipeline outcome.
type StepOutput struct {
	Intent    string `json:"intent"`
	Action    string `json:"action"`
	ToolError string `json:"tool_error,omitempty"`
	Escalated bool   `json:"escalated,omitempty"`
}

func (s *Server) handleRoute(ctx context.Context, req *mcpsdk.CallToolRequest, input RouteInput) (*mcpsdk.CallToolResult, RouteOutput, error) {
	outcome := router.Classify(s.rules, input.Message)
	return nil, RouteOutput{
		Intent: string(outcome.Intent),
		Action: string(outcome.Action),
	}, nil
}

func (s *Server) handleStep(ctx context.Context, req *mcpsdk.CallToolRequest, input StepInput) (*mcpsdk.CallToolResult, StepOutput, error) {
	scenario := model.ScenarioOK
	if input.Scenario != "" {
		parsed, err := model.ParseScenario(input.Scenario)
		if err != nil {
			return nil, StepOutput{}, err
		}
		scenario = parsed
	}

	outcome, err := orchestrator.Step(s.rules, s.sim, input.Message, input.Tool, scenario)
	if err != nil {
		return nil, StepOutput{}, err
	}

	return nil, StepOutput{
		Intent:    string(outcome.Intent),
		Action:    string(outcome.Action),
		ToolError: outcome.ToolError,
		Escalated: outcome.Action == model.Escalate,
	}, nil
}
