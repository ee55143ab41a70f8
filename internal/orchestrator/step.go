// Package orchestrator composes the router with the tool layer and
// applies the single fail-safe rule: every tool failure becomes a
// human handoff.
package orchestrator

import (
	"github.com/ppiankov/triagewatch/internal/model"
	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

// Step runs one message through the pipeline.
//
// Non-tool actions return the routed outcome untouched; a supplied tool
// name or scenario is ignored so callers cannot force an unintended
// tool call. For CALL_TOOL the simulator runs once: success leaves the
// outcome unchanged, any simulated failure forces ESCALATE with the
// intent preserved and the failure message attached. No retries, no
// fallback to unverified data.
//
// The returned error is reserved for configuration faults (an invalid
// scenario value); those abort the run instead of escalating.
func Step(rules *router.Rules, sim *tool.Simulator, message, toolName string, scenario model.Scenario) (model.RouteOutcome, error) {
	outcome := router.Classify(rules, message)

	if outcome.Action != model.CallTool {
		return outcome, nil
	}

	if toolName == "" {
		toolName = router.ToolForIntent(outcome.Intent)
	}
	if scenario == "" {
		scenario = model.ScenarioOK
	}

	_, err := sim.Invoke(toolName, map[string]any{"message": message}, scenario)
	if err == nil {
		// The call validates that the path is reachable; it does not
		// mutate the routing decision.
		return outcome, nil
	}

	if failure, ok := tool.AsFailure(err); ok {
		return model.RouteOutcome{
			Intent:    outcome.Intent,
			Action:    model.Escalate,
			ToolError: failure.Error(),
		}, nil
	}

	// Malformed fixture: fatal, never a silent escalation.
	return model.RouteOutcome{}, err
}
