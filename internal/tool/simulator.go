package tool

import (
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/triagewatch/internal/model"
)

// ErrUnknownScenario marks a malformed fixture. It is a configuration
// error, distinct from the three simulated business failures.
var ErrUnknownScenario = errors.New("unknown tool scenario")

// Failure is the closed set of simulated tool failures. Only *Timeout,
// *AuthError, and *MissingFields implement it.
type Failure interface {
	error
	failure()
}

// Timeout is a simulated timeout during tool execution.
type Timeout struct {
	Tool  string
	After time.Duration
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("tool %q timed out after %s", e.Tool, e.After)
}

func (*Timeout) failure() {}

// AuthError is a simulated authentication/authorization failure.
type AuthError struct {
	Tool string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("tool %q authentication failed: invalid API key", e.Tool)
}

func (*AuthError) failure() {}

// MissingFields is a simulated missing-input failure. Field names the
// absent required field.
type MissingFields struct {
	Tool  string
	Field string
}

func (e *MissingFields) Error() string {
	return fmt.Sprintf("tool %q missing required field: %q", e.Tool, e.Field)
}

func (*MissingFields) failure() {}

// AsFailure extracts a simulated business failure from an error chain.
func AsFailure(err error) (Failure, bool) {
	var t *Timeout
	if errors.As(err, &t) {
		return t, true
	}
	var a *AuthError
	if errors.As(err, &a) {
		return a, true
	}
	var m *MissingFields
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// Simulator returns deterministic synthetic tool responses.
type Simulator struct {
	registry Registry

	// TimeoutBudget is the delay the timeout scenario reports and, when
	// Delay is set, actually waits. Reporting and waiting are separate
	// so the full suite runs in well under a second.
	TimeoutBudget time.Duration
	Delay         time.Duration
}

// New creates a Simulator over a payload registry. A nil registry uses
// the built-in synthetic payloads.
func New(registry Registry) *Simulator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Simulator{
		registry:      registry,
		TimeoutBudget: 5 * time.Second,
	}
}

// Invoke simulates one tool call.
//
// ok returns the registry payload for the tool. timeout, auth_error and
// missing_fields fail with the corresponding Failure. Any other
// scenario fails with ErrUnknownScenario; callers must be able to tell
// "tool said no" from "fixture is malformed".
func (s *Simulator) Invoke(toolName string, payload map[string]any, scenario model.Scenario) (map[string]any, error) {
	switch scenario {
	case model.ScenarioTimeout:
		if s.Delay > 0 {
			time.Sleep(s.Delay)
		}
		return nil, &Timeout{Tool: toolName, After: s.TimeoutBudget}

	case model.ScenarioAuthError:
		return nil, &AuthError{Tool: toolName}

	case model.ScenarioMissingFields:
		return nil, &MissingFields{Tool: toolName, Field: "account_id"}

	case model.ScenarioOK:
		return s.registry.respond(toolName, payload), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}
}
