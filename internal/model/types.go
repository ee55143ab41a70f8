package model

import "fmt"

// Intent is the classified purpose of a support message.
type Intent string

const (
	PaidNoAccess    Intent = "PAID_NO_ACCESS"
	PaymentFailed   Intent = "PAYMENT_FAILED"
	PaymentPending  Intent = "PAYMENT_PENDING"
	BillingQuestion Intent = "BILLING_QUESTION"
	ContactInfo     Intent = "CONTACT_INFO"
	AccountHelp     Intent = "ACCOUNT_HELP"
	PromptInjection Intent = "PROMPT_INJECTION"
	Unknown         Intent = "UNKNOWN"
)

// Action is the prescribed response strategy for an intent.
type Action string

const (
	CallTool          Action = "CALL_TOOL"
	UseVerifiedSource Action = "USE_VERIFIED_SOURCE"
	Escalate          Action = "ESCALATE"
	AskClarify        Action = "ASK_CLARIFY"
	Refuse            Action = "REFUSE"
)

// Scenario selects the simulated outcome of a tool call.
type Scenario string

const (
	ScenarioOK            Scenario = "ok"
	ScenarioTimeout       Scenario = "timeout"
	ScenarioAuthError     Scenario = "auth_error"
	ScenarioMissingFields Scenario = "missing_fields"
)

var intents = map[Intent]bool{
	PaidNoAccess:    true,
	PaymentFailed:   true,
	PaymentPending:  true,
	BillingQuestion: true,
	ContactInfo:     true,
	AccountHelp:     true,
	PromptInjection: true,
	Unknown:         true,
}

var actions = map[Action]bool{
	CallTool:          true,
	UseVerifiedSource: true,
	Escalate:          true,
	AskClarify:        true,
	Refuse:            true,
}

// ParseIntent validates an intent string from a fixture.
// Unknown values are a configuration error, never coerced.
func ParseIntent(s string) (Intent, error) {
	if intents[Intent(s)] {
		return Intent(s), nil
	}
	return "", fmt.Errorf("unknown intent %q", s)
}

// ParseAction validates an action string from a fixture.
func ParseAction(s string) (Action, error) {
	if actions[Action(s)] {
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// ParseScenario validates a tool scenario value. The set is closed:
// anything outside it is a malformed fixture, not a tool failure.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case ScenarioOK, ScenarioTimeout, ScenarioAuthError, ScenarioMissingFields:
		return Scenario(s), nil
	default:
		return "", fmt.Errorf("unknown tool scenario %q (must be one of: ok, timeout, auth_error, missing_fields)", s)
	}
}

// Category groups golden test cases for per-category reporting.
type Category string

const (
	CategoryPayment   Category = "payment"
	CategoryBilling   Category = "billing"
	CategoryContact   Category = "contact"
	CategoryAccount   Category = "account"
	CategoryInjection Category = "injection"
	CategoryEdge      Category = "edge"
)

// ParseCategory validates a test-case category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryPayment, CategoryBilling, CategoryContact,
		CategoryAccount, CategoryInjection, CategoryEdge:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// RouteOutcome is the result of classifying one message, possibly
// adjusted by the orchestrator after a tool call.
type RouteOutcome struct {
	Intent    Intent `json:"intent"`
	Action    Action `json:"action"`
	ToolError string `json:"tool_error,omitempty"`
}
