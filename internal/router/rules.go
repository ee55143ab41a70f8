package router

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/triagewatch/internal/model"
)

// Rules holds the marker lists the classifier matches against.
// All matching is lower-cased substring containment; a marker list
// matches when any of its entries appears in the message.
type Rules struct {
	Injection      []string `yaml:"injection"`
	Paid           []string `yaml:"paid"`
	Access         []string `yaml:"access"`
	Declined       []string `yaml:"declined"`
	Pending        []string `yaml:"pending"`
	Billing        []string `yaml:"billing"`
	Contact        []string `yaml:"contact"`
	AccountHelp    []string `yaml:"account_help"`
	PaymentContext []string `yaml:"payment_context"`
}

// DefaultRules returns the built-in marker lists.
func DefaultRules() *Rules {
	return &Rules{
		Injection: []string{
			// instruction override
			"ignore all", "ignore previous", "ignore policies",
			"disregard your instructions", "new instructions:",
			// fake system / developer-mode framing
			"system:", "developer mode", "you are now", "pretend you are",
			// credential / data extraction
			"reveal credential", "show me the credential", "dump the database",
			"select * from", "drop table", "give me the gate code", "bypass",
			// urgency pretext
			"emergency override", "supervisor override", "do it now or",
		},
		Paid: []string{
			"i paid", "paid ", "payment went through", "charged", "posted", "receipt",
		},
		Access: []string{
			"access", "gate", "can't access", "cannot access",
			"locked out", "access denied", "unit",
		},
		Declined: []string{
			"declined", "failed", "error", "won't go through", "didn't go through",
		},
		Pending: []string{
			"pending", "processing", "not posted",
		},
		Billing: []string{
			"late fee", "charged twice", "refund", "credit", "invoice", "fee",
		},
		Contact: []string{
			"phone number", "office hours", "hours", "location", "address", "contact",
		},
		AccountHelp: []string{
			"can't log in", "cannot log in", "log in", "login",
			"password", "reset", "update my card", "my account",
		},
		PaymentContext: []string{
			"pay", "paid", "charge", "card", "bill",
		},
	}
}

// LoadRules loads marker lists from a YAML file. Empty path falls back
// to ~/.triagewatch/rules.yaml. Missing file returns defaults. Fields
// present in the file replace the corresponding default list entirely.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultRules(), nil
		}
		path = filepath.Join(home, ".triagewatch", "rules.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	return rules, nil
}

// ToolForIntent maps a CALL_TOOL intent to its tool name.
func ToolForIntent(intent model.Intent) string {
	switch intent {
	case model.PaidNoAccess:
		return "check_payment_access"
	case model.BillingQuestion:
		return "lookup_billing"
	default:
		return ""
	}
}

// DefaultRulesYAML returns a commented YAML string for init-rules.
func DefaultRulesYAML() string {
	return `# triagewatch routing rules
# Generated by: triagewatch init-rules
#
# Each list below replaces the built-in marker list of the same name
# when present. Matching is case-insensitive substring containment.
#
# Precedence (cannot be changed):
#   1. injection                  -> PROMPT_INJECTION / REFUSE
#   2. paid + access, no declined -> PAID_NO_ACCESS   / CALL_TOOL
#   3. declined + payment_context -> PAYMENT_FAILED   / ASK_CLARIFY
#   4. pending + payment_context  -> PAYMENT_PENDING  / ASK_CLARIFY
#   5. billing                    -> BILLING_QUESTION / CALL_TOOL
#   6. contact                    -> CONTACT_INFO     / USE_VERIFIED_SOURCE
#   7. account_help               -> ACCOUNT_HELP     / ESCALATE
#   8. fallback                   -> UNKNOWN          / ASK_CLARIFY

injection:
  - ignore all
  - ignore policies
  - "system:"
  - developer mode
  - reveal credential
  - give me the gate code
  - bypass

paid:
  - i paid
  - "paid "
  - payment went through
  - charged
  - receipt

access:
  - access
  - gate
  - locked out
  - unit

declined:
  - declined
  - failed
  - won't go through

pending:
  - pending
  - processing
  - not posted

billing:
  - late fee
  - charged twice
  - refund
  - invoice
  - fee

contact:
  - phone number
  - office hours
  - hours
  - contact

account_help:
  - log in
  - login
  - password
  - reset
  - update my card

payment_context:
  - pay
  - paid
  - charge
  - card
  - bill
`
}
