package router

import (
	"strings"

	"github.com/ppiankov/triagewatch/internal/model"
)

// Classify routes a support message to an intent and action.
//
// Precedence (must not be changed, first match wins):
//  1. Injection markers: refuse, regardless of business content
//  2. Paid but no access: tool lookup path
//  3. Declined payment: clarify with the user, never guess
//  4. Pending payment: clarify
//  5. Billing question: tool lookup path
//  6. Contact info: verified source only, never a tool, never free text
//  7. Account help: identity cannot be verified by pattern, escalate
//  8. Fallback: ask a clarifying question rather than invent
//
// Classification is pure: no clock, randomness, or external state.
func Classify(rules *Rules, message string) model.RouteOutcome {
	if rules == nil {
		rules = DefaultRules()
	}

	m := strings.ToLower(strings.TrimSpace(message))

	contains := func(markers []string) bool {
		for _, k := range markers {
			if strings.Contains(m, k) {
				return true
			}
		}
		return false
	}

	// Safety first: refuse policy bypass attempts even when the message
	// also carries legitimate-looking business content.
	if contains(rules.Injection) {
		return model.RouteOutcome{Intent: model.PromptInjection, Action: model.Refuse}
	}

	paid := contains(rules.Paid)
	access := contains(rules.Access)
	declined := contains(rules.Declined)
	payment := contains(rules.PaymentContext)

	// High-trust workflow: paid but no access => tool lookup path.
	if paid && access && !declined {
		return model.RouteOutcome{Intent: model.PaidNoAccess, Action: model.CallTool}
	}

	if declined && payment {
		return model.RouteOutcome{Intent: model.PaymentFailed, Action: model.AskClarify}
	}

	if contains(rules.Pending) && payment {
		return model.RouteOutcome{Intent: model.PaymentPending, Action: model.AskClarify}
	}

	// Billing questions generally need an account lookup.
	if contains(rules.Billing) {
		return model.RouteOutcome{Intent: model.BillingQuestion, Action: model.CallTool}
	}

	// Never compose contact info; it must come from a verified source.
	if contains(rules.Contact) {
		return model.RouteOutcome{Intent: model.ContactInfo, Action: model.UseVerifiedSource}
	}

	if contains(rules.AccountHelp) {
		return model.RouteOutcome{Intent: model.AccountHelp, Action: model.Escalate}
	}

	return model.RouteOutcome{Intent: model.Unknown, Action: model.AskClarify}
}
