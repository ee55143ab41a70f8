package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry maps tool names to their synthetic success payloads.
type Registry map[string]map[string]any

// DefaultRegistry returns the built-in synthetic payloads. Values are
// fixed so runs are reproducible; nothing here is real data.
func DefaultRegistry() Registry {
	return Registry{
		"check_payment_access": {
			"status":            "success",
			"payment_verified":  true,
			"access_granted":    true,
			"last_payment_date": "2026-02-01",
			"message":           "Payment verified, access should be enabled",
		},
		"lookup_billing": {
			"status":     "success",
			"account_id": "synthetic_001",
			"balance":    0.00,
			"last_charge": map[string]any{
				"amount":      150.00,
				"date":        "2026-01-15",
				"description": "Monthly service fee",
			},
			"message": "Billing details retrieved",
		},
		"get_contact_info": {
			"status":  "success",
			"phone":   "555-0100",
			"hours":   "Mon-Fri 9am-5pm EST",
			"message": "Contact details retrieved from verified source",
		},
	}
}

// LoadRegistry loads synthetic payloads from a YAML file, overlaying
// the defaults. Empty path or missing file returns defaults.
func LoadRegistry(path string) (Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read tool registry: %w", err)
	}

	overlay := Registry{}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse tool registry: %w", err)
	}

	reg := DefaultRegistry()
	for name, payload := range overlay {
		reg[name] = payload
	}
	return reg, nil
}

// respond returns the registered payload for a tool, echoing selected
// request fields the way a real integration would. Unknown tools get a
// generic synthetic acknowledgement.
func (r Registry) respond(toolName string, payload map[string]any) map[string]any {
	base, ok := r[toolName]
	if !ok {
		return map[string]any{
			"status":  "success",
			"tool":    toolName,
			"message": fmt.Sprintf("tool %q executed successfully (synthetic)", toolName),
		}
	}

	out := make(map[string]any, len(base)+2)
	for k, v := range base {
		out[k] = v
	}
	// Echo caller-supplied identifiers so responses stay traceable.
	for _, k := range []string{"unit", "account_id", "user_id"} {
		if v, ok := payload[k]; ok {
			out[k] = v
		}
	}
	return out
}
