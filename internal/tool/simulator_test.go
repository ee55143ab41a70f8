package tool

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/triagewatch/internal/model"
)

func TestInvokeOKReturnsRegisteredPayload(t *testing.T) {
	sim := New(nil)

	out, err := sim.Invoke("check_payment_access", map[string]any{"unit": "555"}, model.ScenarioOK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["status"] != "success" {
		t.Errorf("status = %v", out["status"])
	}
	if out["unit"] != "555" {
		t.Errorf("request field not echoed: unit = %v", out["unit"])
	}
}

func TestInvokeOKUnknownToolGetsGenericPayload(t *testing.T) {
	sim := New(nil)

	out, err := sim.Invoke("frobnicate", nil, model.ScenarioOK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["tool"] != "frobnicate" {
		t.Errorf("tool = %v", out["tool"])
	}
}

func TestInvokeFailureScenarios(t *testing.T) {
	sim := New(nil)

	tests := []struct {
		scenario model.Scenario
		check    func(error) bool
	}{
		{model.ScenarioTimeout, func(err error) bool {
			var e *Timeout
			return errors.As(err, &e)
		}},
		{model.ScenarioAuthError, func(err error) bool {
			var e *AuthError
			return errors.As(err, &e)
		}},
		{model.ScenarioMissingFields, func(err error) bool {
			var e *MissingFields
			return errors.As(err, &e) && e.Field == "account_id"
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			out, err := sim.Invoke("lookup_billing", nil, tt.scenario)
			if out != nil {
				t.Error("failure scenarios must not return a payload")
			}
			if err == nil || !tt.check(err) {
				t.Errorf("wrong error type: %v", err)
			}
			if _, ok := AsFailure(err); !ok {
				t.Errorf("AsFailure should recognize %v", err)
			}
		})
	}
}

func TestInvokeUnknownScenarioIsConfigError(t *testing.T) {
	sim := New(nil)

	_, err := sim.Invoke("lookup_billing", nil, model.Scenario("explode"))
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if _, ok := AsFailure(err); ok {
		t.Error("config error must not be classified as a business failure")
	}
}

func TestInvokeDeterministic(t *testing.T) {
	sim := New(nil)

	a, _ := sim.Invoke("lookup_billing", nil, model.ScenarioOK)
	b, _ := sim.Invoke("lookup_billing", nil, model.ScenarioOK)
	if a["account_id"] != b["account_id"] || a["message"] != b["message"] {
		t.Error("identical invocations should yield identical payloads")
	}
}

func TestTimeoutDelayDefaultsToZero(t *testing.T) {
	sim := New(nil)
	if sim.Delay != 0 {
		t.Fatalf("default delay = %s, want 0", sim.Delay)
	}
	// The failure still reports the simulated budget.
	_, err := sim.Invoke("lookup_billing", nil, model.ScenarioTimeout)
	var te *Timeout
	if !errors.As(err, &te) {
		t.Fatalf("expected *Timeout, got %v", err)
	}
	if te.After == 0 {
		t.Error("timeout failure should report a non-zero simulated budget")
	}
}

func TestLoadRegistryOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	content := "lookup_billing:\n  status: success\n  balance: 42.5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatal(err)
	}

	sim := New(reg)
	out, err := sim.Invoke("lookup_billing", nil, model.ScenarioOK)
	if err != nil {
		t.Fatal(err)
	}
	if out["balance"] != 42.5 {
		t.Errorf("balance = %v, want 42.5", out["balance"])
	}

	// Tools absent from the overlay keep their defaults.
	out, err = sim.Invoke("check_payment_access", nil, model.ScenarioOK)
	if err != nil {
		t.Fatal(err)
	}
	if out["payment_verified"] != true {
		t.Error("default payload lost for check_payment_access")
	}
}

func TestLoadRegistryInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte(":::bad\x00"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
