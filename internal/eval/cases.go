package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/triagewatch/internal/model"
)

// TestCase is one golden-set record. Immutable once loaded.
type TestCase struct {
	ID             string         `json:"id"`
	Category       model.Category `json:"category"`
	Input          string         `json:"input"`
	ExpectedIntent model.Intent   `json:"expected_intent"`
	ExpectedAction model.Action   `json:"expected_action"`
	ToolName       string         `json:"tool_name,omitempty"`
	ToolScenario   model.Scenario `json:"tool_scenario,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// rawCase is the wire form before validation.
type rawCase struct {
	ID             string `json:"id"`
	Category       string `json:"category"`
	Input          string `json:"input"`
	ExpectedIntent string `json:"expected_intent"`
	ExpectedAction string `json:"expected_action"`
	ToolName       string `json:"tool_name"`
	ToolScenario   string `json:"tool_scenario"`
	Notes          string `json:"notes"`
}

// LoadCases reads a golden set from a JSONL file. Blank lines are
// skipped. Any malformed record is fatal: a broken fixture invalidates
// the meaning of the gate, so nothing is skipped or defaulted. An
// empty set is a configuration error, not a vacuous pass.
func LoadCases(path string) ([]TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open golden set: %w", err)
	}
	defer f.Close()

	var cases []TestCase
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var raw rawCase
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid JSON: %w", path, line, err)
		}

		tc, err := validate(raw)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if seen[tc.ID] {
			return nil, fmt.Errorf("%s:%d: duplicate test id %q", path, line, tc.ID)
		}
		seen[tc.ID] = true

		cases = append(cases, tc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read golden set: %w", err)
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("%s: golden set contains no test cases", path)
	}

	return cases, nil
}

func validate(raw rawCase) (TestCase, error) {
	if raw.ID == "" {
		return TestCase{}, fmt.Errorf("missing test id")
	}
	if raw.Input == "" {
		return TestCase{}, fmt.Errorf("test %s: missing input", raw.ID)
	}

	category, err := model.ParseCategory(raw.Category)
	if err != nil {
		return TestCase{}, fmt.Errorf("test %s: %w", raw.ID, err)
	}

	intent, err := model.ParseIntent(raw.ExpectedIntent)
	if err != nil {
		return TestCase{}, fmt.Errorf("test %s: expected_intent: %w", raw.ID, err)
	}

	action, err := model.ParseAction(raw.ExpectedAction)
	if err != nil {
		return TestCase{}, fmt.Errorf("test %s: expected_action: %w", raw.ID, err)
	}

	var scenario model.Scenario
	if raw.ToolScenario != "" {
		scenario, err = model.ParseScenario(raw.ToolScenario)
		if err != nil {
			return TestCase{}, fmt.Errorf("test %s: %w", raw.ID, err)
		}
	}

	return TestCase{
		ID:             raw.ID,
		Category:       category,
		Input:          raw.Input,
		ExpectedIntent: intent,
		ExpectedAction: action,
		ToolName:       raw.ToolName,
		ToolScenario:   scenario,
		Notes:          raw.Notes,
	}, nil
}
