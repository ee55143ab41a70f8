package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/triagewatch/internal/model"
)

// CategoryStats counts attempts and passes for one category.
type CategoryStats struct {
	Category  model.Category `json:"category"`
	Attempted int            `json:"attempted"`
	Passed    int            `json:"passed"`
}

// CaseResult is the per-case verdict, in run order.
type CaseResult struct {
	ID       string         `json:"id"`
	Category model.Category `json:"category"`
	Passed   bool           `json:"passed"`
}

// Failure records one mismatched case with enough detail to diagnose
// without rerunning.
type Failure struct {
	ID             string         `json:"id"`
	Category       model.Category `json:"category"`
	Input          string         `json:"input"`
	ExpectedIntent model.Intent   `json:"expected_intent"`
	ExpectedAction model.Action   `json:"expected_action"`
	ActualIntent   model.Intent   `json:"actual_intent"`
	ActualAction   model.Action   `json:"actual_action"`
	ToolError      string         `json:"tool_error,omitempty"`
}

// Report is the write-once result of one harness run. Categories keep
// first-occurrence order so diffs between runs stay readable.
type Report struct {
	Score        float64              `json:"score"`
	Passed       bool                 `json:"passed"`
	Total        int                  `json:"total"`
	PassedCount  int                  `json:"passed_count"`
	Threshold    float64              `json:"threshold"`
	Results      []CaseResult         `json:"results"`
	Categories   []*CategoryStats     `json:"by_category"`
	ActionCounts map[model.Action]int `json:"action_distribution"`
	IntentCounts map[model.Intent]int `json:"intent_distribution"`
	Failures     []Failure            `json:"failures"`
}

// FormatText renders the report as human-readable text.
func FormatText(r *Report) string {
	var b strings.Builder

	failures := make(map[string]Failure, len(r.Failures))
	for _, f := range r.Failures {
		failures[f.ID] = f
	}
	for _, c := range r.Results {
		if c.Passed {
			fmt.Fprintf(&b, "  PASS  %s\n", c.ID)
			continue
		}
		f := failures[c.ID]
		fmt.Fprintf(&b, "  FAIL  %s  expected=(%s,%s) got=(%s,%s)",
			f.ID, f.ExpectedIntent, f.ExpectedAction, f.ActualIntent, f.ActualAction)
		if f.ToolError != "" {
			fmt.Fprintf(&b, " [%s]", f.ToolError)
		}
		b.WriteString("\n")
	}
	if len(r.Results) > 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Score: %d/%d (%.1f%%)\n", r.PassedCount, r.Total, r.Score*100)

	b.WriteString("\nBy category:\n")
	for _, cs := range r.Categories {
		fmt.Fprintf(&b, "  - %s: %d/%d\n", cs.Category, cs.Passed, cs.Attempted)
	}

	b.WriteString("\nAction distribution:\n")
	for _, action := range sortedKeys(r.ActionCounts) {
		fmt.Fprintf(&b, "  - %s: %d\n", action, r.ActionCounts[action])
	}

	if r.Passed {
		fmt.Fprintf(&b, "\nPASS (threshold %.2f)\n", r.Threshold)
	} else {
		fmt.Fprintf(&b, "\nFAIL: score %.1f%% below threshold %.1f%%\n",
			r.Score*100, r.Threshold*100)
	}

	return b.String()
}

// FormatJSON renders the report as indented JSON.
func FormatJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

// WriteFile writes the machine-readable report artifact.
func WriteFile(r *Report, path string) error {
	out, err := FormatJSON(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func sortedKeys(m map[model.Action]int) []model.Action {
	keys := make([]model.Action, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// Most frequent first; ties break alphabetically for stable output.
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
