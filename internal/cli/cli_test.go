package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/triagewatch/internal/eval"
)

func writeGolden(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tests.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEvalPassingSet(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	evalCases = writeGolden(t,
		`{"id":"con_001","category":"contact","input":"What's your phone number?","expected_intent":"CONTACT_INFO","expected_action":"USE_VERIFIED_SOURCE"}`,
	)
	evalRules = ""
	evalTools = ""
	evalThreshold = eval.DefaultThreshold
	evalReport = filepath.Join(t.TempDir(), "report.json")
	evalFormat = "text"

	if err := runEval(nil, nil); err != nil {
		t.Fatalf("runEval failed: %v", err)
	}

	if _, err := os.Stat(evalReport); err != nil {
		t.Errorf("report artifact not written: %v", err)
	}
}

func TestRunEvalMalformedSetIsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	evalCases = writeGolden(t,
		`{"id":"x","category":"payment","input":"paid no access","expected_intent":"PAID_NO_ACCESS","expected_action":"CALL_TOOL","tool_scenario":"explode"}`,
	)
	evalRules = ""
	evalTools = ""
	evalThreshold = eval.DefaultThreshold
	evalReport = ""
	evalFormat = "text"

	if err := runEval(nil, nil); err == nil {
		t.Error("expected error for malformed fixture")
	}
}

func TestRunEvalThresholdOutOfRange(t *testing.T) {
	evalCases = writeGolden(t,
		`{"id":"x","category":"edge","input":"hi","expected_intent":"UNKNOWN","expected_action":"ASK_CLARIFY"}`,
	)
	evalThreshold = 1.5

	if err := runEval(nil, nil); err == nil {
		t.Error("expected error for threshold above 1")
	}
}

func TestRunRoute(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	routeRules = ""
	routeFormat = "text"
	if err := runRoute(nil, []string{"What's", "your", "phone", "number?"}); err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
}

func TestRunStepRejectsBadScenario(t *testing.T) {
	stepRules = ""
	stepTools = ""
	stepTool = ""
	stepScenario = "explode"
	stepFormat = "text"

	if err := runStep(nil, []string{"refund"}); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestRunStepEscalatesOnToolFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stepRules = ""
	stepTools = ""
	stepTool = ""
	stepScenario = "timeout"
	stepFormat = "json"

	if err := runStep(nil, []string{"I", "paid", "but", "can't", "access", "the", "unit"}); err != nil {
		t.Fatalf("runStep failed: %v", err)
	}
}

func TestRunInitRules(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rules.yaml")
	initRulesOut = out

	if err := runInitRules(nil, nil); err != nil {
		t.Fatalf("runInitRules failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# triagewatch routing rules") {
		t.Error("missing header comment")
	}
	for _, section := range []string{"injection:", "billing:", "contact:"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("missing section %q", section)
		}
	}

	// Second run must refuse to overwrite.
	if err := runInitRules(nil, nil); err == nil {
		t.Error("expected error when rules file already exists")
	}
}
