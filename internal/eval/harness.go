package eval

import (
	"errors"

	"github.com/ppiankov/triagewatch/internal/model"
	"github.com/ppiankov/triagewatch/internal/orchestrator"
	"github.com/ppiankov/triagewatch/internal/router"
	"github.com/ppiankov/triagewatch/internal/tool"
)

// DefaultThreshold is the pass-rate gate: zero tolerance for
// regressions unless a consumer explicitly lowers it.
const DefaultThreshold = 1.0

// Options configures a harness run. Shared configuration is passed in
// explicitly; the harness consults no ambient state.
//
// Nil Rules and Simulator fall back to the built-in defaults. Threshold
// does not: 0 is a valid gate meaning every run passes, so a zero-value
// Options carries no gate at all. Start from DefaultOptions for the
// strict gate.
type Options struct {
	Rules     *router.Rules
	Simulator *tool.Simulator
	Threshold float64
}

// DefaultOptions returns Options with built-in rules, the default
// simulated tool registry, and the strict threshold.
func DefaultOptions() Options {
	return Options{
		Rules:     router.DefaultRules(),
		Simulator: tool.New(nil),
		Threshold: DefaultThreshold,
	}
}

// Run replays the golden set through the orchestrator, one case at a
// time in the order supplied, and aggregates the result into a Report.
//
// A case passes iff produced intent and action both equal the
// expectations. Tool-error text is never compared, only retained in
// failure records for diagnosis. Configuration errors (an invalid
// scenario reaching the simulator) abort the whole run.
func Run(cases []TestCase, opts Options) (*Report, error) {
	if len(cases) == 0 {
		return nil, errors.New("no test cases to run")
	}
	if opts.Rules == nil {
		opts.Rules = router.DefaultRules()
	}
	if opts.Simulator == nil {
		opts.Simulator = tool.New(nil)
	}

	report := &Report{
		Threshold:    opts.Threshold,
		ActionCounts: make(map[model.Action]int),
		IntentCounts: make(map[model.Intent]int),
	}
	stats := make(map[model.Category]*CategoryStats)

	for _, tc := range cases {
		scenario := tc.ToolScenario
		if scenario == "" {
			scenario = model.ScenarioOK
		}

		got, err := orchestrator.Step(opts.Rules, opts.Simulator, tc.Input, tc.ToolName, scenario)
		if err != nil {
			return nil, err
		}

		report.Total++
		report.ActionCounts[got.Action]++
		report.IntentCounts[got.Intent]++

		cs, ok := stats[tc.Category]
		if !ok {
			// First occurrence fixes the category's report position.
			cs = &CategoryStats{Category: tc.Category}
			stats[tc.Category] = cs
			report.Categories = append(report.Categories, cs)
		}
		cs.Attempted++

		if got.Intent == tc.ExpectedIntent && got.Action == tc.ExpectedAction {
			report.PassedCount++
			cs.Passed++
			report.Results = append(report.Results, CaseResult{ID: tc.ID, Category: tc.Category, Passed: true})
			continue
		}

		report.Results = append(report.Results, CaseResult{ID: tc.ID, Category: tc.Category})
		report.Failures = append(report.Failures, Failure{
			ID:             tc.ID,
			Category:       tc.Category,
			Input:          tc.Input,
			ExpectedIntent: tc.ExpectedIntent,
			ExpectedAction: tc.ExpectedAction,
			ActualIntent:   got.Intent,
			ActualAction:   got.Action,
			ToolError:      got.ToolError,
		})
	}

	report.Score = float64(report.PassedCount) / float64(report.Total)
	report.Passed = report.Score >= opts.Threshold

	return report, nil
}
