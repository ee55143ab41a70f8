// Package hygiene gates the repository and its golden sets: synthetic
// data only, no NDA/client terms, no contact answers outside the
// verified-source path.
package hygiene

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ppiankov/triagewatch/internal/model"
)

// DefaultBannedTerms are NDA/client markers that must never appear in
// code or fixtures.
func DefaultBannedTerms() []string {
	return []string{"tradingview", "nda", "client logs", "verizon"}
}

var (
	urlPattern   = regexp.MustCompile(`https?://`)
	emailPattern = regexp.MustCompile(`\b[^@\s"]+@[^@\s"]+\.[^@\s"]+\b`)
)

// CheckResult is one hygiene check outcome.
type CheckResult struct {
	Label      string
	OK         bool
	Violations []string
	Warnings   []string
}

// checkerFiles are this package's own sources; they carry the banned
// list and pattern fixtures, so the tree scan skips them.
var checkerFiles = map[string]bool{
	"checks.go":      true,
	"checks_test.go": true,
}

// CheckTree scans source and fixture files under root for banned
// terms. Only .go, .jsonl and .yaml files are inspected; hidden
// directories, vendor trees and documentation are not.
func CheckTree(root string, banned []string) CheckResult {
	result := CheckResult{Label: "banned terms", OK: true}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(name) {
		case ".go", ".jsonl", ".yaml", ".yml":
		default:
			return nil
		}
		if checkerFiles[name] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := strings.ToLower(string(data))
		for _, term := range banned {
			if strings.Contains(content, strings.ToLower(term)) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("%s: found banned term %q", path, term))
			}
		}
		return nil
	})
	if err != nil {
		result.Violations = append(result.Violations, fmt.Sprintf("scan failed: %v", err))
	}

	result.OK = len(result.Violations) == 0
	return result
}

// CheckCases validates a golden-set JSONL file:
//   - no URLs, no email-like strings anywhere in a record
//   - contact-category cases must expect USE_VERIFIED_SOURCE
//   - tool_scenario values must belong to the fixed set
//
// A missing file is skipped, not failed, so the gate can run in trees
// that carry no golden set.
func CheckCases(path string) CheckResult {
	result := CheckResult{Label: "golden set", OK: true}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: not found, skipped", path))
			return result
		}
		result.Violations = append(result.Violations, fmt.Sprintf("%s: %v", path, err))
		result.OK = false
		return result
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var record struct {
			ID             string `json:"id"`
			Category       string `json:"category"`
			ExpectedAction string `json:"expected_action"`
			ToolScenario   string `json:"tool_scenario"`
		}
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			result.Violations = append(result.Violations,
				fmt.Sprintf("line %d: invalid JSON: %v", line, err))
			continue
		}
		id := record.ID
		if id == "" {
			id = fmt.Sprintf("line %d", line)
		}

		lower := strings.ToLower(text)
		if urlPattern.MatchString(lower) {
			result.Violations = append(result.Violations, fmt.Sprintf("%s: contains URL", id))
		}
		if emailPattern.MatchString(lower) {
			result.Violations = append(result.Violations, fmt.Sprintf("%s: contains email-like string", id))
		}

		if record.Category == string(model.CategoryContact) &&
			record.ExpectedAction != string(model.UseVerifiedSource) {
			result.Violations = append(result.Violations,
				fmt.Sprintf("%s: contact test but expected_action=%s (must be USE_VERIFIED_SOURCE)",
					id, record.ExpectedAction))
		}

		if record.ToolScenario != "" {
			if _, err := model.ParseScenario(record.ToolScenario); err != nil {
				result.Violations = append(result.Violations, fmt.Sprintf("%s: %v", id, err))
			} else if record.ExpectedAction != string(model.CallTool) &&
				record.ExpectedAction != string(model.Escalate) {
				// Scenario on a non-tool path is ignored at runtime;
				// flag the fixture as suspicious rather than broken.
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: tool_scenario set but expected_action=%s never invokes a tool",
						id, record.ExpectedAction))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		result.Violations = append(result.Violations, fmt.Sprintf("read: %v", err))
	}

	result.OK = len(result.Violations) == 0
	return result
}

// Run executes all hygiene checks. The boolean is the gate: true only
// when every check passed.
func Run(root, casesPath string, banned []string) ([]CheckResult, bool) {
	if len(banned) == 0 {
		banned = DefaultBannedTerms()
	}

	results := []CheckResult{
		CheckTree(root, banned),
		CheckCases(casesPath),
	}

	ok := true
	for _, r := range results {
		if !r.OK {
			ok = false
		}
	}
	return results, ok
}
