// Package validate checks that the variables a downstream model needs
// are actually derivable from classified statements, and says how: a
// direct role hit, a computed sum of components, or an accepted proxy.
package validate

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v2"

	"statement_engine/pkg/core/statement"
)

// Validation outcome statuses, ordered from strongest to weakest.
const (
	StatusPassDirect   = "PASS_DIRECT"
	StatusPassComputed = "PASS_COMPUTED"
	StatusPassProxy    = "PASS_PROXY"
	StatusFail         = "FAIL"
)

// maxAlternates bounds the candidate list attached to a failure so
// reports stay readable.
const maxAlternates = 3

// Requirement declares one variable the downstream consumer needs.
// Resolution order is fixed: ExpectedRoles first, then ComputedFrom
// (every component must resolve), then ProxyRoles.
type Requirement struct {
	Variable      string   `yaml:"variable"`
	Statement     string   `yaml:"statement"`
	ExpectedRoles []string `yaml:"expected_roles"`
	ComputedFrom  []string `yaml:"computed_from,omitempty"`
	ProxyRoles    []string `yaml:"proxy_roles,omitempty"`
}

// ValidationResult records how one requirement resolved.
type ValidationResult struct {
	Variable       string   `json:"variable"`
	ExpectedRoles  []string `json:"expected_roles"`
	Status         string   `json:"status"`
	ChosenLineItem string   `json:"chosen_line_item,omitempty"`
	Value          float64  `json:"value,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	Alternates     []string `json:"alternates,omitempty"`
}

// Passed reports whether the result is any of the pass statuses.
func (r ValidationResult) Passed() bool {
	return r.Status != StatusFail
}

// Report is the artifact of one harness run.
type Report struct {
	RunID       string             `json:"run_id"`
	CIK         string             `json:"cik"`
	GeneratedAt time.Time          `json:"generated_at"`
	Results     []ValidationResult `json:"results"`
	Summary     Summary            `json:"summary"`
}

// Summary is the roll-up at the top of a report.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Harness evaluates a requirement set against classified statements.
type Harness struct {
	requirements []Requirement
}

func NewHarness(reqs []Requirement) *Harness {
	return &Harness{requirements: reqs}
}

// LoadRequirements reads a requirement set from a YAML file, so teams
// can extend the default set without a rebuild.
func LoadRequirements(path string) ([]Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requirements %s: %w", path, err)
	}
	var wrapper struct {
		Requirements []Requirement `yaml:"requirements"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse requirements %s: %w", path, err)
	}
	return wrapper.Requirements, nil
}

// Run validates every requirement against the statements and produces
// the final report. Never returns an error: a variable that cannot be
// resolved is a FAIL row, not a crash.
func (h *Harness) Run(cik string, statements map[statement.Type]*statement.Statement) *Report {
	report := &Report{
		RunID:       uuid.New().String(),
		CIK:         cik,
		GeneratedAt: time.Now().UTC(),
	}
	for _, req := range h.requirements {
		result := h.validate(req, statements)
		report.Results = append(report.Results, result)
		report.Summary.Total++
		if result.Passed() {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
	}
	return report
}

func (h *Harness) validate(req Requirement, statements map[statement.Type]*statement.Statement) ValidationResult {
	result := ValidationResult{
		Variable:      req.Variable,
		ExpectedRoles: req.ExpectedRoles,
	}

	st, ok := statement.ParseType(req.Statement)
	if !ok {
		result.Status = StatusFail
		result.Reason = fmt.Sprintf("unknown statement type %q", req.Statement)
		return result
	}
	stmt := statements[st]
	if stmt == nil || len(stmt.LineItems) == 0 {
		result.Status = StatusFail
		result.Reason = fmt.Sprintf("no %s available", st)
		return result
	}

	// Direct match: first item in statement order carrying any expected
	// role wins, so re-runs on the same statement pick the same line.
	if item, value, ok := firstWithRoles(stmt, req.ExpectedRoles); ok {
		result.Status = StatusPassDirect
		result.ChosenLineItem = item.Tag
		result.Value = value
		return result
	}

	// Computed: every component role must resolve; the value is their sum.
	if len(req.ComputedFrom) > 0 {
		sum := 0.0
		parts := make([]string, 0, len(req.ComputedFrom))
		complete := true
		for _, role := range req.ComputedFrom {
			item, value, ok := firstWithRoles(stmt, []string{role})
			if !ok {
				complete = false
				break
			}
			sum += value
			parts = append(parts, item.Tag)
		}
		if complete {
			result.Status = StatusPassComputed
			result.ChosenLineItem = strings.Join(parts, " + ")
			result.Value = sum
			return result
		}
	}

	// Proxy: an accepted stand-in role.
	if item, value, ok := firstWithRoles(stmt, req.ProxyRoles); ok {
		result.Status = StatusPassProxy
		result.ChosenLineItem = item.Tag
		result.Value = value
		return result
	}

	result.Status = StatusFail
	result.Reason = fmt.Sprintf("no line item tagged %v, no computable components, no proxy", req.ExpectedRoles)
	result.Alternates = alternates(stmt)
	return result
}

// firstWithRoles scans the statement in canonical order and returns the
// first valued item carrying any of the given roles.
func firstWithRoles(stmt *statement.Statement, roleIDs []string) (*statement.LineItem, float64, bool) {
	for _, item := range stmt.LineItems {
		if !item.HasValue() {
			continue
		}
		for _, role := range roleIDs {
			if item.HasRole(role) {
				return item, latest(item), true
			}
		}
	}
	return nil, 0, false
}

// latest returns the value for the most recent period of an item.
func latest(item *statement.LineItem) float64 {
	best := ""
	for period := range item.Periods {
		if period > best {
			best = period
		}
	}
	return item.Periods[best]
}

// alternates lists a handful of untagged-but-valued items as hints for
// whoever triages the failure.
func alternates(stmt *statement.Statement) []string {
	var out []string
	for _, item := range stmt.LineItems {
		if item.HasValue() && len(item.Roles) == 0 {
			out = append(out, item.Tag)
		}
	}
	sort.Strings(out)
	if len(out) > maxAlternates {
		out = out[:maxAlternates]
	}
	return out
}
