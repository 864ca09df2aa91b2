// Package classify assigns calculation roles to statement line items.
// A deterministic concept table covers standardized tags; everything
// else goes to a natural-language classifier whose output is validated
// against the closed role vocabulary before it touches the data model.
package classify

import (
	"sort"
	"strings"

	"statement_engine/pkg/core/statement"
)

// PayloadLine is the minimal projection of a LineItem sent to the
// classification service. Per-period monetary detail is stripped to
// control payload size; ValueHint keeps one scalar for plausibility
// checks.
type PayloadLine struct {
	LineID      string   `json:"line_id"`
	Label       string   `json:"label"`
	ParentLabel string   `json:"parent_label,omitempty"`
	ConceptID   string   `json:"concept_id"`
	IsAbstract  bool     `json:"is_abstract"`
	ValueHint   *float64 `json:"value_hint,omitempty"`
	Dimensions  []string `json:"dimensions,omitempty"` // periods sourced from dimensioned observations
}

// Payload is the request body for the classification service.
type Payload struct {
	StatementType string        `json:"statement_type"`
	Lines         []PayloadLine `json:"lines"`
}

// BuildPayload projects line items into the schema-stable classifier
// payload, in statement order.
func BuildPayload(st statement.Type, items []*statement.LineItem) *Payload {
	payload := &Payload{StatementType: string(st)}
	for _, item := range items {
		line := PayloadLine{
			LineID:     item.LineID(st),
			ConceptID:  item.Tag,
			Label:      item.Label,
			IsAbstract: IsAbstract(item),
		}
		if hint, ok := latestValue(item); ok {
			line.ValueHint = &hint
		}
		for period := range item.DimensionedPeriods {
			line.Dimensions = append(line.Dimensions, period)
		}
		sort.Strings(line.Dimensions)
		payload.Lines = append(payload.Lines, line)
	}
	return payload
}

// IsAbstract reports whether an item is a section header rather than a
// numeric row: no unit and no value, or an "Abstract" marker in its tag.
// Abstract items are never sent for role assignment.
func IsAbstract(item *statement.LineItem) bool {
	if item.Unit == "" && !item.HasValue() {
		return true
	}
	return strings.Contains(item.Tag, "Abstract")
}

// latestValue returns the value for the most recent period, if any.
func latestValue(item *statement.LineItem) (float64, bool) {
	latest := ""
	for period := range item.Periods {
		if period > latest {
			latest = period
		}
	}
	if latest == "" {
		return 0, false
	}
	return item.Periods[latest], true
}
