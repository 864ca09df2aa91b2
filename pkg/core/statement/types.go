// Package statement defines the canonical statement data model and the
// assembler that turns consolidated facts into ordered line items.
package statement

import "strings"

// Type identifies one of the three canonical financial statements.
type Type string

const (
	Income   Type = "INCOME_STATEMENT"
	Balance  Type = "BALANCE_SHEET"
	CashFlow Type = "CASH_FLOW"
)

// Prefix returns the short identifier used in line ids ("IS__Revenues__Consolidated").
func (t Type) Prefix() string {
	switch t {
	case Income:
		return "IS"
	case Balance:
		return "BS"
	case CashFlow:
		return "CF"
	default:
		return "XX"
	}
}

// ParseType converts a loose string to a statement Type.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "is", "income", "income_statement", "income statement":
		return Income, true
	case "bs", "balance", "balance_sheet", "balance sheet":
		return Balance, true
	case "cf", "cash_flow", "cash flow", "cashflow":
		return CashFlow, true
	default:
		return "", false
	}
}

// LineItem is one presentational row of a statement. Roles start empty
// and are filled exactly once by the classifier; the validation harness
// reads but never mutates them.
type LineItem struct {
	Tag        string             `json:"tag"`   // concept id, e.g. "us-gaap:Revenues"
	Label      string             `json:"label"` // human-readable label
	Unit       string             `json:"unit"`
	Periods    map[string]float64 `json:"periods"` // period_end -> value
	Roles      []string           `json:"roles"`
	Confidence float64            `json:"classification_confidence"`

	// DimensionedPeriods flags periods whose value came from a
	// dimensioned observation (lower confidence).
	DimensionedPeriods map[string]bool `json:"dimensioned_periods,omitempty"`

	// Subitems is reserved for future parent/child grouping. The base
	// assembler always emits a flat statement, so it stays empty.
	Subitems []*LineItem `json:"subitems,omitempty"`
}

// LineID builds the stable payload identifier for this item within a
// statement type.
func (li *LineItem) LineID(st Type) string {
	return st.Prefix() + "__" + LocalName(li.Tag) + "__Consolidated"
}

// HasRole reports whether the item carries the given role.
func (li *LineItem) HasRole(role string) bool {
	for _, r := range li.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasValue reports whether any period carries a value.
func (li *LineItem) HasValue() bool {
	return len(li.Periods) > 0
}

// LocalName strips the taxonomy namespace from a concept tag.
func LocalName(tag string) string {
	if idx := strings.LastIndex(tag, ":"); idx >= 0 {
		return tag[idx+1:]
	}
	return tag
}

// Statement is the final artifact of the engine for one statement type.
type Statement struct {
	Type           Type        `json:"statement_type"`
	CanonicalOrder []string    `json:"normalized_order"`
	LineItems      []*LineItem `json:"line_items"`
}

// Item returns the line item with the given tag, or nil.
func (s *Statement) Item(tag string) *LineItem {
	for _, li := range s.LineItems {
		if li.Tag == tag {
			return li
		}
	}
	return nil
}
