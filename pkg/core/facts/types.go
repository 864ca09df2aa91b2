// Package facts implements consolidation of raw multi-dimensional
// financial-statement observations into one authoritative value per
// concept and period.
package facts

import (
	"fmt"
	"strings"
	"time"
)

// RawObservation is a single reported numeric fact as it arrives from the
// fact source. Multiple observations may share (concept, period_end) when
// a value is re-filed or split by segment dimensions.
type RawObservation struct {
	Concept     string            `json:"concept"`    // e.g., "us-gaap:Revenues"
	PeriodEnd   string            `json:"period_end"` // "2006-01-02" format
	PeriodStart string            `json:"period_start,omitempty"`
	Value       string            `json:"value"`                // Raw string value, parsed at selection time
	Unit        string            `json:"unit"`                 // e.g., "USD", "USD/shares"
	Dimensions  map[string]string `json:"dimensions,omitempty"` // axis -> member
	FilingForm  string            `json:"filing_form"`          // "10-K", "10-Q", "10-K/A"
	FiledDate   string            `json:"filed_date"`           // "2006-01-02" format
	Accession   string            `json:"accession"`
}

// IsDimensioned reports whether the observation carries any segment/member
// dimensions.
func (o *RawObservation) IsDimensioned() bool {
	return len(o.Dimensions) > 0
}

// ContextMetadata records where a consolidated value came from, for audit.
type ContextMetadata struct {
	FilingForm string `json:"filing_form"`
	FiledDate  string `json:"filed_date"`
	Accession  string `json:"accession"`
	Member     string `json:"member,omitempty"` // Dimension member, when one was used
}

// ConsolidatedFact is the single authoritative value chosen for a
// (concept, period_end, unit) key. DimensionsUsed=true means no
// dimensionless alternative existed and the value was taken from a
// dimensioned observation; downstream consumers must treat it as lower
// confidence.
type ConsolidatedFact struct {
	Concept        string          `json:"concept"`
	PeriodEnd      string          `json:"period_end"`
	Value          float64         `json:"value"`
	Unit           string          `json:"unit"`
	Context        ContextMetadata `json:"context_metadata"`
	DimensionsUsed bool            `json:"dimensions_used"`
}

// CacheKey builds a namespace-qualified key for the injected fact cache.
func CacheKey(cik, concept, periodEnd string) string {
	return fmt.Sprintf("facts:v1:%s:%s:%s", cik, concept, periodEnd)
}

// parseFiledDate parses a filed date, returning the zero time for
// malformed input so malformed dates rank last rather than failing.
func parseFiledDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// is10KFamily reports whether a form type belongs to the annual-report
// family (10-K, 10-K/A, 10-K405, ...). Annual filings outrank quarterly
// ones during selection.
func is10KFamily(form string) bool {
	return strings.HasPrefix(strings.ToUpper(form), "10-K")
}
