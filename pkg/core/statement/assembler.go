package statement

import (
	"sort"

	"statement_engine/pkg/core/facts"
)

// Assemble merges consolidated facts for all periods into one ordered
// Statement. Facts sharing a concept tag collapse into a single LineItem
// whose Periods map accumulates one entry per period; merging the same
// period twice overwrites with the same value, never duplicates.
//
// order is the canonical presentation order for this statement type
// (see pkg/core/canon). Tags present in order are emitted first, in
// order; remaining tags follow sorted lexicographically. An empty order
// yields a fully alphabetical statement.
func Assemble(st Type, order []string, consolidated []facts.ConsolidatedFact, labels map[string]string) *Statement {
	stmt := &Statement{
		Type:           st,
		CanonicalOrder: order,
	}

	byTag := make(map[string]*LineItem)
	for i := range consolidated {
		mergeFact(stmt, byTag, &consolidated[i], labels)
	}

	applyCanonicalOrder(stmt)
	return stmt
}

// mergeFact folds one consolidated fact into the statement, creating the
// line item on first sight.
func mergeFact(stmt *Statement, byTag map[string]*LineItem, fact *facts.ConsolidatedFact, labels map[string]string) {
	item, ok := byTag[fact.Concept]
	if !ok {
		label := labels[fact.Concept]
		if label == "" {
			label = LocalName(fact.Concept)
		}
		item = &LineItem{
			Tag:     fact.Concept,
			Label:   label,
			Unit:    fact.Unit,
			Periods: make(map[string]float64),
			// Roles stay empty until classification.
			Roles:      []string{},
			Confidence: 0.0,
		}
		byTag[fact.Concept] = item
		stmt.LineItems = append(stmt.LineItems, item)
	}

	item.Periods[fact.PeriodEnd] = fact.Value
	if fact.DimensionsUsed {
		if item.DimensionedPeriods == nil {
			item.DimensionedPeriods = make(map[string]bool)
		}
		item.DimensionedPeriods[fact.PeriodEnd] = true
	}
}

// applyCanonicalOrder sorts line items: registry tags first in registry
// order, then unknown tags alphabetically. The result is deterministic
// for a fixed input set.
func applyCanonicalOrder(stmt *Statement) {
	rank := make(map[string]int, len(stmt.CanonicalOrder))
	for i, tag := range stmt.CanonicalOrder {
		rank[tag] = i
	}

	sort.SliceStable(stmt.LineItems, func(i, j int) bool {
		a, b := stmt.LineItems[i], stmt.LineItems[j]
		ra, aKnown := rank[a.Tag]
		rb, bKnown := rank[b.Tag]
		switch {
		case aKnown && bKnown:
			return ra < rb
		case aKnown:
			return true
		case bKnown:
			return false
		default:
			return a.Tag < b.Tag
		}
	})
}
