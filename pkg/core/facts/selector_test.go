package facts

import (
	"sync"
	"testing"
	"time"
)

func usd(concept, periodEnd, value, form, filed string, dims map[string]string) RawObservation {
	return RawObservation{
		Concept:    concept,
		PeriodEnd:  periodEnd,
		Value:      value,
		Unit:       "USD",
		Dimensions: dims,
		FilingForm: form,
		FiledDate:  filed,
		Accession:  "0000000000-24-000001",
	}
}

// A consolidated total must beat a larger segment breakdown, no matter
// how the segments compare in magnitude.
func TestSelectPrefersDimensionlessOverSegments(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15", nil),
		usd("us-gaap:Revenues", "2024-12-31", "9000000000", "10-K", "2025-02-15",
			map[string]string{"srt:StatementGeographicalAxis": "Europe"}),
		usd("us-gaap:Revenues", "2024-12-31", "52000000000", "10-K", "2025-02-15",
			map[string]string{"srt:StatementGeographicalAxis": "Americas"}),
	}

	fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
	if fact == nil {
		t.Fatal("expected a consolidated fact, got nil")
	}
	if fact.Value != 41000000000 {
		t.Errorf("expected dimensionless 41B, got %f", fact.Value)
	}
	if fact.DimensionsUsed {
		t.Error("dimensionless winner should not be flagged as dimensioned")
	}
	t.Logf("✓ Selected consolidated %.0f over segment values", fact.Value)
}

func TestSelectPrefers10KOverQuarterly(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Assets", "2024-12-31", "100", "10-Q", "2025-05-01", nil),
		usd("us-gaap:Assets", "2024-12-31", "105", "10-K", "2025-02-15", nil),
	}

	fact := selector.Select(obs, "us-gaap:Assets", "2024-12-31")
	if fact == nil {
		t.Fatal("expected a fact")
	}
	if fact.Value != 105 {
		t.Errorf("expected 10-K value 105, got %f", fact.Value)
	}
	if fact.Context.FilingForm != "10-K" {
		t.Errorf("expected 10-K provenance, got %s", fact.Context.FilingForm)
	}
}

func TestSelectLaterFiledWinsWithinSameForm(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Assets", "2024-12-31", "100", "10-K", "2025-02-15", nil),
		usd("us-gaap:Assets", "2024-12-31", "102", "10-K/A", "2025-06-01", nil),
	}

	fact := selector.Select(obs, "us-gaap:Assets", "2024-12-31")
	if fact == nil {
		t.Fatal("expected a fact")
	}
	if fact.Value != 102 {
		t.Errorf("expected amended value 102, got %f", fact.Value)
	}
}

// With only dimensioned observations available, segment-looking members
// are filtered out and the largest remaining magnitude wins.
func TestSelectDimensionedFallbackFiltersSegments(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "50000000000", "10-K", "2025-02-15",
			map[string]string{"srt:StatementGeographicalAxis": "EuropeSegmentMember"}),
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15",
			map[string]string{"srt:ConsolidationItemsAxis": "ConsolidatedEntityMember"}),
	}

	fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
	if fact == nil {
		t.Fatal("expected a fact from the dimensioned fallback")
	}
	if !fact.DimensionsUsed {
		t.Error("fallback result must be flagged as dimensioned")
	}
	if fact.Value != 41000000000 {
		t.Errorf("expected 41B after exclusion filter, got %f", fact.Value)
	}
}

// When the exclusion filter would eliminate every candidate, selection
// falls back to the unfiltered set instead of returning nothing.
func TestSelectUnfilteredFallbackWhenAllExcluded(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "9000000000", "10-K", "2025-02-15",
			map[string]string{"srt:StatementGeographicalAxis": "EuropeSegmentMember"}),
		usd("us-gaap:Revenues", "2024-12-31", "12000000000", "10-K", "2025-02-15",
			map[string]string{"srt:StatementGeographicalAxis": "AmericasSegmentMember"}),
	}

	fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
	if fact == nil {
		t.Fatal("expected a fact from the unfiltered fallback")
	}
	if fact.Value != 12000000000 {
		t.Errorf("expected largest magnitude 12B, got %f", fact.Value)
	}
}

func TestSelectReturnsNilWithoutValidNumerics(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "not-a-number", "10-K", "2025-02-15", nil),
		usd("us-gaap:Revenues", "2024-12-31", "", "10-K", "2025-02-15", nil),
	}

	if fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31"); fact != nil {
		t.Errorf("expected nil for unparseable values, got %+v", fact)
	}
}

func TestSelectIgnoresOtherConceptsAndPeriods(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2023-12-31", "30000000000", "10-K", "2024-02-15", nil),
		usd("us-gaap:Assets", "2024-12-31", "500000000000", "10-K", "2025-02-15", nil),
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15", nil),
	}

	fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
	if fact == nil || fact.Value != 41000000000 {
		t.Fatalf("expected exactly the 2024 Revenues value, got %+v", fact)
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15", nil),
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15", nil),
		{Concept: "us-gaap:Revenues", PeriodEnd: "2024-12-31", Value: "41", Unit: "EUR",
			FilingForm: "10-K", FiledDate: "2025-02-15"},
	}

	first := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
	for i := 0; i < 20; i++ {
		again := selector.Select(obs, "us-gaap:Revenues", "2024-12-31")
		if again == nil || first == nil {
			t.Fatal("selection returned nil")
		}
		if again.Value != first.Value || again.Unit != first.Unit {
			t.Fatalf("selection is not deterministic: run %d gave %+v, first gave %+v", i, again, first)
		}
	}
	t.Logf("✓ 20 repeated selections identical")
}

// fakeCache is a minimal in-test FactCache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func (f *fakeCache) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if ok {
		f.hits++
	}
	return v, ok
}

func (f *fakeCache) Set(key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func TestSelectUsesCacheAndInvalidates(t *testing.T) {
	selector := NewSelector(nil, "0000320193")
	cache := &fakeCache{}
	selector.SetCache(cache, time.Hour)

	obs := []RawObservation{
		usd("us-gaap:Revenues", "2024-12-31", "41000000000", "10-K", "2025-02-15", nil),
	}

	if fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31"); fact == nil {
		t.Fatal("first select failed")
	}
	if fact := selector.Select(obs, "us-gaap:Revenues", "2024-12-31"); fact == nil {
		t.Fatal("cached select failed")
	}
	if cache.hits == 0 {
		t.Error("second select should have hit the cache")
	}

	selector.Invalidate("us-gaap:Revenues", "2024-12-31")
	if _, ok := cache.data[CacheKey("0000320193", "us-gaap:Revenues", "2024-12-31")]; ok {
		t.Error("Invalidate did not remove the cached entry")
	}
}
