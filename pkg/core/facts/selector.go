package facts

import (
	"encoding/json"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dimensionlessScore outranks any magnitude-based score so dimensionless
// evidence always wins across unit groups.
const dimensionlessScore = 1000

// FactCache is an optional injected key-value store for selection
// results. Keys are namespace-qualified (see CacheKey); invalidation is
// explicit via Invalidate.
type FactCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Selector collapses all raw observations for one (concept, period) into
// a single authoritative ConsolidatedFact.
type Selector struct {
	policy   *ExclusionPolicy
	cik      string
	cache    FactCache
	cacheTTL time.Duration
}

// NewSelector creates a selector with the given exclusion policy.
// A nil policy falls back to the default keyword set.
func NewSelector(policy *ExclusionPolicy, cik string) *Selector {
	if policy == nil {
		policy = DefaultExclusionPolicy()
	}
	return &Selector{policy: policy, cik: cik}
}

// SetCache injects a key-value store for consolidated facts. Pass nil to
// disable caching.
func (s *Selector) SetCache(cache FactCache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// Invalidate drops any cached selection for a concept/period.
func (s *Selector) Invalidate(concept, periodEnd string) {
	if s.cache != nil {
		s.cache.Delete(CacheKey(s.cik, concept, periodEnd))
	}
}

// Select picks the single authoritative value for concept/periodEnd from
// the observation list. It returns nil when no group yields a valid
// numeric candidate; callers must treat that as absence, not an error.
func (s *Selector) Select(observations []RawObservation, concept, periodEnd string) *ConsolidatedFact {
	if s.cache != nil {
		if data, ok := s.cache.Get(CacheKey(s.cik, concept, periodEnd)); ok {
			var cached ConsolidatedFact
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached
			}
		}
	}

	fact := s.selectUncached(observations, concept, periodEnd)

	if fact != nil && s.cache != nil {
		if data, err := json.Marshal(fact); err == nil {
			s.cache.Set(CacheKey(s.cik, concept, periodEnd), data, s.cacheTTL)
		}
	}
	return fact
}

func (s *Selector) selectUncached(observations []RawObservation, concept, periodEnd string) *ConsolidatedFact {
	// Group matching observations by unit. period_end is already fixed
	// by the caller, so unit is the only remaining group key.
	groups := make(map[string][]RawObservation)
	for _, obs := range observations {
		if obs.Concept != concept || obs.PeriodEnd != periodEnd {
			continue
		}
		groups[obs.Unit] = append(groups[obs.Unit], obs)
	}
	if len(groups) == 0 {
		return nil
	}

	// Deterministic iteration: units in lexical order, so score ties
	// always resolve the same way.
	units := make([]string, 0, len(groups))
	for unit := range groups {
		units = append(units, unit)
	}
	sort.Strings(units)

	var best *ConsolidatedFact
	bestScore := math.Inf(-1)
	for _, unit := range units {
		fact, score := s.selectWithinGroup(groups[unit], unit)
		if fact == nil {
			continue
		}
		if score > bestScore {
			best = fact
			bestScore = score
		}
	}

	if best == nil {
		log.Printf("[SELECTION GAP] no valid numeric candidate for %s @ %s", concept, periodEnd)
	}
	return best
}

// selectWithinGroup picks the best observation inside one unit group and
// returns it alongside its cross-group score.
func (s *Selector) selectWithinGroup(group []RawObservation, unit string) (*ConsolidatedFact, float64) {
	var dimensionless, dimensioned []RawObservation
	for _, obs := range group {
		if obs.IsDimensioned() {
			dimensioned = append(dimensioned, obs)
		} else {
			dimensionless = append(dimensionless, obs)
		}
	}

	if len(dimensionless) > 0 {
		// Rank by (10-K family, filed date) and take the first that
		// parses as a finite number.
		sort.SliceStable(dimensionless, func(i, j int) bool {
			return CompareObservations(&dimensionless[i], &dimensionless[j]) > 0
		})
		for i := range dimensionless {
			obs := &dimensionless[i]
			value, ok := parseNumeric(obs.Value)
			if !ok {
				continue
			}
			return &ConsolidatedFact{
				Concept:   obs.Concept,
				PeriodEnd: obs.PeriodEnd,
				Value:     value,
				Unit:      unit,
				Context: ContextMetadata{
					FilingForm: obs.FilingForm,
					FiledDate:  obs.FiledDate,
					Accession:  obs.Accession,
				},
				DimensionsUsed: false,
			}, dimensionlessScore
		}
		// All dimensionless values were malformed; fall through to the
		// dimensioned candidates.
	}

	candidates := s.filterExcluded(dimensioned)
	if len(candidates) == 0 {
		// Exclusion emptied the set: fall back to the unfiltered group
		// rather than reporting absence.
		candidates = dimensioned
	}

	var best *RawObservation
	var bestValue float64
	for i := range candidates {
		obs := &candidates[i]
		value, ok := parseNumeric(obs.Value)
		if !ok {
			continue
		}
		if best == nil || math.Abs(value) > math.Abs(bestValue) {
			best = obs
			bestValue = value
		}
	}
	if best == nil {
		return nil, 0
	}

	return &ConsolidatedFact{
		Concept:   best.Concept,
		PeriodEnd: best.PeriodEnd,
		Value:     bestValue,
		Unit:      unit,
		Context: ContextMetadata{
			FilingForm: best.FilingForm,
			FiledDate:  best.FiledDate,
			Accession:  best.Accession,
			Member:     firstMember(best.Dimensions),
		},
		DimensionsUsed: true,
	}, math.Abs(bestValue)
}

// filterExcluded drops observations whose dimension members match the
// exclusion policy.
func (s *Selector) filterExcluded(group []RawObservation) []RawObservation {
	var kept []RawObservation
	for _, obs := range group {
		excluded := false
		for _, member := range obs.Dimensions {
			if s.policy.Matches(s.cik, member) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, obs)
		}
	}
	return kept
}

// CompareObservations is the selection tie-break comparator, kept as a
// single ordered comparison so the precedence stays auditable:
//  1. 10-K family forms rank above everything else
//  2. more recently filed ranks above older
//
// Returns >0 when a outranks b, <0 when b outranks a, 0 when tied.
func CompareObservations(a, b *RawObservation) int {
	aAnnual, bAnnual := is10KFamily(a.FilingForm), is10KFamily(b.FilingForm)
	if aAnnual != bAnnual {
		if aAnnual {
			return 1
		}
		return -1
	}
	aFiled, bFiled := parseFiledDate(a.FiledDate), parseFiledDate(b.FiledDate)
	if aFiled.After(bFiled) {
		return 1
	}
	if bFiled.After(aFiled) {
		return -1
	}
	return 0
}

// parseNumeric parses a raw observation value, rejecting non-finite
// results. Thousands separators are tolerated because some sources keep
// presentation formatting.
func parseNumeric(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func firstMember(dims map[string]string) string {
	// Deterministic pick for metadata when several axes exist.
	axes := make([]string, 0, len(dims))
	for axis := range dims {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	if len(axes) == 0 {
		return ""
	}
	return dims[axes[0]]
}
