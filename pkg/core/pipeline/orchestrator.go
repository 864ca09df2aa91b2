// Package pipeline wires ingestion, selection, assembly, classification
// and validation into one run per company.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"statement_engine/pkg/core/canon"
	"statement_engine/pkg/core/classify"
	"statement_engine/pkg/core/facts"
	"statement_engine/pkg/core/statement"
	"statement_engine/pkg/core/store"
	"statement_engine/pkg/core/validate"
)

// FactSource supplies raw observations for a company. Implementations
// may fetch live from SEC EDGAR or replay a local capture.
type FactSource interface {
	FetchCompanyFacts(ctx context.Context, cik string) ([]facts.RawObservation, map[string]string, error)
}

// Config tunes a pipeline run.
type Config struct {
	// ClassifyTimeout bounds the classifier call per statement type.
	ClassifyTimeout time.Duration
	// CacheTTL is the lifetime of cached fact selections. Zero disables
	// the cache.
	CacheTTL time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ClassifyTimeout: 90 * time.Second,
		CacheTTL:        24 * time.Hour,
	}
}

// Orchestrator runs the full engine for one company at a time.
type Orchestrator struct {
	source     FactSource
	policy     *facts.ExclusionPolicy
	classifier *classify.Classifier
	harness    *validate.Harness
	reports    *store.ReportRepo
	cache      facts.FactCache
	config     Config
}

// NewOrchestrator assembles an orchestrator from its dependencies.
// reports may be nil to skip persistence; policy nil falls back to the
// default exclusion keywords.
func NewOrchestrator(source FactSource, classifier *classify.Classifier, harness *validate.Harness, reports *store.ReportRepo, config Config) *Orchestrator {
	o := &Orchestrator{
		source:     source,
		classifier: classifier,
		harness:    harness,
		reports:    reports,
		config:     config,
	}
	if config.CacheTTL > 0 {
		o.cache = store.NewMemoryCache(config.CacheTTL)
	}
	return o
}

// SetPolicy overrides the exclusion policy used during fact selection.
func (o *Orchestrator) SetPolicy(policy *facts.ExclusionPolicy) {
	o.policy = policy
}

// RunResult is everything a run produced.
type RunResult struct {
	CIK        string
	Statements map[statement.Type]*statement.Statement
	Report     *validate.Report
	Markdown   string
}

// Run executes the engine for one company: fetch, consolidate, assemble,
// classify (the three statements concurrently), validate, persist.
// Classification failure on one statement type degrades that statement
// to unclassified rather than failing the run.
func (o *Orchestrator) Run(ctx context.Context, cik string) (*RunResult, error) {
	start := time.Now()
	log.Printf("[PIPELINE] starting run for CIK %s", cik)

	observations, labels, err := o.source.FetchCompanyFacts(ctx, cik)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch facts for %s: %w", cik, err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("pipeline: no observations for %s", cik)
	}

	selector := facts.NewSelector(o.policy, cik)
	if o.cache != nil {
		selector.SetCache(o.cache, o.config.CacheTTL)
	}

	statements := make(map[statement.Type]*statement.Statement)
	for _, st := range []statement.Type{statement.Income, statement.Balance, statement.CashFlow} {
		statements[st] = o.assembleStatement(st, selector, observations, labels)
	}

	o.classifyAll(ctx, statements)

	report := o.harness.Run(cik, statements)
	markdown, err := report.RenderMarkdown()
	if err != nil {
		log.Printf("[WARNING] report render failed for %s: %v", cik, err)
	}

	if o.reports != nil {
		if err := o.reports.Save(ctx, report, markdown); err != nil {
			log.Printf("[WARNING] report persistence failed for %s: %v", cik, err)
		}
	}

	log.Printf("[PIPELINE] run for CIK %s done in %s: %d/%d checks passed",
		cik, time.Since(start).Round(time.Millisecond), report.Summary.Passed, report.Summary.Total)

	return &RunResult{
		CIK:        cik,
		Statements: statements,
		Report:     report,
		Markdown:   markdown,
	}, nil
}

// assembleStatement consolidates every (concept, period) routed to this
// statement type and assembles the ordered result.
func (o *Orchestrator) assembleStatement(st statement.Type, selector *facts.Selector, observations []facts.RawObservation, labels map[string]string) *statement.Statement {
	// Collect the distinct (concept, period) pairs for this statement.
	pairs := make(map[string]map[string]bool)
	byConcept := make(map[string][]facts.RawObservation)
	for _, obs := range observations {
		if !routedTo(st, obs) {
			continue
		}
		if pairs[obs.Concept] == nil {
			pairs[obs.Concept] = make(map[string]bool)
		}
		pairs[obs.Concept][obs.PeriodEnd] = true
		byConcept[obs.Concept] = append(byConcept[obs.Concept], obs)
	}

	concepts := make([]string, 0, len(pairs))
	for concept := range pairs {
		concepts = append(concepts, concept)
	}
	sort.Strings(concepts)

	var consolidated []facts.ConsolidatedFact
	for _, concept := range concepts {
		periods := make([]string, 0, len(pairs[concept]))
		for period := range pairs[concept] {
			periods = append(periods, period)
		}
		sort.Strings(periods)
		for _, period := range periods {
			if fact := selector.Select(byConcept[concept], concept, period); fact != nil {
				consolidated = append(consolidated, *fact)
			}
		}
	}

	return statement.Assemble(st, canon.OrderFor(st), consolidated, labels)
}

// routedTo decides which statement an observation belongs to. Registry
// membership wins; unregistered concepts fall back to period shape
// (instant facts are balance sheet) and a cash-movement name check.
func routedTo(st statement.Type, obs facts.RawObservation) bool {
	inAny := false
	for _, candidate := range []statement.Type{statement.Income, statement.Balance, statement.CashFlow} {
		if canon.Contains(candidate, obs.Concept) {
			inAny = true
			if candidate == st {
				return true
			}
		}
	}
	if inAny {
		return false
	}

	if obs.PeriodStart == "" {
		return st == statement.Balance
	}
	if isCashMovement(obs.Concept) {
		return st == statement.CashFlow
	}
	return st == statement.Income
}

var cashMovementMarkers = []string{
	"NetCashProvidedByUsedIn",
	"PaymentsTo",
	"PaymentsFor",
	"PaymentsOf",
	"ProceedsFrom",
	"RepaymentsOf",
	"IncreaseDecreaseIn",
}

func isCashMovement(concept string) bool {
	local := statement.LocalName(concept)
	for _, marker := range cashMovementMarkers {
		if strings.Contains(local, marker) {
			return true
		}
	}
	return false
}

// classifyAll runs the classifier on the three statements in parallel,
// each under its own timeout. A failed type keeps its items unclassified
// and the run continues.
func (o *Orchestrator) classifyAll(ctx context.Context, statements map[statement.Type]*statement.Statement) {
	var wg sync.WaitGroup
	for st, stmt := range statements {
		if stmt == nil || len(stmt.LineItems) == 0 {
			continue
		}
		wg.Add(1)
		go func(st statement.Type, stmt *statement.Statement) {
			defer wg.Done()
			typeCtx := ctx
			if o.config.ClassifyTimeout > 0 {
				var cancel context.CancelFunc
				typeCtx, cancel = context.WithTimeout(ctx, o.config.ClassifyTimeout)
				defer cancel()
			}
			if err := o.classifier.Classify(typeCtx, stmt); err != nil {
				log.Printf("[WARNING] classification failed for %s: %v", st, err)
			}
		}(st, stmt)
	}
	wg.Wait()
}
