package pipeline

import (
	"context"
	"testing"
	"time"

	"statement_engine/pkg/core/classify"
	"statement_engine/pkg/core/facts"
	"statement_engine/pkg/core/roles"
	"statement_engine/pkg/core/statement"
	"statement_engine/pkg/core/validate"
)

// --- Mocks ---

type MockFactSource struct {
	Observations []facts.RawObservation
	Labels       map[string]string
	Err          error
}

func (m *MockFactSource) FetchCompanyFacts(ctx context.Context, cik string) ([]facts.RawObservation, map[string]string, error) {
	return m.Observations, m.Labels, m.Err
}

func testObservations() []facts.RawObservation {
	obs := func(concept, start, end, value string, dims map[string]string) facts.RawObservation {
		return facts.RawObservation{
			Concept:     concept,
			PeriodStart: start,
			PeriodEnd:   end,
			Value:       value,
			Unit:        "USD",
			Dimensions:  dims,
			FilingForm:  "10-K",
			FiledDate:   "2025-02-15",
			Accession:   "0000320193-25-000001",
		}
	}
	return []facts.RawObservation{
		// Income: consolidated total plus a segment split to collapse.
		obs("us-gaap:Revenues", "2024-01-01", "2024-12-31", "41000000000", nil),
		obs("us-gaap:Revenues", "2024-01-01", "2024-12-31", "9000000000",
			map[string]string{"srt:StatementGeographicalAxis": "EuropeSegmentMember"}),
		obs("us-gaap:NetIncomeLoss", "2024-01-01", "2024-12-31", "9500000000", nil),
		// Balance: only the combined AP line is reported.
		obs("us-gaap:AccountsPayableAndAccruedLiabilitiesCurrent", "", "2024-12-31", "3200000000", nil),
		obs("us-gaap:Assets", "", "2024-12-31", "500000000000", nil),
		// Cash flow.
		obs("us-gaap:NetCashProvidedByUsedInOperatingActivities", "2024-01-01", "2024-12-31", "26000000000", nil),
	}
}

func testRequirements() []validate.Requirement {
	return []validate.Requirement{
		{
			Variable:      "revenue",
			Statement:     "income",
			ExpectedRoles: []string{roles.ISRevenueTotal},
		},
		{
			Variable:      "accounts_payable",
			Statement:     "balance",
			ExpectedRoles: []string{roles.BSAccountsPayable},
			ProxyRoles:    []string{roles.BSAPAndAccrued},
		},
		{
			Variable:      "operating_cash_flow",
			Statement:     "cash_flow",
			ExpectedRoles: []string{roles.CFNetOperating},
		},
	}
}

func TestRunEndToEndWithRuleOnlyClassification(t *testing.T) {
	source := &MockFactSource{
		Observations: testObservations(),
		Labels:       map[string]string{"us-gaap:Revenues": "Total net sales"},
	}
	orch := NewOrchestrator(
		source,
		classify.NewClassifier(nil),
		validate.NewHarness(testRequirements()),
		nil,
		Config{ClassifyTimeout: 5 * time.Second},
	)

	result, err := orch.Run(context.Background(), "0000320193")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Selection collapsed the segment split to the consolidated total.
	income := result.Statements[statement.Income]
	rev := income.Item("us-gaap:Revenues")
	if rev == nil {
		t.Fatal("Revenues line missing")
	}
	if rev.Periods["2024-12-31"] != 41000000000 {
		t.Errorf("revenue = %f, want consolidated 41B", rev.Periods["2024-12-31"])
	}
	if rev.Label != "Total net sales" {
		t.Errorf("label = %q", rev.Label)
	}
	if !rev.HasRole(roles.ISRevenueTotal) || rev.Confidence != 1.0 {
		t.Errorf("revenue classification: roles=%v confidence=%f", rev.Roles, rev.Confidence)
	}

	// Routing kept each concept on its own statement.
	if result.Statements[statement.Balance].Item("us-gaap:Revenues") != nil {
		t.Error("Revenues leaked onto the balance sheet")
	}
	if result.Statements[statement.CashFlow].Item("us-gaap:NetCashProvidedByUsedInOperatingActivities") == nil {
		t.Error("operating cash flow missing from cash flow statement")
	}

	// Validation: direct, proxy, direct.
	if result.Report.Summary.Passed != 3 {
		t.Errorf("passed = %d/%d: %+v", result.Report.Summary.Passed, result.Report.Summary.Total, result.Report.Results)
	}
	for _, res := range result.Report.Results {
		if res.Variable == "accounts_payable" {
			if res.Status != validate.StatusPassProxy {
				t.Errorf("accounts_payable status = %s, want PASS_PROXY", res.Status)
			}
			if res.Value != 3200000000 {
				t.Errorf("accounts_payable value = %f", res.Value)
			}
		}
	}

	if result.Markdown == "" {
		t.Error("report markdown missing")
	}
	t.Logf("✓ End-to-end run: %d/%d checks passed", result.Report.Summary.Passed, result.Report.Summary.Total)
}

func TestRunFailsWithoutObservations(t *testing.T) {
	orch := NewOrchestrator(
		&MockFactSource{},
		classify.NewClassifier(nil),
		validate.NewHarness(testRequirements()),
		nil,
		DefaultConfig(),
	)

	if _, err := orch.Run(context.Background(), "0000320193"); err == nil {
		t.Error("expected error for empty fact source")
	}
}

func TestRoutingFallbackForUnregisteredConcepts(t *testing.T) {
	instant := facts.RawObservation{Concept: "us-gaap:SomeObscureReserve", PeriodEnd: "2024-12-31"}
	if !routedTo(statement.Balance, instant) {
		t.Error("instant unregistered fact should route to the balance sheet")
	}
	if routedTo(statement.Income, instant) {
		t.Error("instant fact routed to income statement")
	}

	flow := facts.RawObservation{Concept: "us-gaap:SomeObscureExpense", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31"}
	if !routedTo(statement.Income, flow) {
		t.Error("duration fact should default to the income statement")
	}

	cashy := facts.RawObservation{Concept: "us-gaap:ProceedsFromSaleOfOddAsset", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31"}
	if !routedTo(statement.CashFlow, cashy) {
		t.Error("cash movement name should route to the cash flow statement")
	}

	// Registered tags never use the fallback.
	registered := facts.RawObservation{Concept: "us-gaap:Assets", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31"}
	if !routedTo(statement.Balance, registered) || routedTo(statement.Income, registered) {
		t.Error("registry membership must override period-shape heuristics")
	}
}

func TestClassificationFailureDoesNotFailTheRun(t *testing.T) {
	// An unregistered duration concept lands on the income statement and
	// needs a provider; with none configured the type degrades but the
	// run completes.
	source := &MockFactSource{
		Observations: append(testObservations(), facts.RawObservation{
			Concept: "us-gaap:SomeObscureExpense", PeriodStart: "2024-01-01", PeriodEnd: "2024-12-31",
			Value: "100", Unit: "USD", FilingForm: "10-K", FiledDate: "2025-02-15",
		}),
	}
	orch := NewOrchestrator(
		source,
		classify.NewClassifier(nil),
		validate.NewHarness(testRequirements()),
		nil,
		DefaultConfig(),
	)

	result, err := orch.Run(context.Background(), "0000320193")
	if err != nil {
		t.Fatalf("partial classification failure should not fail the run: %v", err)
	}
	if result.Report == nil {
		t.Fatal("report missing")
	}
}
