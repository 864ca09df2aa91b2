package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"statement_engine/pkg/core/classify"
	"statement_engine/pkg/core/facts"
	"statement_engine/pkg/core/ingest"
	"statement_engine/pkg/core/llm"
	"statement_engine/pkg/core/pipeline"
	"statement_engine/pkg/core/statement"
	"statement_engine/pkg/core/store"
	"statement_engine/pkg/core/validate"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cik := flag.String("cik", "", "company CIK, e.g. 0000320193 for Apple")
	provider := flag.String("provider", "gemini", "LLM provider: gemini or deepseek")
	policyPath := flag.String("policy", "", "optional YAML exclusion policy override")
	requirementsPath := flag.String("requirements", "", "optional YAML validation requirements override")
	reportDir := flag.String("reports", "", "directory for report files (default .cache/reports)")
	flag.Parse()

	if *cik == "" {
		log.Fatal("Error: -cik is required.")
	}

	ctx := context.Background()

	aiProvider, err := buildProvider(*provider)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	policy := facts.DefaultExclusionPolicy()
	if *policyPath != "" {
		policy, err = facts.LoadExclusionPolicy(*policyPath)
		if err != nil {
			log.Fatalf("Error loading exclusion policy: %v", err)
		}
	}

	requirements := validate.DefaultRequirements()
	if *requirementsPath != "" {
		requirements, err = validate.LoadRequirements(*requirementsPath)
		if err != nil {
			log.Fatalf("Error loading requirements: %v", err)
		}
	}

	// Postgres is optional: without DATABASE_URL reports land on disk.
	var repo *store.ReportRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Error initializing database: %v", err)
		}
		defer store.Close()
		repo = store.NewReportRepo(store.GetPool(), *reportDir)
	} else {
		repo = store.NewReportRepo(nil, *reportDir)
	}

	orch := pipeline.NewOrchestrator(
		ingest.NewEDGARClient(),
		classify.NewClassifier(aiProvider),
		validate.NewHarness(requirements),
		repo,
		pipeline.DefaultConfig(),
	)
	orch.SetPolicy(policy)

	fmt.Printf("🚀 Statement Engine starting for CIK %s...\n", *cik)

	result, err := orch.Run(ctx, *cik)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	for _, st := range []statement.Type{statement.Income, statement.Balance, statement.CashFlow} {
		stmt := result.Statements[st]
		if stmt == nil {
			continue
		}
		tagged := 0
		for _, item := range stmt.LineItems {
			if len(item.Roles) > 0 {
				tagged++
			}
		}
		fmt.Printf("  %-16s %3d line items, %3d classified\n", st, len(stmt.LineItems), tagged)
	}

	fmt.Printf("\nValidation: %d/%d passed (run %s)\n",
		result.Report.Summary.Passed, result.Report.Summary.Total, result.Report.RunID)
	for _, res := range result.Report.Results {
		mark := "✓"
		if !res.Passed() {
			mark = "✗"
		}
		fmt.Printf("  %s %-24s %s\n", mark, res.Variable, res.Status)
	}
}

func buildProvider(name string) (llm.Provider, error) {
	switch strings.ToLower(name) {
	case "gemini":
		if os.Getenv("GEMINI_API_KEY") == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return &llm.GeminiProvider{}, nil
	case "deepseek":
		if os.Getenv("DEEPSEEK_API_KEY") == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is not set")
		}
		return &llm.DeepSeekProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
