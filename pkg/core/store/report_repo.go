package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"statement_engine/pkg/core/validate"
)

// ReportRepo persists validation reports. Hybrid layout: Postgres is
// primary when a pool is configured, a JSON file directory is the
// fallback for local runs. Both are written when both are configured.
type ReportRepo struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewReportRepo creates a repo. With a nil pool and empty dir it
// defaults to .cache/reports so local runs always keep their output.
func NewReportRepo(pool *pgxpool.Pool, dir string) *ReportRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "reports")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check ReportRepo dir: %v\n", err)
		}
	}
	return &ReportRepo{pool: pool, fileDir: dir}
}

// Save stores a report and its rendered markdown.
func (r *ReportRepo) Save(ctx context.Context, report *validate.Report, markdown string) error {
	dataJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if r.pool != nil {
		query := `
			INSERT INTO validation_reports (
				run_id, cik, generated_at, total, passed, failed, data, markdown
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (run_id)
			DO UPDATE SET
				data = EXCLUDED.data,
				markdown = EXCLUDED.markdown,
				total = EXCLUDED.total,
				passed = EXCLUDED.passed,
				failed = EXCLUDED.failed
		`
		_, err = r.pool.Exec(ctx, query,
			report.RunID, report.CIK, report.GeneratedAt,
			report.Summary.Total, report.Summary.Passed, report.Summary.Failed,
			dataJSON, markdown,
		)
		if err != nil {
			return fmt.Errorf("failed to save report to db: %w", err)
		}
	}

	if r.fileDir != "" {
		base := filepath.Join(r.fileDir, report.RunID)
		if err := os.WriteFile(base+".json", dataJSON, 0644); err != nil {
			return fmt.Errorf("failed to save report file: %w", err)
		}
		if markdown != "" {
			if err := os.WriteFile(base+".md", []byte(markdown), 0644); err != nil {
				return fmt.Errorf("failed to save report markdown: %w", err)
			}
		}
	}

	return nil
}

// Latest returns the most recent report for a CIK, or nil when none is
// stored. Only the DB path supports lookup; file mode returns nil.
func (r *ReportRepo) Latest(ctx context.Context, cik string) (*validate.Report, error) {
	if r.pool == nil {
		return nil, nil
	}
	query := `
		SELECT data
		FROM validation_reports
		WHERE cik = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	var dataJSON []byte
	if err := r.pool.QueryRow(ctx, query, cik).Scan(&dataJSON); err != nil {
		return nil, nil
	}
	var report validate.Report
	if err := json.Unmarshal(dataJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored report: %w", err)
	}
	return &report, nil
}
