// Package ingest pulls raw XBRL observations from SEC EDGAR.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"statement_engine/pkg/core/facts"
)

const (
	// SEC EDGAR API endpoints
	SECCompanyFactsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	SECFilingIndexURL  = "https://www.sec.gov/Archives/edgar/data/%s/%s/"

	// Required User-Agent per SEC guidelines
	UserAgent = "StatementEngine/1.0 (contact@example.com)"

	// SEC fair-access guidance caps automated clients at 10 req/s.
	requestsPerSecond = 8
	maxAttempts       = 3
)

// EDGARClient handles SEC EDGAR API requests with client-side pacing.
type EDGARClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter

	// URL templates, overridable in tests.
	factsURL string
	indexURL string
}

// NewEDGARClient creates a new SEC EDGAR API client.
func NewEDGARClient() *EDGARClient {
	return &EDGARClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		factsURL: SECCompanyFactsURL,
		indexURL: SECFilingIndexURL,
	}
}

// companyFactsResponse mirrors the SEC companyfacts JSON shape.
type companyFactsResponse struct {
	CIK        json.Number `json:"cik"`
	EntityName string      `json:"entityName"`
	Facts      map[string]map[string]struct {
		Label string `json:"label"`
		Units map[string][]struct {
			Start string      `json:"start"`
			End   string      `json:"end"`
			Val   json.Number `json:"val"`
			Accn  string      `json:"accn"`
			Form  string      `json:"form"`
			Filed string      `json:"filed"`
			Frame string      `json:"frame"`
		} `json:"units"`
	} `json:"facts"`
}

// FetchCompanyFacts downloads all XBRL facts for a company and flattens
// them into raw observations. Labels are returned alongside, keyed by
// namespaced concept, for statement presentation.
func (c *EDGARClient) FetchCompanyFacts(ctx context.Context, cik string) ([]facts.RawObservation, map[string]string, error) {
	url := fmt.Sprintf(c.factsURL, PadCIK(cik))

	body, err := c.getWithRetry(ctx, url, "application/json")
	if err != nil {
		return nil, nil, fmt.Errorf("fetch companyfacts for CIK %s: %w", cik, err)
	}

	var resp companyFactsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("parse companyfacts for CIK %s: %w", cik, err)
	}

	var observations []facts.RawObservation
	labels := make(map[string]string)
	for taxonomy, concepts := range resp.Facts {
		for localName, detail := range concepts {
			concept := taxonomy + ":" + localName
			if detail.Label != "" {
				labels[concept] = detail.Label
			}
			for unit, points := range detail.Units {
				for _, p := range points {
					observations = append(observations, facts.RawObservation{
						Concept:     concept,
						PeriodStart: p.Start,
						PeriodEnd:   p.End,
						Value:       p.Val.String(),
						Unit:        unit,
						FilingForm:  p.Form,
						FiledDate:   p.Filed,
						Accession:   p.Accn,
					})
				}
			}
		}
	}

	log.Printf("[INGEST] CIK %s: %d observations across %d concepts", cik, len(observations), len(labels))
	return observations, labels, nil
}

// getWithRetry performs a rate-limited GET with bounded exponential
// backoff on throttling and server errors.
func (c *EDGARClient) getWithRetry(ctx context.Context, url, accept string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", accept)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case resp.StatusCode == http.StatusOK && readErr == nil:
				return body, nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				lastErr = fmt.Errorf("SEC returned status %d", resp.StatusCode)
			case readErr != nil:
				lastErr = readErr
			default:
				// Client errors are not retryable.
				return nil, fmt.Errorf("SEC returned status %d", resp.StatusCode)
			}
		}

		if attempt < maxAttempts {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			log.Printf("[INGEST] attempt %d/%d failed (%v), retrying in %s", attempt, maxAttempts, lastErr, backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", maxAttempts, lastErr)
}

// PadCIK zero-pads a CIK to the 10 digits SEC URLs expect.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}
