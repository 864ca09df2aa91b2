package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IndexEntry is one document listed in a filing's index page.
type IndexEntry struct {
	Sequence    string `json:"sequence"`
	Description string `json:"description"`
	Document    string `json:"document"`
	DocType     string `json:"type"`
	Size        string `json:"size"`
	URL         string `json:"url"`
}

// FetchFilingIndex downloads and parses the EDGAR index page for one
// filing, listing every document it contains.
func (c *EDGARClient) FetchFilingIndex(ctx context.Context, cik, accession string) ([]IndexEntry, error) {
	cleanAccession := strings.ReplaceAll(accession, "-", "")
	baseURL := fmt.Sprintf(c.indexURL, strings.TrimLeft(cik, "0"), cleanAccession)

	body, err := c.getWithRetry(ctx, baseURL, "text/html")
	if err != nil {
		return nil, fmt.Errorf("fetch filing index %s: %w", accession, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse filing index %s: %w", accession, err)
	}

	var entries []IndexEntry
	doc.Find("table.tableFile tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}
		entry := IndexEntry{
			Sequence:    strings.TrimSpace(cells.Eq(0).Text()),
			Description: strings.TrimSpace(cells.Eq(1).Text()),
			Document:    strings.TrimSpace(cells.Eq(2).Text()),
			DocType:     strings.TrimSpace(cells.Eq(3).Text()),
			Size:        strings.TrimSpace(cells.Eq(4).Text()),
		}
		if href, ok := cells.Eq(2).Find("a").Attr("href"); ok {
			if strings.HasPrefix(href, "/") {
				entry.URL = "https://www.sec.gov" + href
			} else {
				entry.URL = baseURL + href
			}
		}
		if entry.Document != "" {
			entries = append(entries, entry)
		}
	})

	// Plain directory listings (no tableFile class) use the same layout
	// under a bare table.
	if len(entries) == 0 {
		doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}
			name := strings.TrimSpace(cells.Eq(0).Text())
			if name == "" || name == "." || name == ".." {
				return
			}
			entries = append(entries, IndexEntry{
				Document: name,
				URL:      baseURL + name,
			})
		})
	}

	return entries, nil
}

// PrimaryDocument returns the index entry for the main filing document:
// the first entry whose type matches the given form, falling back to
// the first .htm document.
func PrimaryDocument(entries []IndexEntry, form string) (IndexEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.DocType, form) {
			return e, true
		}
	}
	for _, e := range entries {
		if strings.HasSuffix(strings.ToLower(e.Document), ".htm") {
			return e, true
		}
	}
	return IndexEntry{}, false
}
