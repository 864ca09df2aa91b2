package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleIndexHTML = `<html><body>
<table class="tableFile" summary="Document Format Files">
<tr><th>Seq</th><th>Description</th><th>Document</th><th>Type</th><th>Size</th></tr>
<tr>
  <td>1</td>
  <td>FORM 10-K</td>
  <td><a href="/Archives/edgar/data/320193/000032019325000001/aapl-20241231.htm">aapl-20241231.htm</a></td>
  <td>10-K</td>
  <td>8123456</td>
</tr>
<tr>
  <td>2</td>
  <td>EXHIBIT 21.1</td>
  <td><a href="/Archives/edgar/data/320193/000032019325000001/exhibit211.htm">exhibit211.htm</a></td>
  <td>EX-21.1</td>
  <td>12345</td>
</tr>
</table>
</body></html>`

func TestFetchFilingIndexParsesDocumentTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleIndexHTML))
	}))
	defer server.Close()

	client := testClient(server)
	entries, err := client.FetchFilingIndex(context.Background(), "320193", "0000320193-25-000001")
	if err != nil {
		t.Fatalf("FetchFilingIndex failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Document != "aapl-20241231.htm" || entries[0].DocType != "10-K" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].URL != "https://www.sec.gov/Archives/edgar/data/320193/000032019325000001/aapl-20241231.htm" {
		t.Errorf("href not resolved: %s", entries[0].URL)
	}
}

func TestPrimaryDocumentPrefersFormTypeMatch(t *testing.T) {
	entries := []IndexEntry{
		{Document: "exhibit211.htm", DocType: "EX-21.1"},
		{Document: "aapl-20241231.htm", DocType: "10-K"},
	}

	primary, ok := PrimaryDocument(entries, "10-K")
	if !ok || primary.Document != "aapl-20241231.htm" {
		t.Errorf("primary = %+v, ok = %v", primary, ok)
	}

	// Without a type match, fall back to the first .htm file.
	primary, ok = PrimaryDocument(entries, "10-Q")
	if !ok || primary.Document != "exhibit211.htm" {
		t.Errorf("fallback primary = %+v", primary)
	}

	if _, ok := PrimaryDocument(nil, "10-K"); ok {
		t.Error("empty index should yield no primary document")
	}
}
