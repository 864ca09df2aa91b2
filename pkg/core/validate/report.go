package validate

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// RenderMarkdown produces the human-readable validation report. The
// output is checked through Goldmark before being returned so a broken
// table never reaches storage.
func (r *Report) RenderMarkdown() (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Validation Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- CIK: %s\n", r.CIK)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Result: %d/%d passed\n\n", r.Summary.Passed, r.Summary.Total)

	b.WriteString("| Variable | Status | Source | Value | Notes |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, res := range r.Results {
		notes := res.Reason
		if len(res.Alternates) > 0 {
			notes += " (candidates: " + strings.Join(res.Alternates, ", ") + ")"
		}
		value := ""
		if res.Passed() {
			value = fmt.Sprintf("%.2f", res.Value)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			res.Variable, res.Status, res.ChosenLineItem, value, notes)
	}

	md := b.String()
	if !validMarkdown(md) {
		return "", fmt.Errorf("rendered report for run %s is not valid markdown", r.RunID)
	}
	return md, nil
}

// validMarkdown runs the document through Goldmark. The parser is very
// permissive, so this only catches gross breakage.
func validMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}
