package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"statement_engine/pkg/core/llm"
	"statement_engine/pkg/core/roles"
	"statement_engine/pkg/core/statement"
	"statement_engine/pkg/core/utils"
)

const (
	ruleConfidence = 1.0
	llmConfidence  = 0.7
)

// taggedLine is one entry of the classifier response.
type taggedLine struct {
	LineID   string   `json:"line_id"`
	CalcTags []string `json:"calc_tags"`
}

// classifierResponse is the only shape the model is allowed to return.
type classifierResponse struct {
	Tags []taggedLine `json:"tags"`
}

// Classifier assigns roles to a statement's line items. The rule table
// runs first; items it does not cover go to the provider in a single
// batched call. A nil provider is valid as long as the rules cover
// everything that needs tagging.
type Classifier struct {
	provider llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify fills Roles and Confidence on every eligible line item of st.
// It is idempotent: items that already carry roles are left untouched,
// so re-running after a partial failure only fills the gaps.
func (c *Classifier) Classify(ctx context.Context, st *statement.Statement) error {
	if st == nil {
		return fmt.Errorf("classify: nil statement")
	}

	var remaining []*statement.LineItem
	for _, item := range st.LineItems {
		if len(item.Roles) > 0 {
			continue
		}
		if IsAbstract(item) {
			continue
		}
		if mapped := RuleRoles(st.Type, item.Tag); mapped != nil {
			item.Roles = mapped
			item.Confidence = ruleConfidence
			continue
		}
		remaining = append(remaining, item)
	}

	if len(remaining) == 0 {
		return nil
	}
	if c.provider == nil {
		return fmt.Errorf("classify: %d unmapped %s items and no provider configured", len(remaining), st.Type)
	}

	payload := BuildPayload(st.Type, remaining)
	userPrompt, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("classify: marshal payload: %w", err)
	}

	raw, err := c.provider.Generate(ctx, systemPrompt(st.Type), string(userPrompt))
	if err != nil {
		return fmt.Errorf("classify: provider call for %s: %w", st.Type, err)
	}

	var resp classifierResponse
	if _, err := utils.SmartParse(raw, &resp); err != nil {
		return fmt.Errorf("classify: unparseable response for %s: %w", st.Type, err)
	}

	c.apply(st, remaining, resp)
	return nil
}

// apply validates the model output against the known line ids and the
// role vocabulary, then writes the survivors onto the items. Lines the
// model skipped keep their empty role list.
func (c *Classifier) apply(st *statement.Statement, remaining []*statement.LineItem, resp classifierResponse) {
	byID := make(map[string]*statement.LineItem, len(remaining))
	for _, item := range remaining {
		byID[item.LineID(st.Type)] = item
	}

	for _, tag := range resp.Tags {
		item, ok := byID[tag.LineID]
		if !ok {
			log.Printf("[WARNING] classifier returned unknown line_id %q for %s, dropping", tag.LineID, st.Type)
			continue
		}
		var kept []string
		for _, role := range tag.CalcTags {
			if !roles.IsValidRoleFor(role, st.Type) {
				log.Printf("[WARNING] classifier returned invalid role %q on %s, dropping", role, tag.LineID)
				continue
			}
			kept = append(kept, role)
		}
		if len(kept) == 0 {
			continue
		}
		item.Roles = kept
		item.Confidence = llmConfidence
	}
}

// systemPrompt enumerates the closed vocabulary for the statement type
// and restates the output contract. The model never sees roles from the
// other two statements.
func systemPrompt(st statement.Type) string {
	allowed := roles.RolesForStatement(st)
	ids := make([]string, 0, len(allowed))
	for id := range allowed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	prompt := "You are a financial statement analyst. You are given line items " +
		"from a company's " + string(st) + " and must assign calculation roles.\n\n" +
		"Allowed roles (use ONLY these exact identifiers):\n"
	for _, id := range ids {
		prompt += fmt.Sprintf("- %s: %s\n", id, roles.Definition(id))
	}
	prompt += "\nRules:\n" +
		"1. Respond with JSON only: {\"tags\": [{\"line_id\": \"...\", \"calc_tags\": [\"...\"]}]}.\n" +
		"2. Never invent role identifiers outside the list above.\n" +
		"3. If you are not confident about a line, return an empty calc_tags list or omit the line entirely.\n" +
		"4. Prefer consolidated totals over components: tag the total line, not its breakdown rows.\n" +
		"5. A role may appear on at most one line unless the lines are genuine duplicates.\n" +
		"6. Lines marked is_abstract are section headers and must not be tagged."
	return prompt
}
