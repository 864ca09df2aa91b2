package facts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPolicyMatchesSegmentMembers(t *testing.T) {
	policy := DefaultExclusionPolicy()

	cases := []struct {
		member string
		want   bool
	}{
		{"EuropeSegmentMember", true},
		{"GeographicConcentrationMember", true},
		{"ConsolidatedSubsidiariesMember", true},
		{"IntersegmentEliminationMember", true},
		{"ProductMember", false},
		{"", false},
	}
	for _, c := range cases {
		if got := policy.Matches("0000320193", c.member); got != c.want {
			t.Errorf("Matches(%q) = %v, want %v", c.member, got, c.want)
		}
	}
}

func TestOverrideReplacesKeywordsForOneCompany(t *testing.T) {
	policy := DefaultExclusionPolicy()
	policy.Overrides = map[string][]string{
		"0000019617": {"bankingsubunit"},
	}

	// The override company keeps its "subsidiary" members.
	if policy.Matches("0000019617", "ConsolidatedSubsidiariesMember") {
		t.Error("override company should not match default keywords")
	}
	if !policy.Matches("0000019617", "BankingSubunitEastMember") {
		t.Error("override keyword did not match")
	}

	// Everyone else is unaffected.
	if !policy.Matches("0000320193", "ConsolidatedSubsidiariesMember") {
		t.Error("non-override company lost default keywords")
	}
}

func TestLoadExclusionPolicyFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := []byte("overrides:\n  \"0000019617\":\n    - bankingsubunit\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	policy, err := LoadExclusionPolicy(path)
	if err != nil {
		t.Fatalf("LoadExclusionPolicy failed: %v", err)
	}
	// Keywords fall back to defaults when the file only has overrides.
	if len(policy.Keywords) == 0 {
		t.Error("expected default keywords to be filled in")
	}
	if !policy.Matches("0000019617", "BankingSubunitWestMember") {
		t.Error("loaded override not applied")
	}
}
