package facts

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// DefaultExclusionKeywords flags dimension members that look like
// segment, geography, or subsidiary splits. The list is known to be
// company-specific and incomplete; use per-company overrides rather
// than extending it for one filer.
var DefaultExclusionKeywords = []string{
	"segment",
	"geographic",
	"geography",
	"credit",
	"subsidiar",
	"region",
	"division",
	"intersegment",
}

// ExclusionPolicy decides which dimensioned observations to drop during
// consolidation. A member matching any keyword (case-insensitive
// substring) is excluded. When exclusion would empty a candidate group,
// the selector falls back to the unfiltered group.
type ExclusionPolicy struct {
	Keywords []string `yaml:"keywords"`

	// Overrides maps a company identifier (CIK) to replacement keywords
	// for filers whose consolidated sub-entities trip the default list.
	Overrides map[string][]string `yaml:"overrides,omitempty"`
}

// DefaultExclusionPolicy returns the built-in policy.
func DefaultExclusionPolicy() *ExclusionPolicy {
	kw := make([]string, len(DefaultExclusionKeywords))
	copy(kw, DefaultExclusionKeywords)
	return &ExclusionPolicy{Keywords: kw}
}

// LoadExclusionPolicy reads a policy from a YAML file. Missing keywords
// fall back to the defaults so an overrides-only file is valid.
func LoadExclusionPolicy(path string) (*ExclusionPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion policy: %w", err)
	}
	var policy ExclusionPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse exclusion policy: %w", err)
	}
	if len(policy.Keywords) == 0 {
		policy.Keywords = DefaultExclusionPolicy().Keywords
	}
	return &policy, nil
}

// ForCompany returns the effective keyword list for a company.
func (p *ExclusionPolicy) ForCompany(cik string) []string {
	if p == nil {
		return DefaultExclusionKeywords
	}
	if kw, ok := p.Overrides[cik]; ok && len(kw) > 0 {
		return kw
	}
	return p.Keywords
}

// Matches reports whether a dimension member trips the policy for the
// given company.
func (p *ExclusionPolicy) Matches(cik, member string) bool {
	lower := strings.ToLower(member)
	for _, kw := range p.ForCompany(cik) {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
