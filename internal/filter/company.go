package filter

import (
	"fmt"
	"strings"

	"go-jobagent/internal/models"
)

type CompanySpec struct {
	Spec  `yaml:",inline"`
	Tier1 []string `yaml:"tier1_companies"`
	Tier2 []string `yaml:"tier2_companies"`
	Tier3 []string `yaml:"tier3_companies"`
}

// CompanyFameFilter scores company reputation from static tiered
// allow-lists, matched by substring containment; highest tier wins.
// Scoring-stage only, never hard-rejects.
type CompanyFameFilter struct {
	spec CompanySpec
}

var bigCompanyKeywords = []string{"科技", "集团", "股份", "有限公司"}

func NewCompanyFameFilter(spec CompanySpec) *CompanyFameFilter {
	return &CompanyFameFilter{spec: spec}
}

func (f *CompanyFameFilter) Kind() Kind      { return KindCompany }
func (f *CompanyFameFilter) Weight() float64 { return f.spec.Weight }

func (f *CompanyFameFilter) Apply(p models.Posting) models.FilterResult {
	company := strings.TrimSpace(p.Company)
	if company == "" {
		return result(0.3, "no company information", nil)
	}

	if name, ok := matchTier(company, f.spec.Tier1); ok {
		return result(1.0, fmt.Sprintf("top-tier company (%s)", name), map[string]any{
			"company_tier":    "tier1",
			"matched_company": name,
			"suggestion":      "top-tier company, strongly recommended",
		})
	}
	if name, ok := matchTier(company, f.spec.Tier2); ok {
		return result(0.9, fmt.Sprintf("well-known AI company (%s)", name), map[string]any{
			"company_tier":    "tier2",
			"matched_company": name,
			"suggestion":      "well-known AI company with strong engineering",
		})
	}
	if name, ok := matchTier(company, f.spec.Tier3); ok {
		return result(0.8, fmt.Sprintf("well-known company (%s)", name), map[string]any{
			"company_tier":    "tier3",
			"matched_company": name,
			"suggestion":      "well-known company, worth considering",
		})
	}

	for _, kw := range bigCompanyKeywords {
		if strings.Contains(company, kw) {
			return result(0.5, fmt.Sprintf("ordinary enterprise (%s)", company), map[string]any{
				"company_tier": "normal",
				"suggestion":   "company background needs a closer look",
			})
		}
	}

	return result(0.3, fmt.Sprintf("small company (%s)", company), map[string]any{
		"company_tier": "small",
		"suggestion":   "small company, evaluate growth prospects carefully",
	})
}

func matchTier(company string, tier []string) (string, bool) {
	for _, name := range tier {
		if strings.Contains(company, name) {
			return name, true
		}
	}
	return "", false
}
