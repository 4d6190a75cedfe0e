package filter

import (
	"fmt"
	"strings"

	"go-jobagent/internal/models"
)

type DomainSpec struct {
	Spec    `yaml:",inline"`
	Core    []string `yaml:"core_domains"`
	AI      []string `yaml:"ai_domains"`
	Related []string `yaml:"related_domains"`
}

// BusinessDomainFilter matches a three-tier keyword taxonomy against the
// posting's title, description and recruitment direction; the highest
// tier hit determines the score.
type BusinessDomainFilter struct {
	spec DomainSpec
}

func NewBusinessDomainFilter(spec DomainSpec) *BusinessDomainFilter {
	return &BusinessDomainFilter{spec: spec}
}

func (f *BusinessDomainFilter) Kind() Kind      { return KindDomain }
func (f *BusinessDomainFilter) Weight() float64 { return f.spec.Weight }

func (f *BusinessDomainFilter) Apply(p models.Posting) models.FilterResult {
	text := strings.TrimSpace(p.Title + " " + p.Description + " " + p.Direction)
	if text == "" {
		return result(0.5, "no business description", map[string]any{
			"suggestion": "business description missing",
		})
	}

	lower := strings.ToLower(text)
	coreHits := matchDomains(lower, f.spec.Core)
	aiHits := matchDomains(lower, f.spec.AI)
	relatedHits := matchDomains(lower, f.spec.Related)

	details := map[string]any{
		"core_matches":    coreHits,
		"ai_matches":      aiHits,
		"related_matches": relatedHits,
	}

	switch {
	case len(coreHits) > 0:
		details["suggestion"] = "core technical direction, strongly recommended"
		return result(1.0, fmt.Sprintf("core domain match (%s)", joinFirst(coreHits, 2)), details)
	case len(aiHits) > 0:
		details["suggestion"] = "AI-adjacent direction, recommended"
		return result(0.8, fmt.Sprintf("AI domain match (%s)", joinFirst(aiHits, 2)), details)
	case len(relatedHits) > 0:
		details["suggestion"] = "related technical field, worth considering"
		return result(0.6, fmt.Sprintf("related domain match (%s)", joinFirst(relatedHits, 2)), details)
	default:
		return result(0.3, "no domain match", map[string]any{
			"suggestion": "business domain does not match the profile",
		})
	}
}

func matchDomains(lowerText string, domains []string) []string {
	var hits []string
	for _, domain := range domains {
		if strings.Contains(lowerText, strings.ToLower(domain)) {
			hits = append(hits, domain)
		}
	}
	return hits
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
