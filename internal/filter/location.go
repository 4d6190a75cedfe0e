package filter

import (
	"fmt"
	"strings"

	"go-jobagent/internal/models"
)

type LocationSpec struct {
	Spec       `yaml:",inline"`
	Preferred  []string `yaml:"preferred_cities"`
	Acceptable []string `yaml:"acceptable_cities"`
	Rejected   []string `yaml:"rejected_cities"`
}

// LocationFilter hard-rejects deny-listed cities and tiers everything
// else: preferred city or remote 1.0, acceptable 0.8, unclassified 0.4.
type LocationFilter struct {
	spec LocationSpec
}

var remoteKeywords = []string{"远程", "在家办公", "remote", "work from home"}

func NewLocationFilter(spec LocationSpec) *LocationFilter {
	return &LocationFilter{spec: spec}
}

func (f *LocationFilter) Kind() Kind      { return KindLocation }
func (f *LocationFilter) Weight() float64 { return f.spec.Weight }

func (f *LocationFilter) Apply(p models.Posting) models.FilterResult {
	location := strings.TrimSpace(p.Location)
	if location == "" {
		return result(0.5, "no location information", map[string]any{
			"suggestion": "location unknown, confirm before applying",
		})
	}

	for _, city := range f.spec.Rejected {
		if strings.Contains(location, city) {
			return result(0.0, fmt.Sprintf("rejected city (%s)", city), map[string]any{
				"matched_city":  city,
				"reject_reason": "blacklisted_city",
			})
		}
	}

	lower := strings.ToLower(location)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return result(1.0, "remote work", map[string]any{
				"location_type": "remote",
				"suggestion":    "remote position, no relocation needed",
			})
		}
	}

	for _, city := range f.spec.Preferred {
		if strings.Contains(location, city) {
			return result(1.0, fmt.Sprintf("preferred city (%s)", city), map[string]any{
				"matched_city":  city,
				"location_type": "preferred",
				"suggestion":    fmt.Sprintf("%s is a preferred city", city),
			})
		}
	}

	for _, city := range f.spec.Acceptable {
		if strings.Contains(location, city) {
			return result(0.8, fmt.Sprintf("acceptable city (%s)", city), map[string]any{
				"matched_city":  city,
				"location_type": "acceptable",
				"suggestion":    fmt.Sprintf("%s is worth considering", city),
			})
		}
	}

	return result(0.4, fmt.Sprintf("other city (%s)", location), map[string]any{
		"location":      location,
		"location_type": "other",
		"suggestion":    "relocation cost needs evaluation",
	})
}
