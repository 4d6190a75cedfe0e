package filter

import (
	"fmt"
	"regexp"
	"strings"

	"go-jobagent/internal/models"
)

type ExperienceSpec struct {
	Spec      `yaml:",inline"`
	UserYears float64 `yaml:"user_experience_years"`
}

// ExperienceFilter parses the free-text experience requirement into a
// year band and scores the distance to the user's declared years. Never
// hard-rejects: an unparseable requirement is a mid score, not a drop.
type ExperienceFilter struct {
	spec ExperienceSpec
}

func NewExperienceFilter(spec ExperienceSpec) *ExperienceFilter {
	return &ExperienceFilter{spec: spec}
}

func (f *ExperienceFilter) Kind() Kind      { return KindExperience }
func (f *ExperienceFilter) Weight() float64 { return f.spec.Weight }

func (f *ExperienceFilter) Apply(p models.Posting) models.FilterResult {
	text := strings.TrimSpace(p.Experience)
	if text == "" {
		return result(0.7, "no experience requirement", map[string]any{
			"suggestion": "experience requirement unclear, worth a try",
		})
	}

	req, ok := parseExperience(text)
	if !ok {
		return result(0.5, "experience needs confirmation", map[string]any{
			"experience_text": text,
			"suggestion":      "experience requirement could not be parsed",
		})
	}

	score := experienceScore(f.spec.UserYears, req)

	var reason string
	switch {
	case score >= 0.9:
		reason = fmt.Sprintf("experience fully matches (%.1fy)", f.spec.UserYears)
	case score >= 0.6:
		reason = fmt.Sprintf("experience roughly matches (%.1fy)", f.spec.UserYears)
	default:
		reason = fmt.Sprintf("experience mismatch (%.1fy)", f.spec.UserYears)
	}

	return result(score, reason, map[string]any{
		"requirement":     req.label,
		"user_experience": f.spec.UserYears,
		"suggestion":      experienceSuggestion(f.spec.UserYears, req, score),
	})
}

// experienceReq is a parsed requirement band. maxYears < 0 means
// open-ended ("N年以上").
type experienceReq struct {
	minYears    float64
	maxYears    float64
	isFreshGrad bool
	isUnlimited bool
	label       string
}

var (
	expRangeRegex   = regexp.MustCompile(`(\d+)[-~到](\d+)年`)
	expMinPlusRegex = regexp.MustCompile(`(\d+)(?:年以上|\+年)`)
	expExactRegex   = regexp.MustCompile(`(\d+)年`)
)

func parseExperience(text string) (experienceReq, bool) {
	lower := strings.ToLower(text)

	for _, kw := range []string{"应届", "实习", "校招", "毕业生"} {
		if strings.Contains(lower, kw) {
			return experienceReq{isFreshGrad: true, label: "fresh graduate"}, true
		}
	}
	for _, kw := range []string{"经验不限", "不限", "无要求"} {
		if strings.Contains(lower, kw) {
			return experienceReq{maxYears: -1, isUnlimited: true, label: "unrestricted"}, true
		}
	}

	if m := expRangeRegex.FindStringSubmatch(text); m != nil {
		minY, maxY := atof(m[1]), atof(m[2])
		return experienceReq{minYears: minY, maxYears: maxY, label: fmt.Sprintf("%s-%s years", m[1], m[2])}, true
	}
	if m := expMinPlusRegex.FindStringSubmatch(text); m != nil {
		minY := atof(m[1])
		return experienceReq{minYears: minY, maxYears: -1, label: fmt.Sprintf("%s+ years", m[1])}, true
	}
	if m := expExactRegex.FindStringSubmatch(text); m != nil {
		exact := atof(m[1])
		minY := exact - 0.5
		if minY < 0 {
			minY = 0
		}
		return experienceReq{minYears: minY, maxYears: exact + 0.5, label: fmt.Sprintf("~%s years", m[1])}, true
	}

	return experienceReq{}, false
}

func experienceScore(userYears float64, req experienceReq) float64 {
	if req.isFreshGrad {
		if userYears <= 2 {
			return 0.9
		}
		return 0.5
	}
	if req.isUnlimited {
		return 0.8
	}

	if req.maxYears < 0 { // open-ended
		if userYears >= req.minYears {
			if userYears <= req.minYears+2 {
				return 1.0
			}
			return 0.8
		}
		if req.minYears-userYears <= 1 {
			return 0.6
		}
		return 0.2
	}

	switch {
	case userYears >= req.minYears && userYears <= req.maxYears:
		return 1.0
	case userYears < req.minYears:
		if req.minYears-userYears <= 1 {
			return 0.6
		}
		return 0.2
	default: // overqualified
		return 0.8
	}
}

func experienceSuggestion(userYears float64, req experienceReq, score float64) string {
	if req.isFreshGrad {
		return "targets fresh graduates, good fit to apply"
	}
	switch {
	case score >= 0.9:
		return "experience fully meets the requirement, strongly recommended"
	case score >= 0.6:
		return "experience roughly meets the requirement, worth applying"
	case userYears < req.minYears:
		return fmt.Sprintf("%.1f years short, project work may compensate", req.minYears-userYears)
	default:
		return "possibly overqualified for this band"
	}
}
