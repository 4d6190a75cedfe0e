package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-jobagent/internal/models"
)

type GraduationSpec struct {
	Spec           `yaml:",inline"`
	UserGraduation string `yaml:"user_graduation"` // "YYYY-MM"
}

// GraduationFilter matches a "届" cohort requirement or an explicit
// latest-graduation date against the user's graduation month. A cohort
// that is explicitly for someone else is a hard reject; vague wording is
// a needs-confirmation mid score.
type GraduationFilter struct {
	spec       GraduationSpec
	userCohort int
	userGrad   time.Time
}

var cohortRegex = regexp.MustCompile(`(\d{4})届`)

func NewGraduationFilter(spec GraduationSpec) *GraduationFilter {
	f := &GraduationFilter{spec: spec}
	f.userCohort, f.userGrad = parseUserGraduation(spec.UserGraduation)
	return f
}

func (f *GraduationFilter) Kind() Kind      { return KindGraduation }
func (f *GraduationFilter) Weight() float64 { return f.spec.Weight }

func (f *GraduationFilter) Apply(p models.Posting) models.FilterResult {
	req := strings.TrimSpace(p.Graduation)
	if req == "" {
		return result(0.8, "no graduation requirement", map[string]any{
			"suggestion": "no explicit graduation window",
		})
	}

	if m := cohortRegex.FindStringSubmatch(req); m != nil {
		cohort, _ := strconv.Atoi(m[1])
		switch {
		case f.userCohort == 0:
			return result(0.5, "graduation needs confirmation", map[string]any{
				"requirement": req,
				"suggestion":  "user graduation not configured, confirm manually",
			})
		case cohort == f.userCohort:
			return result(1.0, fmt.Sprintf("cohort %d matches", cohort), map[string]any{
				"requirement": req,
				"suggestion":  "graduation window fully matches",
			})
		case cohort < f.userCohort:
			return result(0.0, fmt.Sprintf("cohort %d expired", cohort), map[string]any{
				"requirement":   req,
				"reject_reason": "expired_graduation",
			})
		default:
			return result(0.0, fmt.Sprintf("cohort %d mismatch", cohort), map[string]any{
				"requirement":   req,
				"reject_reason": "graduation_mismatch",
			})
		}
	}

	// explicit latest-graduation date, e.g. "2024年8月前毕业"
	if latest, ok := ParseDate(req); ok && !f.userGrad.IsZero() {
		if f.userGrad.After(latest) {
			return result(0.0, "graduates after required date", map[string]any{
				"requirement":   req,
				"reject_reason": "graduation_mismatch",
			})
		}
		return result(1.0, "graduation date within window", map[string]any{
			"requirement": req,
			"suggestion":  "graduation window fully matches",
		})
	}

	if strings.Contains(req, "应届") || strings.Contains(req, "校招") {
		return result(0.8, "fresh-graduate recruitment", map[string]any{
			"requirement": req,
			"suggestion":  "campus recruitment, check the detailed window",
		})
	}

	return result(0.5, "graduation needs confirmation", map[string]any{
		"requirement": req,
		"suggestion":  "graduation requirement unclear, confirm manually",
	})
}

// parseUserGraduation maps a "YYYY-MM" graduation month onto the campus
// cohort it belongs to: Sep Y-1 through Aug Y is cohort Y.
func parseUserGraduation(s string) (cohort int, grad time.Time) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, time.Time{}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return 0, time.Time{}
	}
	grad = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	cohort = year
	if month >= 9 {
		cohort = year + 1
	}
	return cohort, grad
}
