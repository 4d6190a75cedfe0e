package filter

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"go-jobagent/internal/models"
)

type SalarySpec struct {
	Spec    `yaml:",inline"`
	HardMin float64 `yaml:"hard_min_salary"`
	HardMax float64 `yaml:"hard_max_salary"`
	Target  float64 `yaml:"target_salary"`
}

// SalaryFilter parses the salary text into a monthly range in k and
// rejects postings outside the hard floor/ceiling; in-range salaries are
// graded by deviation from the target.
type SalaryFilter struct {
	spec SalarySpec
}

func NewSalaryFilter(spec SalarySpec) *SalaryFilter {
	return &SalaryFilter{spec: spec}
}

func (f *SalaryFilter) Kind() Kind      { return KindSalary }
func (f *SalaryFilter) Weight() float64 { return f.spec.Weight }

func (f *SalaryFilter) Apply(p models.Posting) models.FilterResult {
	salaryText := p.Salary
	if salaryText == "" {
		salaryText = extractSalaryFromDescription(p.Description)
	}
	if salaryText == "" {
		return result(0.5, "no salary information", map[string]any{
			"suggestion": "salary unknown, confirm before applying",
		})
	}

	minSalary, maxSalary, ok := ParseSalary(salaryText)
	if !ok {
		return result(0.5, "salary needs confirmation", map[string]any{
			"salary_text": salaryText,
			"suggestion":  "salary could not be parsed, confirm before applying",
		})
	}

	if maxSalary < f.spec.HardMin {
		return result(0.0, fmt.Sprintf("salary too low (%.0fk < %.0fk)", maxSalary, f.spec.HardMin), map[string]any{
			"salary_range":  []float64{minSalary, maxSalary},
			"reject_reason": "below_minimum",
		})
	}
	if minSalary > f.spec.HardMax {
		return result(0.0, fmt.Sprintf("salary too high (%.0fk > %.0fk)", minSalary, f.spec.HardMax), map[string]any{
			"salary_range":  []float64{minSalary, maxSalary},
			"reject_reason": "above_maximum",
		})
	}

	mid := (minSalary + maxSalary) / 2
	score := salaryScore(mid, f.spec.Target)

	return result(score, fmt.Sprintf("salary in range (%.0f-%.0fk)", minSalary, maxSalary), map[string]any{
		"salary_range":  []float64{minSalary, maxSalary},
		"mid_salary":    mid,
		"target_salary": f.spec.Target,
		"suggestion":    salarySuggestion(mid, f.spec.Target),
	})
}

var (
	salaryRangeKRegex  = regexp.MustCompile(`(\d+)[-~到](\d+)[kK](?:·\d+薪)?`)
	salaryRangeWRegex  = regexp.MustCompile(`(\d+)[-~到](\d+)万(?:·\d+薪)?`)
	salaryKToKRegex    = regexp.MustCompile(`(\d+)[kK][-~到](\d+)[kK]`)
	salaryPlusKRegex   = regexp.MustCompile(`(\d+)\+[kK]`)
	salaryPlusWRegex   = regexp.MustCompile(`(\d+)万\+`)
	salarySingleKRegex = regexp.MustCompile(`(\d+)[kK](?:·\d+薪)?$`)

	descSalaryRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\d+[-~到]\d+[kK万]`),
		regexp.MustCompile(`薪资[:：]\s*\d+`),
	}
)

// ParseSalary turns salary text into a (min, max) monthly range in k.
// The "·N薪" multiplier suffix is ignored for range purposes; negotiable
// salaries ("面议") and anything else unrecognized return ok=false.
func ParseSalary(text string) (minSalary, maxSalary float64, ok bool) {
	if m := salaryRangeKRegex.FindStringSubmatch(text); m != nil {
		return atofPair(m[1], m[2], 1)
	}
	if m := salaryRangeWRegex.FindStringSubmatch(text); m != nil {
		return atofPair(m[1], m[2], 10)
	}
	if m := salaryKToKRegex.FindStringSubmatch(text); m != nil {
		return atofPair(m[1], m[2], 1)
	}
	if m := salaryPlusKRegex.FindStringSubmatch(text); m != nil {
		v := atof(m[1])
		return v, v * 1.3, true
	}
	if m := salaryPlusWRegex.FindStringSubmatch(text); m != nil {
		v := atof(m[1])
		return v * 10, v * 13, true
	}
	if m := salarySingleKRegex.FindStringSubmatch(text); m != nil {
		v := atof(m[1])
		return v * 0.9, v * 1.1, true
	}
	return 0, 0, false
}

// graded by percentage deviation from the target
func salaryScore(mid, target float64) float64 {
	if target <= 0 {
		return 0.5
	}
	deviation := math.Abs(mid/target - 1)
	switch {
	case deviation <= 0.1:
		return 1.0
	case deviation <= 0.3:
		return 0.8
	case deviation <= 0.5:
		return 0.6
	default:
		return 0.3
	}
}

func salarySuggestion(mid, target float64) string {
	if target <= 0 {
		return "no target salary configured"
	}
	ratio := mid / target
	switch {
	case ratio >= 1.2:
		return fmt.Sprintf("salary %.0f%% above target, excellent opportunity", (ratio-1)*100)
	case ratio >= 1.0:
		return "salary meets target, apply"
	case ratio >= 0.8:
		return "salary slightly under target, weigh other upsides"
	default:
		return fmt.Sprintf("salary %.0f%% under target, think twice", (1-ratio)*100)
	}
}

func extractSalaryFromDescription(description string) string {
	for _, re := range descSalaryRegexes {
		if m := re.FindString(description); m != "" {
			return m
		}
	}
	return ""
}

func atofPair(a, b string, multiplier float64) (float64, float64, bool) {
	return atof(a) * multiplier, atof(b) * multiplier, true
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
