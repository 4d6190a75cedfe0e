package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go-jobagent/internal/models"
)

type DeadlineSpec struct {
	Spec `yaml:",inline"`
}

// DeadlineFilter hard-rejects postings whose application deadline is
// already in the past and grades the rest by urgency.
type DeadlineFilter struct {
	spec DeadlineSpec
	now  func() time.Time
}

func NewDeadlineFilter(spec DeadlineSpec) *DeadlineFilter {
	return &DeadlineFilter{spec: spec, now: time.Now}
}

// NewDeadlineFilterAt pins the clock, for evaluating historical batches.
func NewDeadlineFilterAt(spec DeadlineSpec, now func() time.Time) *DeadlineFilter {
	return &DeadlineFilter{spec: spec, now: now}
}

func (f *DeadlineFilter) Kind() Kind      { return KindDeadline }
func (f *DeadlineFilter) Weight() float64 { return f.spec.Weight }

func (f *DeadlineFilter) Apply(p models.Posting) models.FilterResult {
	if p.Deadline == "" {
		return result(0.8, "no deadline", map[string]any{
			"suggestion": "no stated deadline, apply soon anyway",
		})
	}

	deadline, ok := ParseDate(p.Deadline)
	if !ok {
		return result(0.5, "deadline needs confirmation", map[string]any{
			"deadline_text": p.Deadline,
			"suggestion":    "deadline could not be parsed, confirm before applying",
		})
	}

	standardized := deadline.Format("2006-01-02")
	daysLeft := int(deadline.Sub(f.now()).Hours() / 24)

	if deadline.Before(f.now()) {
		return result(0.0, "recruitment closed", map[string]any{
			"deadline":      standardized,
			"days_left":     daysLeft,
			"reject_reason": "expired_deadline",
		})
	}

	switch {
	case daysLeft <= 3:
		return result(0.7, fmt.Sprintf("closing soon (%d days)", daysLeft), map[string]any{
			"deadline":   standardized,
			"days_left":  daysLeft,
			"suggestion": fmt.Sprintf("%d days left, apply immediately", daysLeft),
		})
	case daysLeft <= 7:
		return result(0.9, fmt.Sprintf("closing this week (%d days)", daysLeft), map[string]any{
			"deadline":   standardized,
			"days_left":  daysLeft,
			"suggestion": fmt.Sprintf("%d days left, prioritize this one", daysLeft),
		})
	default:
		return result(1.0, fmt.Sprintf("ample time (%d days)", daysLeft), map[string]any{
			"deadline":   standardized,
			"days_left":  daysLeft,
			"suggestion": fmt.Sprintf("%d days to prepare the application", daysLeft),
		})
	}
}

var (
	datePrefixRegex = regexp.MustCompile(`^(截止日期|报名截止|申请截止|招聘截止)[：:]\s*`)

	fullDateRegex  = regexp.MustCompile(`(\d{4})[./年-](\d{1,2})[./月-](\d{1,2})日?`)
	yearMonthRegex = regexp.MustCompile(`(\d{4})[./年-](\d{1,2})月?`)
	yearOnlyRegex  = regexp.MustCompile(`(\d{4})年?`)
	shortDateRegex = regexp.MustCompile(`(\d{2})[./年-](\d{1,2})[./月-](\d{1,2})日?`)
)

// ParseDate standardizes the date formats recruitment texts use:
// "YYYY-MM-DD", "YYYY.M.D", "YYYY年M月", year-only, and a 2-digit-year
// shorthand. Missing components default to the first day/month.
func ParseDate(text string) (time.Time, bool) {
	text = datePrefixRegex.ReplaceAllString(text, "")

	if m := fullDateRegex.FindStringSubmatch(text); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := yearMonthRegex.FindStringSubmatch(text); m != nil {
		return makeDate(m[1], m[2], "1")
	}
	if m := yearOnlyRegex.FindStringSubmatch(text); m != nil {
		return makeDate(m[1], "1", "1")
	}
	if m := shortDateRegex.FindStringSubmatch(text); m != nil {
		return makeDate("20"+m[1], m[2], m[3])
	}
	return time.Time{}, false
}

func makeDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}
