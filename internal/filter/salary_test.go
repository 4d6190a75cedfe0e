package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobagent/internal/models"
)

func testSalarySpec() SalarySpec {
	return SalarySpec{
		Spec:    Spec{Enabled: true, Weight: 0.3, IsHardFilter: true},
		HardMin: 15,
		HardMax: 80,
		Target:  30,
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
		ok   bool
	}{
		{"range k", "10-12k", 10, 12, true},
		{"range k with months", "25-40K·15薪", 25, 40, true},
		{"range wan", "2-3万", 20, 30, true},
		{"k to k", "20k-30k", 20, 30, true},
		{"plus k", "30+k", 30, 39, true},
		{"plus wan", "3万+", 30, 39, true},
		{"single k", "20k", 18, 22, true},
		{"negotiable", "面议", 0, 0, false},
		{"garbage", "competitive", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minSalary, maxSalary, ok := ParseSalary(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.min, minSalary, 1e-9)
				assert.InDelta(t, tt.max, maxSalary, 1e-9)
			}
		})
	}
}

func TestSalaryFilterHardReject(t *testing.T) {
	f := NewSalaryFilter(testSalarySpec())

	res := f.Apply(models.Posting{Salary: "10-12k"})
	assert.True(t, res.HardReject())
	assert.Equal(t, "below_minimum", res.Details["reject_reason"])

	res = f.Apply(models.Posting{Salary: "90-120k"})
	assert.True(t, res.HardReject())
	assert.Equal(t, "above_maximum", res.Details["reject_reason"])
}

func TestSalaryFilterGrading(t *testing.T) {
	f := NewSalaryFilter(testSalarySpec())

	tests := []struct {
		name     string
		salary   string
		expected float64
	}{
		{"on target", "28-32k", 1.0},       // mid 30, deviation 0
		{"close to target", "22-26k", 0.8}, // mid 24, deviation 20%
		{"half off target", "40-50k", 0.6}, // mid 45, deviation 50%
		{"far from target", "50-70k", 0.3}, // mid 60, deviation 100%
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.Apply(models.Posting{Salary: tt.salary})
			assert.InDelta(t, tt.expected, res.Score, 1e-9)
			assert.False(t, res.HardReject())
		})
	}
}

// negotiable and missing salaries are mid-score, never a hard drop
func TestSalaryFilterNeedsConfirmation(t *testing.T) {
	f := NewSalaryFilter(testSalarySpec())

	res := f.Apply(models.Posting{Salary: "面议"})
	assert.InDelta(t, 0.5, res.Score, 1e-9)

	res = f.Apply(models.Posting{})
	assert.InDelta(t, 0.5, res.Score, 1e-9)
}

func TestSalaryFromDescriptionFallback(t *testing.T) {
	f := NewSalaryFilter(testSalarySpec())

	res := f.Apply(models.Posting{Description: "负责推荐系统，薪资范围25-35k，弹性工作"})
	assert.InDelta(t, 1.0, res.Score, 1e-9, "mid 30 hits the target exactly")
}
