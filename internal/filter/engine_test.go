package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobagent/internal/models"
)

func testEngine() *Engine {
	e := NewEngine(DefaultConfig())
	// pin the clock so deadline grading is reproducible
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	e.ReplaceBasic(NewDeadlineFilterAt(DeadlineSpec{
		Spec: Spec{Enabled: true, Weight: 0.1, IsHardFilter: true},
	}, func() time.Time { return now }))
	return e
}

func goodPosting() models.Posting {
	return models.Posting{
		Title:       "大模型算法工程师",
		Company:     "腾讯科技有限公司",
		Location:    "北京·海淀区",
		Salary:      "28-32k",
		Experience:  "1-3年",
		Graduation:  "2024届",
		Deadline:    "2024-05-01",
		Description: "负责大模型训练与推理优化",
	}
}

func TestApplyBasicHardRejectShortCircuits(t *testing.T) {
	e := testEngine()

	p := goodPosting()
	p.Salary = "10-12k" // below the hard floor

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{p}, &stats)

	assert.Empty(t, passed)
	assert.Equal(t, 1, stats.HardRejected)
	assert.Equal(t, 0, stats.Passed)
}

func TestApplyBasicExpiredDeadlineRejects(t *testing.T) {
	e := testEngine()

	p := goodPosting()
	p.Deadline = "2024-01-01"

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{p}, &stats)

	assert.Empty(t, passed)
	assert.Equal(t, 1, stats.HardRejected)
}

func TestApplyBasicAttachesScoreAndDetails(t *testing.T) {
	e := testEngine()

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{goodPosting()}, &stats)

	require.Len(t, passed, 1)
	assert.Equal(t, 1, stats.Passed)

	p := passed[0]
	assert.Greater(t, p.Derived.BasicScore, 0.9, "every basic filter scores this posting at or near the top")
	assert.LessOrEqual(t, p.Derived.BasicScore, 1.0)
	assert.Len(t, p.Derived.BasicDetails, 5)
}

func TestApplyAdvancedComposite(t *testing.T) {
	e := testEngine()

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{goodPosting()}, &stats)
	require.Len(t, passed, 1)

	ranked := e.ApplyAdvanced(passed)
	require.Len(t, ranked, 1)

	top := ranked[0]
	// tier1 company (1.0) and core domain (1.0) put the advanced score at
	// 1.0; the composite is dominated by the basic score
	expected := passed[0].Derived.BasicScore*0.6 + 1.0*0.4
	assert.InDelta(t, expected, top.FinalScore, 1e-9)
	assert.Equal(t, int(expected*100+0.5), top.Score)
	assert.Equal(t, TierStrong, top.Tier)
	assert.NotEmpty(t, top.Suggestion)
}

type fixedFilter struct {
	kind   Kind
	weight float64
	score  float64
}

func (f fixedFilter) Kind() Kind      { return f.kind }
func (f fixedFilter) Weight() float64 { return f.weight }
func (f fixedFilter) Apply(models.Posting) models.FilterResult {
	return result(f.score, "fixed", nil)
}

// pins the composite formula to known inputs, independent of the
// individual filters
func TestCompositeFormula(t *testing.T) {
	e := &Engine{
		advanced:       []Filter{fixedFilter{kind: KindCompany, weight: 1, score: 0.7}},
		basicWeight:    0.6,
		advancedWeight: 0.4,
		tiers:          DefaultConfig().Tiers,
	}

	p := models.Posting{Title: "算法工程师"}
	p.Derived.BasicScore = 0.9

	ranked := e.ApplyAdvanced([]models.Posting{p})
	require.Len(t, ranked, 1)

	assert.InDelta(t, 0.82, ranked[0].FinalScore, 1e-9) // 0.9*0.6 + 0.7*0.4
	assert.Equal(t, 82, ranked[0].Score)
	assert.Equal(t, TierStrong, ranked[0].Tier)
}

func TestApplyAdvancedStableRanking(t *testing.T) {
	e := testEngine()

	first := goodPosting()
	first.Title = "大模型算法工程师A"
	second := goodPosting()
	second.Title = "大模型算法工程师B"
	weaker := goodPosting()
	weaker.Company = "某某工作室" // small company, lower advanced score

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{weaker, first, second}, &stats)
	require.Len(t, passed, 3)

	ranked := e.ApplyAdvanced(passed)
	require.Len(t, ranked, 3)

	assert.Equal(t, "大模型算法工程师A", ranked[0].Posting.Title, "equal scores keep input order")
	assert.Equal(t, "大模型算法工程师B", ranked[1].Posting.Title)
	assert.Equal(t, "某某工作室", ranked[2].Posting.Company)
}

func TestScoreBounds(t *testing.T) {
	e := testEngine()

	postings := []models.Posting{
		goodPosting(),
		{Title: "行政专员", Company: "某某工作室", Location: "长沙", Salary: "16-18k", Experience: "5年以上"},
	}

	var stats models.FilterStats
	passed := e.ApplyBasic(postings, &stats)
	ranked := e.ApplyAdvanced(passed)

	for _, r := range ranked {
		assert.GreaterOrEqual(t, r.Score, 0)
		assert.LessOrEqual(t, r.Score, 100)
		assert.GreaterOrEqual(t, r.FinalScore, 0.0)
		assert.LessOrEqual(t, r.FinalScore, 1.0)
	}
}

func TestTierBoundaries(t *testing.T) {
	e := testEngine()

	tests := []struct {
		score    float64
		expected string
	}{
		{0.85, TierStrong},
		{0.80, TierStrong},
		{0.79, TierRecommended},
		{0.65, TierRecommended},
		{0.64, TierConsiderable},
		{0.50, TierConsiderable},
		{0.49, TierNotNow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.tierFor(tt.score), "score %.2f", tt.score)
	}
}

func TestMergeSuggestionsCapped(t *testing.T) {
	e := testEngine()

	var stats models.FilterStats
	passed := e.ApplyBasic([]models.Posting{goodPosting()}, &stats)
	require.Len(t, passed, 1)

	ranked := e.ApplyAdvanced(passed)
	require.Len(t, ranked, 1)

	parts := len(splitSuggestion(ranked[0].Suggestion))
	assert.LessOrEqual(t, parts, 3)
	assert.GreaterOrEqual(t, parts, 1)
}

func splitSuggestion(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, " | ") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
