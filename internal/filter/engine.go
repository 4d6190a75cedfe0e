package filter

import (
	"log"
	"sort"
	"strings"

	"go-jobagent/internal/models"
)

// recommendation tier labels
const (
	TierStrong       = "strongly recommended"
	TierRecommended  = "recommended"
	TierConsiderable = "worth considering"
	TierNotNow       = "not recommended"
)

type TierSpec struct {
	Strong       float64 `yaml:"strong"`
	Recommended  float64 `yaml:"recommended"`
	Considerable float64 `yaml:"considerable"`
}

// Config is the full filter configuration surface.
type Config struct {
	GlobalThreshold float64  `yaml:"global_threshold"`
	BasicWeight     float64  `yaml:"basic_weight"`
	AdvancedWeight  float64  `yaml:"advanced_weight"`
	Tiers           TierSpec `yaml:"tiers"`

	Salary     SalarySpec     `yaml:"salary"`
	Location   LocationSpec   `yaml:"location"`
	Experience ExperienceSpec `yaml:"experience"`
	Graduation GraduationSpec `yaml:"graduation"`
	Deadline   DeadlineSpec   `yaml:"deadline"`
	Company    CompanySpec    `yaml:"company_fame"`
	Domain     DomainSpec     `yaml:"business_domain"`
}

// Engine runs the two filter stages: basic (hard eligibility + basic
// score) and advanced (reputation/domain scoring + composite ranking).
type Engine struct {
	basic    []Filter // declared order: salary, location, experience, graduation, deadline
	advanced []Filter // company fame, business domain

	globalThreshold float64
	basicWeight     float64
	advancedWeight  float64
	tiers           TierSpec
}

// NewEngine assembles the enabled filters from config in their declared
// evaluation order.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		globalThreshold: cfg.GlobalThreshold,
		basicWeight:     cfg.BasicWeight,
		advancedWeight:  cfg.AdvancedWeight,
		tiers:           cfg.Tiers,
	}

	if cfg.Salary.Enabled {
		e.basic = append(e.basic, NewSalaryFilter(cfg.Salary))
	}
	if cfg.Location.Enabled {
		e.basic = append(e.basic, NewLocationFilter(cfg.Location))
	}
	if cfg.Experience.Enabled {
		e.basic = append(e.basic, NewExperienceFilter(cfg.Experience))
	}
	if cfg.Graduation.Enabled {
		e.basic = append(e.basic, NewGraduationFilter(cfg.Graduation))
	}
	if cfg.Deadline.Enabled {
		e.basic = append(e.basic, NewDeadlineFilter(cfg.Deadline))
	}

	if cfg.Company.Enabled {
		e.advanced = append(e.advanced, NewCompanyFameFilter(cfg.Company))
	}
	if cfg.Domain.Enabled {
		e.advanced = append(e.advanced, NewBusinessDomainFilter(cfg.Domain))
	}

	log.Printf("✅ Filter engine ready: %d basic filters, %d advanced filters", len(e.basic), len(e.advanced))
	return e
}

// ReplaceBasic swaps an assembled basic filter of the same kind, used to
// pin the deadline filter's clock.
func (e *Engine) ReplaceBasic(f Filter) {
	for i, existing := range e.basic {
		if existing.Kind() == f.Kind() {
			e.basic[i] = f
			return
		}
	}
	e.basic = append(e.basic, f)
}

// ApplyBasic runs the hard-filter stage. Each posting ends in exactly one
// of three states: rejected (some filter returned the 0.0 sentinel),
// soft-dropped (weighted average under the global threshold) or passed,
// carrying its basic score and per-filter detail trail.
func (e *Engine) ApplyBasic(postings []models.Posting, stats *models.FilterStats) []models.Posting {
	stats.Input += len(postings)

	var passed []models.Posting
	for _, p := range postings {
		details := make(map[string]models.FilterResult, len(e.basic))
		totalScore := 0.0
		totalWeight := 0.0
		rejected := false

		for _, f := range e.basic {
			res := f.Apply(p)
			details[string(f.Kind())] = res

			if res.HardReject() {
				rejected = true
				stats.HardRejected++
				log.Printf("   ❌ Hard reject: %s @ %s - %s", p.Title, p.Company, res.Reason)
				break
			}

			totalScore += res.Score * f.Weight()
			totalWeight += f.Weight()
		}

		if rejected {
			continue
		}

		score := 0.0
		if totalWeight > 0 {
			score = totalScore / totalWeight
		}
		if score < e.globalThreshold {
			stats.SoftDropped++
			log.Printf("   ⚠️ Score too low: %s @ %s (%.2f < %.2f)", p.Title, p.Company, score, e.globalThreshold)
			continue
		}

		p.Derived.BasicScore = score
		p.Derived.BasicDetails = details
		passed = append(passed, p)
		stats.Passed++
	}

	log.Printf("🔍 Basic filters: %d/%d passed (%d hard rejected, %d soft dropped)",
		len(passed), len(postings), stats.HardRejected, stats.SoftDropped)

	return passed
}

// ApplyAdvanced scores the passed postings, combines basic and advanced
// scores into the 0-100 composite, and returns them ranked. The sort is
// stable: equal composites keep their post-filter relative order.
func (e *Engine) ApplyAdvanced(postings []models.Posting) []models.ScoredPosting {
	scored := make([]models.ScoredPosting, 0, len(postings))

	for _, p := range postings {
		details := make(map[string]models.FilterResult, len(e.advanced))
		totalScore := 0.0
		totalWeight := 0.0

		for _, f := range e.advanced {
			res := f.Apply(p)
			details[string(f.Kind())] = res
			totalScore += res.Score * f.Weight()
			totalWeight += f.Weight()
		}

		advancedScore := 0.5
		if totalWeight > 0 {
			advancedScore = totalScore / totalWeight
		}

		final := p.Derived.BasicScore*e.basicWeight + advancedScore*e.advancedWeight
		tier := e.tierFor(final)

		scored = append(scored, models.ScoredPosting{
			Posting:         p,
			Score:           int(final*100 + 0.5),
			FinalScore:      final,
			Tier:            tier,
			Suggestion:      e.mergeSuggestions(p, details, tier),
			AdvancedDetails: details,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	log.Printf("🏆 Scoring done: %d postings ranked", len(scored))
	return scored
}

func (e *Engine) tierFor(score float64) string {
	switch {
	case score >= e.tiers.Strong:
		return TierStrong
	case score >= e.tiers.Recommended:
		return TierRecommended
	case score >= e.tiers.Considerable:
		return TierConsiderable
	default:
		return TierNotNow
	}
}

var tierSummaries = map[string]string{
	TierStrong:       "overall match is excellent, apply without hesitation",
	TierRecommended:  "overall match is good, worth applying",
	TierConsiderable: "some aspects match, consider it",
	TierNotNow:       "overall match is weak, think twice",
}

// mergeSuggestions keeps the tier summary plus the first non-empty
// per-filter fragments, in declared filter order, capped at three lines.
func (e *Engine) mergeSuggestions(p models.Posting, advanced map[string]models.FilterResult, tier string) string {
	suggestions := []string{tierSummaries[tier]}

	for _, f := range e.basic {
		if res, ok := p.Derived.BasicDetails[string(f.Kind())]; ok {
			if s := res.Suggestion(); s != "" {
				suggestions = append(suggestions, s)
			}
		}
	}
	for _, f := range e.advanced {
		if res, ok := advanced[string(f.Kind())]; ok {
			if s := res.Suggestion(); s != "" {
				suggestions = append(suggestions, s)
			}
		}
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return strings.Join(suggestions, " | ")
}
