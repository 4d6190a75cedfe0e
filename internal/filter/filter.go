// Two-stage posting filters: basic filters enforce hard eligibility rules
// and produce the basic score, advanced filters only grade. A score of
// exactly 0 from any filter is a hard reject.

package filter

import (
	"go-jobagent/internal/models"
)

type Kind string

const (
	KindSalary     Kind = "salary"
	KindLocation   Kind = "location"
	KindExperience Kind = "experience"
	KindGraduation Kind = "graduation"
	KindDeadline   Kind = "deadline"
	KindCompany    Kind = "company_fame"
	KindDomain     Kind = "business_domain"
)

// Filter grades one posting against one configured rule. Apply must be
// pure: same posting, same result.
type Filter interface {
	Kind() Kind
	Weight() float64
	Apply(p models.Posting) models.FilterResult
}

// Spec is the configuration every filter shares.
type Spec struct {
	Enabled      bool    `yaml:"enabled"`
	Weight       float64 `yaml:"weight"`
	IsHardFilter bool    `yaml:"is_hard_filter"`
}

func result(score float64, reason string, details map[string]any) models.FilterResult {
	return models.FilterResult{Score: score, Reason: reason, Details: details}
}
