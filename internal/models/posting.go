package models

import (
	"time"
)

// Posting is one extracted job record as delivered by the upstream
// extractor. The core never rewrites the extracted fields; derived values
// (fingerprints, scores) live in Derived and are attached exactly once.
type Posting struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	URL            string    `json:"url"`
	Experience     string    `json:"experience"`
	Graduation     string    `json:"graduation"`
	Deadline       string    `json:"deadline"`
	Direction      string    `json:"direction"`
	SourcePlatform string    `json:"source_platform"`
	CrawledAt      time.Time `json:"crawled_at"`

	Derived Derived `json:"derived,omitempty"`
}

// Derived holds values the pipeline attaches to a posting as it flows
// through the stages.
type Derived struct {
	JobID              string                  `json:"job_id,omitempty"`
	ContentFingerprint string                  `json:"content_fingerprint,omitempty"`
	Keywords           []string                `json:"keywords,omitempty"`
	BasicScore         float64                 `json:"basic_score,omitempty"`
	BasicDetails       map[string]FilterResult `json:"basic_details,omitempty"`
}

// FilterResult is the outcome of one filter applied to one posting.
// A score of exactly 0 is the hard-reject sentinel; graded scores are in
// (0,1].
type FilterResult struct {
	Score   float64        `json:"score"`
	Reason  string         `json:"reason"`
	Details map[string]any `json:"details,omitempty"`
}

// HardReject reports whether the result carries the hard-reject sentinel.
func (r FilterResult) HardReject() bool {
	return r.Score == 0.0
}

// Suggestion returns the human-readable suggestion fragment, if the filter
// produced one.
func (r FilterResult) Suggestion() string {
	if s, ok := r.Details["suggestion"].(string); ok {
		return s
	}
	return ""
}

// ScoredPosting is a posting that passed both filter stages, carrying the
// composite score and recommendation.
type ScoredPosting struct {
	Posting Posting `json:"posting"`

	Score           int                     `json:"score"` // 0-100
	FinalScore      float64                 `json:"final_score"`
	Tier            string                  `json:"tier"`
	Suggestion      string                  `json:"suggestion"`
	AdvancedDetails map[string]FilterResult `json:"advanced_details,omitempty"`
}

// DedupStats counts what each dedup layer removed during one run.
type DedupStats struct {
	TotalProcessed     int `json:"total_processed"`
	URLDuplicates      int `json:"url_duplicates"`
	ContentDuplicates  int `json:"content_duplicates"`
	SemanticDuplicates int `json:"semantic_duplicates"`
	CrossSessionDupes  int `json:"cross_session_duplicates"`
	UniqueJobs         int `json:"unique_jobs"`
	LLMCalls           int `json:"llm_calls"`
}

// FilterStats counts filter-stage outcomes during one run.
type FilterStats struct {
	Input        int `json:"input"`
	HardRejected int `json:"hard_rejected"`
	SoftDropped  int `json:"soft_dropped"`
	Passed       int `json:"passed"`
}
