// The pipeline wires the stages together in their fixed order: local
// dedup, semantic dedup, cross-session dedup, basic filters, advanced
// scoring. Each stage only ever narrows the batch.

package pipeline

import (
	"context"
	"log"
	"time"

	"go-jobagent/internal/ai"
	"go-jobagent/internal/config"
	"go-jobagent/internal/dedup"
	"go-jobagent/internal/filter"
	"go-jobagent/internal/models"
	"go-jobagent/internal/store"
)

// Summary aggregates the per-stage counters of one run.
type Summary struct {
	Dedup  models.DedupStats  `json:"dedup"`
	Filter models.FilterStats `json:"filter"`
	Ranked int                `json:"ranked"`
}

type Pipeline struct {
	cfg    *config.Config
	engine *filter.Engine
	store  store.Client
}

// New builds a pipeline from config. storeClient may be nil, in which
// case cross-session dedup is skipped with a warning.
func New(cfg *config.Config, storeClient store.Client) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		engine: filter.NewEngine(cfg.Filters),
		store:  storeClient,
	}
}

// Run pushes one batch of postings through every stage and returns the
// ranked survivors. A cross-session index load failure aborts the run:
// filtering without the persisted index would re-admit known duplicates.
func (pl *Pipeline) Run(ctx context.Context, postings []models.Posting) ([]models.ScoredPosting, Summary, error) {
	var summary Summary

	log.Printf("🚀 Pipeline start: %d postings", len(postings))

	local := dedup.Local(postings, &summary.Dedup)
	unique := local.Unique

	if pl.cfg.Dedup.SemanticEnabled {
		var llm ai.Client
		if pl.cfg.LLM.APIKey != "" {
			llm = ai.NewLLMClient(pl.cfg.LLM.APIKey, pl.cfg.LLM.BaseURL, pl.cfg.LLM.Model)
		}
		semantic := dedup.NewSemantic(ai.NewExtractor(llm), pl.cfg.Dedup.SimilarityThreshold)
		unique = semantic.Deduplicate(ctx, unique, &summary.Dedup)
	}

	if pl.store != nil {
		index := dedup.NewIndex()
		maxAge := time.Duration(pl.cfg.Store.SnapshotMaxAgeHours) * time.Hour
		if err := index.Load(ctx, pl.store, pl.cfg.Store.SnapshotPath, maxAge, pl.cfg.Store.PageSize); err != nil {
			return nil, summary, err
		}
		unique, _ = index.Partition(unique, &summary.Dedup)
	} else {
		log.Printf("⚠️ No store client, skipping cross-session dedup")
	}

	summary.Dedup.UniqueJobs = len(unique)

	passed := pl.engine.ApplyBasic(unique, &summary.Filter)
	ranked := pl.engine.ApplyAdvanced(passed)
	summary.Ranked = len(ranked)

	log.Printf("✅ Pipeline done: %d postings in, %d ranked", len(postings), len(ranked))
	return ranked, summary, nil
}
