package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.InDelta(t, 0.5, cfg.Dedup.SimilarityThreshold, 1e-9)
	assert.Equal(t, 24, cfg.Store.SnapshotMaxAgeHours)
	assert.Equal(t, 100, cfg.Store.PageSize)
	assert.InDelta(t, 0.3, cfg.Filters.GlobalThreshold, 1e-9)
	assert.True(t, cfg.Filters.Salary.Enabled)
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
dedup:
  semantic_enabled: true
  similarity_threshold: 0.7
store:
  page_size: 25
filters:
  global_threshold: 0.4
  salary:
    enabled: true
    weight: 0.3
    is_hard_filter: true
    hard_min_salary: 20
    hard_max_salary: 60
    target_salary: 35
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := Load(path)

	assert.True(t, cfg.Dedup.SemanticEnabled)
	assert.InDelta(t, 0.7, cfg.Dedup.SimilarityThreshold, 1e-9)
	assert.Equal(t, 25, cfg.Store.PageSize)
	assert.InDelta(t, 0.4, cfg.Filters.GlobalThreshold, 1e-9)
	assert.InDelta(t, 20, cfg.Filters.Salary.HardMin, 1e-9)
	assert.InDelta(t, 35, cfg.Filters.Salary.Target, 1e-9)

	// untouched sections keep their defaults
	assert.Equal(t, 24, cfg.Store.SnapshotMaxAgeHours)
	assert.NotEmpty(t, cfg.Filters.Location.Preferred)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "postgres://test")

	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://test", cfg.Store.DatabaseURL)
}
