// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-jobagent/internal/filter"
)

type LLMConfig struct {
	APIKey  string `yaml:"api_key" env:"LLM_API_KEY"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type DedupConfig struct {
	SemanticEnabled     bool    `yaml:"semantic_enabled"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

type StoreConfig struct {
	DatabaseURL         string `yaml:"database_url" env:"DATABASE_URL"`
	SnapshotPath        string `yaml:"snapshot_path"`
	SnapshotMaxAgeHours int    `yaml:"snapshot_max_age_hours"`
	PageSize            int    `yaml:"page_size"`
}

type Config struct {
	LLM   LLMConfig   `yaml:"llm"`
	Dedup DedupConfig `yaml:"dedup"`
	Store StoreConfig `yaml:"store"`

	Filters filter.Config `yaml:"filters"`

	//Paths
	DataFile   string `yaml:"data_file"`
	OutputFile string `yaml:"output_file"`
}

func Load(path string) *Config {
	_ = godotenv.Load()

	//Load yaml config on top of the defaults
	cfg := &Config{Filters: filter.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Store.DatabaseURL = url
	}

	//Set default values if not set
	if cfg.Dedup.SimilarityThreshold == 0 {
		cfg.Dedup.SimilarityThreshold = 0.5
	}

	if cfg.Store.SnapshotPath == "" {
		cfg.Store.SnapshotPath = ".cache/seen_jobs.json"
	}

	if cfg.Store.SnapshotMaxAgeHours == 0 {
		cfg.Store.SnapshotMaxAgeHours = 24
	}

	if cfg.Store.PageSize == 0 {
		cfg.Store.PageSize = 100
	}

	if cfg.DataFile == "" {
		cfg.DataFile = "data/postings.json"
	}

	if cfg.OutputFile == "" {
		cfg.OutputFile = "data/ranked.json"
	}

	//Validate soft requirements
	if cfg.Dedup.SemanticEnabled && cfg.LLM.APIKey == "" {
		log.Printf("Warning: semantic dedup enabled without LLM_API_KEY, keyword extraction will use the regex fallback")
	}

	if cfg.Store.DatabaseURL == "" {
		log.Printf("Warning: DATABASE_URL not set, cross-session dedup will be skipped")
	}

	return cfg
}
