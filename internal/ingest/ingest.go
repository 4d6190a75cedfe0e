// Reads extracted job postings from the drop file the upstream extractor
// writes. The file is a JSON array of postings.

package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go-jobagent/internal/models"
)

func ReadPostings(path string) ([]models.Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading postings file: %w", err)
	}

	var postings []models.Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("parsing postings file: %w", err)
	}

	log.Printf("📋 Loaded %d postings from %s", len(postings), path)
	return postings, nil
}

// WriteRanked writes the final ranked postings as pretty-printed JSON.
func WriteRanked(path string, ranked []models.ScoredPosting) error {
	data, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ranked postings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing ranked postings: %w", err)
	}

	log.Printf("💾 Wrote %d ranked postings to %s", len(ranked), path)
	return nil
}
