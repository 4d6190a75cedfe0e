package dedup

import (
	"log"

	mapset "github.com/deckarep/golang-set/v2"

	"go-jobagent/internal/canonical"
	"go-jobagent/internal/models"
)

// LocalResult is the outcome of the in-batch syntactic dedup pass. The
// seen sets are exposed so later stages can reuse them without
// recomputing fingerprints.
type LocalResult struct {
	Unique           []models.Posting
	SeenJobIDs       mapset.Set[string]
	SeenFingerprints mapset.Set[string]
}

// Local removes syntactic duplicates (URL id match, content-fingerprint
// match) in a single left-to-right pass; the first occurrence of each
// cluster survives. Postings with no URL and no normalizable text fields
// pass through untouched so emptiness never silently drops input.
func Local(postings []models.Posting, stats *models.DedupStats) LocalResult {
	result := LocalResult{
		SeenJobIDs:       mapset.NewSet[string](),
		SeenFingerprints: mapset.NewSet[string](),
	}

	stats.TotalProcessed += len(postings)

	for _, p := range postings {
		jobID := canonical.JobID(p.URL)
		company := canonical.Company(p.Company)
		title := canonical.Title(p.Title)
		location := canonical.Location(p.Location)

		if jobID == "" && company == "" && title == "" && location == "" {
			// nothing to key on, keep it
			result.Unique = append(result.Unique, p)
			continue
		}

		if jobID != "" && result.SeenJobIDs.Contains(jobID) {
			stats.URLDuplicates++
			continue
		}

		fingerprint := canonical.ContentFingerprint(p.Company, p.Title, p.Location)
		if result.SeenFingerprints.Contains(fingerprint) {
			stats.ContentDuplicates++
			continue
		}

		if jobID != "" {
			result.SeenJobIDs.Add(jobID)
		}
		result.SeenFingerprints.Add(fingerprint)

		p.Derived.JobID = jobID
		p.Derived.ContentFingerprint = fingerprint
		result.Unique = append(result.Unique, p)
	}

	log.Printf("📋 Local dedup: %d in, %d unique (%d url dupes, %d content dupes)",
		len(postings), len(result.Unique), stats.URLDuplicates, stats.ContentDuplicates)

	return result
}
