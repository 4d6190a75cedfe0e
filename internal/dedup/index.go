package dedup

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/time/rate"

	"go-jobagent/internal/canonical"
	"go-jobagent/internal/models"
	"go-jobagent/internal/store"
)

const (
	storeLoadAttempts = 3
	// the persisted store is rate limited; pause between page loads
	pageInterval = 500 * time.Millisecond
)

// Index is the cross-session DeduplicationIndex: fingerprints already
// persisted by earlier runs plus fingerprints accepted during this run.
// Both halves only ever grow.
type Index struct {
	persisted mapset.Set[string]
	run       mapset.Set[string]
	loaded    bool
}

func NewIndex() *Index {
	return &Index{
		persisted: mapset.NewSet[string](),
		run:       mapset.NewSet[string](),
	}
}

type snapshotFile struct {
	Timestamp time.Time      `json:"timestamp"`
	Records   []store.Record `json:"records"`
}

// Load populates the persisted half of the index, preferring a fresh
// snapshot file over a full paginated store load. When the store query
// fails, a stale snapshot is accepted as a degraded fallback; with
// neither available the load fails closed so known duplicates can never
// be re-admitted behind an empty index.
func (ix *Index) Load(ctx context.Context, client store.Client, snapshotPath string, maxAge time.Duration, pageSize int) error {
	if snapshotPath != "" {
		if records, ok := ix.loadSnapshot(snapshotPath, maxAge); ok {
			ix.indexRecords(records)
			ix.loaded = true
			return nil
		}
	}

	records, err := ix.loadFromStore(ctx, client, pageSize)
	if err != nil {
		if snapshotPath != "" {
			if stale, ok := ix.loadSnapshot(snapshotPath, 0); ok {
				log.Printf("⚠️ Store load failed, falling back to stale snapshot: %v", err)
				ix.indexRecords(stale)
				ix.loaded = true
				return nil
			}
		}
		return fmt.Errorf("failed to load persisted fingerprint index: %w", err)
	}

	ix.indexRecords(records)
	ix.loaded = true

	if snapshotPath != "" {
		ix.saveSnapshot(snapshotPath, records)
	}
	return nil
}

// Loaded reports whether the persisted half has been populated.
func (ix *Index) Loaded() bool {
	return ix.loaded
}

// Partition splits postings into new and cross-session duplicates. Each
// accepted posting's fingerprint is added to the run half immediately, so
// two same-batch postings resolving to one not-yet-persisted identity
// cannot both come out as new.
func (ix *Index) Partition(postings []models.Posting, stats *models.DedupStats) (newJobs, duplicates []models.Posting) {
	for _, p := range postings {
		fp := canonical.Fingerprint(p.URL, p.Company, p.Title, p.Location)
		if ix.persisted.Contains(fp) || ix.run.Contains(fp) {
			stats.CrossSessionDupes++
			duplicates = append(duplicates, p)
			continue
		}
		ix.run.Add(fp)
		newJobs = append(newJobs, p)
	}

	log.Printf("🗂️ Cross-session dedup: %d in, %d new, %d already persisted",
		len(postings), len(newJobs), len(duplicates))

	return newJobs, duplicates
}

// Contains reports whether a fingerprint is known to either half.
func (ix *Index) Contains(fingerprint string) bool {
	return ix.persisted.Contains(fingerprint) || ix.run.Contains(fingerprint)
}

func (ix *Index) indexRecords(records []store.Record) {
	for _, rec := range records {
		ix.persisted.Add(canonical.Fingerprint(rec.URL, rec.Company, rec.Title, rec.Location))
	}
	log.Printf("📋 Indexed %d persisted postings (%d distinct fingerprints)",
		len(records), ix.persisted.Cardinality())
}

// loadSnapshot reads a snapshot file; maxAge 0 accepts any age.
func (ix *Index) loadSnapshot(path string, maxAge time.Duration) ([]store.Record, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read index snapshot: %v", err)
		}
		return nil, false
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("⚠️ Failed to parse index snapshot: %v", err)
		return nil, false
	}

	age := time.Since(snap.Timestamp)
	if maxAge > 0 && age > maxAge {
		log.Printf("⚠️ Index snapshot is %.1fh old, reloading from store", age.Hours())
		return nil, false
	}

	log.Printf("📋 Loaded %d persisted postings from snapshot (%.1fh old)", len(snap.Records), age.Hours())
	return snap.Records, true
}

func (ix *Index) saveSnapshot(path string, records []store.Record) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("⚠️ Failed to create snapshot directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(snapshotFile{
		Timestamp: time.Now(),
		Records:   records,
	}, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal index snapshot: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write index snapshot: %v", err)
		return
	}
	log.Printf("💾 Saved %d persisted postings to snapshot", len(records))
}

// loadFromStore pages through the persisted store, pausing between pages
// to stay inside the remote quota and retrying each page a few times.
func (ix *Index) loadFromStore(ctx context.Context, client store.Client, pageSize int) ([]store.Record, error) {
	if client == nil {
		return nil, fmt.Errorf("no store client configured")
	}

	limiter := rate.NewLimiter(rate.Every(pageInterval), 1)

	var all []store.Record
	cursor := ""
	page := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		records, next, more, err := loadPageWithRetry(ctx, client, cursor, pageSize)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page+1, err)
		}

		all = append(all, records...)
		page++
		log.Printf("   📄 Loaded store page %d (%d records, total %d)", page, len(records), len(all))

		if !more {
			break
		}
		cursor = next
	}
	return all, nil
}

func loadPageWithRetry(ctx context.Context, client store.Client, cursor string, pageSize int) ([]store.Record, string, bool, error) {
	var lastErr error
	for attempt := 0; attempt < storeLoadAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, "", false, ctx.Err()
			case <-time.After(backoff):
			}
		}

		records, next, more, err := client.LoadPage(ctx, cursor, pageSize)
		if err == nil {
			return records, next, more, nil
		}
		lastErr = err
		log.Printf("⚠️ Store page load attempt %d/%d failed: %v", attempt+1, storeLoadAttempts, err)
	}
	return nil, "", false, lastErr
}
