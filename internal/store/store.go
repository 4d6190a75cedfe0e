package store

import (
	"context"
)

// Record is the minimal slice of a persisted posting the dedup index needs
// to rebuild fingerprints with the live canonicalization rules.
type Record struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// Client is the persistent-store collaborator. The core only reads
// previously persisted postings; writing is someone else's job.
type Client interface {
	// LoadPage returns one page of persisted records. cursor is opaque:
	// pass "" for the first page and the returned next cursor afterwards.
	// more is false once the store is exhausted.
	LoadPage(ctx context.Context, cursor string, pageSize int) (records []Record, next string, more bool, err error)
}
