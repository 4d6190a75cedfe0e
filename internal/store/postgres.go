package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres reads persisted postings from the jobs table via keyset
// pagination on the primary key.
type Postgres struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Supabase-style transaction poolers choke on prepared statements,
	// so the statement cache stays off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Postgres{db: pool}, nil
}

func (s *Postgres) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// LoadPage fetches the next pageSize jobs after the cursor id.
func (s *Postgres) LoadPage(ctx context.Context, cursor string, pageSize int) ([]Record, string, bool, error) {
	afterID := int64(0)
	if cursor != "" {
		parsed, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return nil, "", false, fmt.Errorf("invalid page cursor %q: %w", cursor, err)
		}
		afterID = parsed
	}

	query := `
		SELECT id, title, company, location, url
		FROM jobs
		WHERE id > $1
		ORDER BY id
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, afterID, pageSize)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to query jobs page: %w", err)
	}
	defer rows.Close()

	var records []Record
	lastID := afterID
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&lastID, &rec.Title, &rec.Company, &rec.Location, &rec.URL); err != nil {
			return nil, "", false, fmt.Errorf("failed to scan job row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", false, fmt.Errorf("failed to read jobs page: %w", err)
	}

	more := len(records) == pageSize
	return records, strconv.FormatInt(lastID, 10), more, nil
}
