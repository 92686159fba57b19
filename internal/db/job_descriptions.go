package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetJobDescription returns the cached description for url if it was fetched within maxAge.
func (db *DB) GetJobDescription(ctx context.Context, url string, maxAge time.Duration) (string, bool, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT text FROM job_description_cache
		 WHERE url = $1 AND fetched_at > $2`,
		url, time.Now().Add(-maxAge),
	).Scan(&text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached job description: %w", err)
	}
	return text, true, nil
}

// PutJobDescription stores or refreshes the cached description for url.
func (db *DB) PutJobDescription(ctx context.Context, url, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_description_cache (url, text, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (url) DO UPDATE SET text = $2, fetched_at = NOW()`,
		url, text,
	)
	if err != nil {
		return fmt.Errorf("failed to cache job description: %w", err)
	}
	return nil
}
