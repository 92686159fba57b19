// Package db provides PostgreSQL access for the skill ontology, the job
// description cache and stored analysis results.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// schemaStatements create every table the service uses. They are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ontology_skills (
		bucket   TEXT NOT NULL,
		position INT  NOT NULL,
		synonym  TEXT NOT NULL CHECK (synonym <> ''),
		PRIMARY KEY (bucket, position)
	)`,
	`CREATE TABLE IF NOT EXISTS ontology_action_verbs (
		verb TEXT PRIMARY KEY CHECK (verb <> '')
	)`,
	`CREATE TABLE IF NOT EXISTS job_description_cache (
		url        TEXT PRIMARY KEY,
		text       TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates missing tables.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
