// Command migrate creates or updates the jobscout database schema.
//
// Usage:
//
//	go run cmd/tools/migrate/main.go
//
// Requires DATABASE_URL environment variable to be set.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id          TEXT PRIMARY KEY,
		skills           JSONB,
		keywords         JSONB,
		roles            JSONB,
		experience_years INTEGER NOT NULL DEFAULT 0,
		location         TEXT,
		remote_only      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id      TEXT NOT NULL,
		status       TEXT NOT NULL,
		sources      JSONB,
		jobs_found   INTEGER NOT NULL DEFAULT 0,
		jobs_matched INTEGER NOT NULL DEFAULT 0,
		avg_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
		started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ,
		errors       JSONB
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_user_started ON runs (user_id, started_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_user_status ON runs (user_id, status)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id          TEXT NOT NULL,
		source           TEXT NOT NULL,
		source_id        TEXT,
		title            TEXT NOT NULL,
		company          TEXT,
		company_logo     TEXT,
		location         TEXT,
		remote           BOOLEAN NOT NULL DEFAULT FALSE,
		employment_type  TEXT,
		salary           JSONB,
		posted_at        TIMESTAMPTZ,
		description      TEXT,
		listing_url      TEXT,
		apply_url        TEXT,
		tags             JSONB,
		skills_extracted JSONB,
		match_score      DOUBLE PRECISION,
		match_reasoning  TEXT,
		missing_skills   JSONB,
		status           TEXT NOT NULL DEFAULT 'new',
		outreach         JSONB,
		metadata         JSONB,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_user_fingerprint
		ON jobs (user_id, (metadata->>'fingerprint'))`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_status ON jobs (user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_source ON jobs (user_id, source)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_user_created ON jobs (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS timeline (
		id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id   TEXT NOT NULL,
		run_id    UUID REFERENCES runs (id) ON DELETE SET NULL,
		step      TEXT NOT NULL,
		metadata  JSONB,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_user_time ON timeline (user_id, timestamp DESC)`,
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("=== jobscout Schema Migration ===")
	for i, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Statement %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Applied %d statements. Schema is up to date.\n", len(statements))
}
