package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Run Methods
// -----------------------------------------------------------------------------

// CreateRun records the start of a new pipeline run in status running.
func (db *DB) CreateRun(ctx context.Context, userID string, sources []string) (*Run, error) {
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sources: %w", err)
	}

	var r Run
	err = db.pool.QueryRow(ctx,
		`INSERT INTO runs (user_id, status, sources, started_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id, user_id, status, started_at`,
		userID, RunStatusRunning, sourcesJSON,
	).Scan(&r.ID, &r.UserID, &r.Status, &r.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	r.Sources = sources
	return &r, nil
}

// UpdateRun applies a partial update to a run. AppendError pushes one message
// onto the run's error list without touching earlier entries.
func (db *DB) UpdateRun(ctx context.Context, id uuid.UUID, update RunUpdate) error {
	var sets []string
	var args []interface{}
	args = append(args, id)
	argIndex := 2

	if update.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *update.Status)
		argIndex++
	}
	if update.JobsFound != nil {
		sets = append(sets, fmt.Sprintf("jobs_found = $%d", argIndex))
		args = append(args, *update.JobsFound)
		argIndex++
	}
	if update.JobsMatched != nil {
		sets = append(sets, fmt.Sprintf("jobs_matched = $%d", argIndex))
		args = append(args, *update.JobsMatched)
		argIndex++
	}
	if update.AvgScore != nil {
		sets = append(sets, fmt.Sprintf("avg_score = $%d", argIndex))
		args = append(args, *update.AvgScore)
		argIndex++
	}
	if update.CompletedAt != nil {
		sets = append(sets, fmt.Sprintf("completed_at = $%d", argIndex))
		args = append(args, *update.CompletedAt)
		argIndex++
	}
	if update.AppendError != nil {
		sets = append(sets, fmt.Sprintf(
			"errors = COALESCE(errors, '[]'::jsonb) || jsonb_build_array($%d::text)", argIndex))
		args = append(args, *update.AppendError)
		argIndex++
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE runs SET %s WHERE id = $1", strings.Join(sets, ", "))
	if _, err := db.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// FindLatestRun retrieves an owner's most recent run, optionally filtered by
// status. Returns nil when the owner has no matching run.
func (db *DB) FindLatestRun(ctx context.Context, userID string, status string) (*Run, error) {
	query := `SELECT id, user_id, status, sources, jobs_found, jobs_matched,
	                 avg_score, started_at, completed_at, errors
	          FROM runs WHERE user_id = $1`
	args := []interface{}{userID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY started_at DESC LIMIT 1"

	run, err := scanRun(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest run: %w", err)
	}
	return run, nil
}

// RecentRuns retrieves an owner's most recent runs, newest first.
func (db *DB) RecentRuns(ctx context.Context, userID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, status, sources, jobs_found, jobs_matched,
		        avg_score, started_at, completed_at, errors
		 FROM runs WHERE user_id = $1
		 ORDER BY started_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*Run, error) {
	var r Run
	var sourcesJSON, errorsJSON []byte

	err := row.Scan(&r.ID, &r.UserID, &r.Status, &sourcesJSON, &r.JobsFound,
		&r.JobsMatched, &r.AvgScore, &r.StartedAt, &r.CompletedAt, &errorsJSON)
	if err != nil {
		return nil, err
	}

	if sourcesJSON != nil {
		_ = json.Unmarshal(sourcesJSON, &r.Sources)
	}
	if errorsJSON != nil {
		_ = json.Unmarshal(errorsJSON, &r.Errors)
	}
	return &r, nil
}
