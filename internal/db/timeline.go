package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Timeline Methods
// -----------------------------------------------------------------------------

// AddTimelineEntry appends one timeline entry. Entries are append-only; there
// is no update or delete path.
func (db *DB) AddTimelineEntry(ctx context.Context, userID string, runID *uuid.UUID, step string, metadata map[string]any) error {
	var metadataJSON []byte
	if metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal timeline metadata: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO timeline (user_id, run_id, step, metadata, timestamp)
		 VALUES ($1, $2, $3, $4, NOW())`,
		userID, runID, step, metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to add timeline entry: %w", err)
	}
	return nil
}

// RecentTimeline retrieves an owner's most recent timeline entries, newest
// first.
func (db *DB) RecentTimeline(ctx context.Context, userID string, limit int) ([]TimelineEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, run_id, step, metadata, timestamp
		 FROM timeline WHERE user_id = $1
		 ORDER BY timestamp DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline entries: %w", err)
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		var metadataJSON []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.RunID, &e.Step, &metadataJSON, &e.Timestamp); err != nil {
			return nil, err
		}
		if metadataJSON != nil {
			_ = json.Unmarshal(metadataJSON, &e.Metadata)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
