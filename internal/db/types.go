package db

import (
	"time"

	"github.com/google/uuid"
)

// Run status constants. A run becomes immutable once it reaches a terminal
// status (completed, failed, stopped).
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusStopped   = "stopped"
)

// Run represents one end-to-end pipeline execution for one owner.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	Sources     []string   `json:"sources"`
	JobsFound   int        `json:"jobs_found"`
	JobsMatched int        `json:"jobs_matched"`
	AvgScore    float64    `json:"avg_score"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Errors      []string   `json:"errors,omitempty"`
}

// RunUpdate carries a partial update to a run record. Nil fields are left
// untouched.
type RunUpdate struct {
	Status      *string
	JobsFound   *int
	JobsMatched *int
	AvgScore    *float64
	CompletedAt *time.Time
	AppendError *string
}

// TimelineEntry is one append-only log line tied to a run. Entries are never
// mutated after insert.
type TimelineEntry struct {
	ID        uuid.UUID      `json:"id"`
	UserID    string         `json:"user_id"`
	RunID     *uuid.UUID     `json:"run_id,omitempty"`
	Step      string         `json:"step"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
