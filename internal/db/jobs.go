package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/daniel/jobscout/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, user_id, source, source_id, title, company, company_logo,
	        location, remote, employment_type, salary, posted_at, description,
	        listing_url, apply_url, tags, skills_extracted, match_score,
	        match_reasoning, missing_skills, status, outreach, metadata, created_at`

// InsertJob stores a new job record and returns its generated ID.
func (db *DB) InsertJob(ctx context.Context, job *types.Job) (string, error) {
	salaryJSON, err := json.Marshal(job.Salary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal salary: %w", err)
	}
	outreachJSON, err := json.Marshal(job.Outreach)
	if err != nil {
		return "", fmt.Errorf("failed to marshal outreach: %w", err)
	}
	metadataJSON, err := json.Marshal(job.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var tagsJSON, skillsJSON, missingJSON []byte
	if len(job.Tags) > 0 {
		tagsJSON, _ = json.Marshal(job.Tags)
	}
	if len(job.SkillsExtracted) > 0 {
		skillsJSON, _ = json.Marshal(job.SkillsExtracted)
	}
	if len(job.MissingSkills) > 0 {
		missingJSON, _ = json.Marshal(job.MissingSkills)
	}

	var id string
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (user_id, source, source_id, title, company, company_logo,
		                   location, remote, employment_type, salary, posted_at,
		                   description, listing_url, apply_url, tags, skills_extracted,
		                   match_score, match_reasoning, missing_skills, status,
		                   outreach, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15, $16, $17, $18, $19, $20, $21, $22)
		 RETURNING id`,
		job.UserID, job.Source, nullIfEmpty(job.SourceID), job.Title,
		nullIfEmpty(job.Company), nullIfEmpty(job.CompanyLogo),
		nullIfEmpty(job.Location), job.Remote, nullIfEmpty(job.EmploymentType),
		salaryJSON, job.PostedAt, nullIfEmpty(job.Description),
		nullIfEmpty(job.ListingURL), nullIfEmpty(job.ApplyURL),
		tagsJSON, skillsJSON, job.MatchScore, nullIfEmpty(job.MatchReasoning),
		missingJSON, string(job.Status), outreachJSON, metadataJSON,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert job: %w", err)
	}

	return id, nil
}

// FindJobByFingerprint retrieves a stored job by its dedup fingerprint,
// scoped to one owner. Returns nil when no job matches.
func (db *DB) FindJobByFingerprint(ctx context.Context, userID, fingerprint string) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE user_id = $1 AND metadata->>'fingerprint' = $2
		 LIMIT 1`,
		userID, fingerprint,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job by fingerprint: %w", err)
	}
	return job, nil
}

// GetJobByID retrieves a job by its ID, scoped to one owner. Returns nil when
// no job matches.
func (db *DB) GetJobByID(ctx context.Context, userID, id string) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// UpdateJobStatus transitions a job to a new lifecycle status. Returns false
// when the job does not exist for the owner.
func (db *DB) UpdateJobStatus(ctx context.Context, userID, id string, status types.JobStatus) (bool, error) {
	return db.UpdateJob(ctx, userID, id, JobUpdate{Status: &status})
}

// JobUpdate carries a partial update to a job record. Nil fields are left
// untouched.
type JobUpdate struct {
	MatchScore     *float64
	MatchReasoning *string
	MissingSkills  []string
	Status         *types.JobStatus
	Outreach       *types.Outreach
}

// UpdateJob applies a partial update to a job. Returns false when the job
// does not exist for the owner.
func (db *DB) UpdateJob(ctx context.Context, userID, id string, update JobUpdate) (bool, error) {
	var sets []string
	var args []interface{}
	args = append(args, userID, id)
	argIndex := 3

	if update.MatchScore != nil {
		sets = append(sets, fmt.Sprintf("match_score = $%d", argIndex))
		args = append(args, *update.MatchScore)
		argIndex++
	}
	if update.MatchReasoning != nil {
		sets = append(sets, fmt.Sprintf("match_reasoning = $%d", argIndex))
		args = append(args, *update.MatchReasoning)
		argIndex++
	}
	if update.MissingSkills != nil {
		missingJSON, err := json.Marshal(update.MissingSkills)
		if err != nil {
			return false, fmt.Errorf("failed to marshal missing skills: %w", err)
		}
		sets = append(sets, fmt.Sprintf("missing_skills = $%d", argIndex))
		args = append(args, missingJSON)
		argIndex++
	}
	if update.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(*update.Status))
		argIndex++
	}
	if update.Outreach != nil {
		outreachJSON, err := json.Marshal(update.Outreach)
		if err != nil {
			return false, fmt.Errorf("failed to marshal outreach: %w", err)
		}
		sets = append(sets, fmt.Sprintf("outreach = $%d", argIndex))
		args = append(args, outreachJSON)
		argIndex++
	}

	if len(sets) == 0 {
		return false, nil
	}

	query := fmt.Sprintf(
		"UPDATE jobs SET %s WHERE user_id = $1 AND id = $2",
		strings.Join(sets, ", "),
	)
	tag, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListJobsOptions contains filters for listing jobs.
type ListJobsOptions struct {
	Status   *types.JobStatus
	Source   *string
	MinScore *float64
	Limit    int
	Offset   int
}

// ListJobs lists an owner's jobs with optional filters, newest first, and
// returns the total count matching the filters.
func (db *DB) ListJobs(ctx context.Context, userID string, opts ListJobsOptions) ([]types.Job, int, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argIndex := 2

	if opts.Status != nil && *opts.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, string(*opts.Status))
		argIndex++
	}
	if opts.Source != nil && *opts.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argIndex))
		args = append(args, *opts.Source)
		argIndex++
	}
	if opts.MinScore != nil {
		conditions = append(conditions, fmt.Sprintf("match_score >= $%d", argIndex))
		args = append(args, *opts.MinScore)
		argIndex++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT `+jobColumns+`
		 FROM jobs %s
		 ORDER BY created_at DESC
		 LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}

	return jobs, total, nil
}

// CountJobsByStatus returns the number of an owner's jobs per status.
func (db *DB) CountJobsByStatus(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM jobs WHERE user_id = $1 GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}

// CountJobsBySource returns the number of an owner's jobs per source.
func (db *DB) CountJobsBySource(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT source, COUNT(*) FROM jobs WHERE user_id = $1 GROUP BY source`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		counts[source] = count
	}
	return counts, nil
}

// scanJob scans one row in jobColumns order into a Job.
func scanJob(row pgx.Row) (*types.Job, error) {
	var j types.Job
	var sourceID, company, companyLogo, location, employmentType *string
	var description, listingURL, applyURL, matchReasoning *string
	var salaryJSON, tagsJSON, skillsJSON, missingJSON, outreachJSON, metadataJSON []byte

	err := row.Scan(&j.ID, &j.UserID, &j.Source, &sourceID, &j.Title, &company,
		&companyLogo, &location, &j.Remote, &employmentType, &salaryJSON,
		&j.PostedAt, &description, &listingURL, &applyURL, &tagsJSON,
		&skillsJSON, &j.MatchScore, &matchReasoning, &missingJSON, &j.Status,
		&outreachJSON, &metadataJSON, &j.CreatedAt)
	if err != nil {
		return nil, err
	}

	j.SourceID = deref(sourceID)
	j.Company = deref(company)
	j.CompanyLogo = deref(companyLogo)
	j.Location = deref(location)
	j.EmploymentType = deref(employmentType)
	j.Description = deref(description)
	j.ListingURL = deref(listingURL)
	j.ApplyURL = deref(applyURL)
	j.MatchReasoning = deref(matchReasoning)

	if salaryJSON != nil {
		_ = json.Unmarshal(salaryJSON, &j.Salary)
	}
	if tagsJSON != nil {
		_ = json.Unmarshal(tagsJSON, &j.Tags)
	}
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &j.SkillsExtracted)
	}
	if missingJSON != nil {
		_ = json.Unmarshal(missingJSON, &j.MissingSkills)
	}
	if outreachJSON != nil {
		_ = json.Unmarshal(outreachJSON, &j.Outreach)
	}
	if metadataJSON != nil {
		_ = json.Unmarshal(metadataJSON, &j.Metadata)
	}

	return &j, nil
}

// nullIfEmpty converts an empty string to nil so the column stores NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
