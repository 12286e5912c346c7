// Package types defines the canonical domain types shared across the pipeline stages.
package types

import "time"

// JobStatus represents the lifecycle status of a stored job.
type JobStatus string

// Job status constants. The pipeline only ever assigns StatusNew and StatusMatched;
// the remaining statuses are user-driven transitions applied after persistence.
const (
	StatusNew       JobStatus = "new"
	StatusMatched   JobStatus = "matched"
	StatusApplied   JobStatus = "applied"
	StatusRejected  JobStatus = "rejected"
	StatusInterview JobStatus = "interview"
	StatusOffer     JobStatus = "offer"
)

// Source constants identify the external job boards a posting can originate from.
const (
	SourceGoogleJobs  = "google_jobs"
	SourceGreenhouse  = "greenhouse"
	SourceLever       = "lever"
	SourceYCombinator = "yc"
	SourceLinkedIn    = "linkedin"
	SourceWellfound   = "wellfound"
)

// Salary holds the structured salary information parsed from free text.
// All fields are nil/empty when the source text was missing or unparseable.
type Salary struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Interval string   `json:"interval,omitempty"` // year, month, week, day, hour
}

// Outreach holds generated outreach content. All fields are empty until an
// outreach generator (external to the core pipeline) fills them in.
type Outreach struct {
	EmailSubject string `json:"email_subject,omitempty"`
	EmailBody    string `json:"email_body,omitempty"`
	LinkedInDM   string `json:"linkedin_dm,omitempty"`
}

// JobMetadata carries provenance information attached to every normalized job.
type JobMetadata struct {
	CollectedAt time.Time  `json:"collected_at"`
	ScrapedFrom string     `json:"scraped_from"`
	Fingerprint string     `json:"fingerprint"`
	RawPayload  RawPosting `json:"raw_payload,omitempty"`
	ScanRunID   string     `json:"scan_run_id,omitempty"`
}

// Job is the canonical normalized job record. It is produced by the Normalizer
// stage and owned by the store after the Reviewer persists it.
type Job struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Source          string      `json:"source"`
	SourceID        string      `json:"source_id,omitempty"`
	Title           string      `json:"title"`
	Company         string      `json:"company,omitempty"`
	CompanyLogo     string      `json:"company_logo,omitempty"`
	Location        string      `json:"location,omitempty"`
	Remote          bool        `json:"remote"`
	EmploymentType  string      `json:"employment_type,omitempty"`
	Salary          Salary      `json:"salary"`
	PostedAt        *time.Time  `json:"posted_at,omitempty"`
	Description     string      `json:"description,omitempty"`
	ListingURL      string      `json:"listing_url,omitempty"`
	ApplyURL        string      `json:"apply_url,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	SkillsExtracted []string    `json:"skills_extracted,omitempty"`
	MatchScore      *float64    `json:"match_score,omitempty"`
	MatchReasoning  string      `json:"match_reasoning,omitempty"`
	MissingSkills   []string    `json:"missing_skills,omitempty"`
	Status          JobStatus   `json:"status"`
	Outreach        Outreach    `json:"outreach"`
	Metadata        JobMetadata `json:"metadata"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Score returns the match score, or 0 when the job has not been scored yet.
func (j *Job) Score() float64 {
	if j.MatchScore == nil {
		return 0
	}
	return *j.MatchScore
}
