package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/normalize"
	"github.com/daniel/jobscout/internal/schemas"
	"github.com/daniel/jobscout/internal/types"
)

// normalizeBatchSize bounds the per-request payload sent to the model.
const normalizeBatchSize = 10

// Normalizer maps raw postings into validated jobs. The model does the messy
// field mapping; every invariant (title, URLs, fingerprint) is re-checked
// deterministically afterwards and is never trusted from the model output.
type Normalizer struct {
	llm llm.Client
	log *zap.Logger
}

func NewNormalizer(client llm.Client, log *zap.Logger) *Normalizer {
	return &Normalizer{llm: client, log: log}
}

// draftJob mirrors one entry of the model's normalized_jobs output.
type draftJob struct {
	SourceID       string `json:"source_id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	CompanyLogo    string `json:"company_logo"`
	Location       string `json:"location"`
	Remote         bool   `json:"remote"`
	EmploymentType string `json:"employment_type"`
	Salary         string `json:"salary"`
	PostedAt       string `json:"posted_at"`
	Description    string `json:"description"`
	ListingURL     string `json:"listing_url"`
	ApplyURL       string `json:"apply_url"`
}

type batchDraft struct {
	NormalizedJobs []draftJob `json:"normalized_jobs"`
	DiscardedCount int        `json:"discarded_count"`
	DiscardReasons []string   `json:"discard_reasons"`
}

// Normalize processes raw postings in fixed-size batches. A malformed model
// response discards the whole batch with reason llm_parse_error; per-job
// validation failures discard only that job with its specific reason.
func (n *Normalizer) Normalize(ctx context.Context, userID, runID string, postings []types.RawPosting) NormalizeOutput {
	var out NormalizeOutput
	now := time.Now().UTC()

	for start := 0; start < len(postings); start += normalizeBatchSize {
		end := start + normalizeBatchSize
		if end > len(postings) {
			end = len(postings)
		}
		batch := postings[start:end]

		draft, err := n.extractBatch(ctx, batch)
		if err != nil {
			n.log.Warn("discarding batch",
				zap.Int("size", len(batch)),
				zap.Error(err))
			out.Discarded += len(batch)
			out.DiscardReasons = append(out.DiscardReasons, normalize.ReasonLLMParseError)
			continue
		}

		out.Discarded += draft.DiscardedCount
		out.DiscardReasons = append(out.DiscardReasons, draft.DiscardReasons...)

		for i, d := range draft.NormalizedJobs {
			var raw types.RawPosting
			if i < len(batch) {
				raw = batch[i]
			}
			job, reason := n.finalize(d, raw, userID, runID, now)
			if job == nil {
				out.Discarded++
				out.DiscardReasons = append(out.DiscardReasons, reason)
				continue
			}
			out.Jobs = append(out.Jobs, *job)
		}
	}

	n.log.Info("normalizer finished",
		zap.Int("jobs", len(out.Jobs)),
		zap.Int("discarded", out.Discarded))

	return out
}

// extractBatch asks the model to map one batch and validates the response
// against the embedded batch schema before decoding it.
func (n *Normalizer) extractBatch(ctx context.Context, batch []types.RawPosting) (*batchDraft, error) {
	input, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}

	prompt := llm.BuildExtractionPrompt(llm.JobBatchSchema(), string(input))
	response, err := n.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(response)
	if err := schemas.ValidateJobBatch([]byte(cleaned)); err != nil {
		return nil, err
	}

	var draft batchDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// finalize applies the deterministic post-processing to one draft job. It
// returns nil with a discard reason when hard validation fails.
func (n *Normalizer) finalize(d draftJob, raw types.RawPosting, userID, runID string, now time.Time) (*types.Job, string) {
	title := normalize.Title(d.Title)
	company := normalize.CompanyName(d.Company)

	listingURL := d.ListingURL
	applyURL := d.ApplyURL
	if applyURL == "" {
		applyURL = listingURL
	}

	if valid, reason := normalize.Validate(title, listingURL, applyURL); !valid {
		return nil, reason
	}

	source := raw.Str("scraped_from")
	if source == "" {
		source = raw.Str("via")
	}

	fingerprint := normalize.Fingerprint(title, company, d.SourceID, d.Location)
	id := d.SourceID
	if id == "" {
		id = fingerprint
	}

	job := &types.Job{
		ID:             id,
		UserID:         userID,
		Source:         source,
		SourceID:       d.SourceID,
		Title:          title,
		Company:        company,
		CompanyLogo:    d.CompanyLogo,
		Location:       d.Location,
		Remote:         d.Remote,
		EmploymentType: d.EmploymentType,
		Salary:         normalize.Salary(d.Salary),
		PostedAt:       normalize.PostedAt(d.PostedAt, now),
		Description:    d.Description,
		ListingURL:     listingURL,
		ApplyURL:       applyURL,
		Status:         types.StatusNew,
		Metadata: types.JobMetadata{
			CollectedAt: now,
			ScrapedFrom: source,
			Fingerprint: fingerprint,
			RawPayload:  raw,
			ScanRunID:   runID,
		},
		CreatedAt: now,
	}

	job.SkillsExtracted = normalize.Skills(d.Description)
	job.Tags = normalize.Tags(job)

	return job, ""
}
