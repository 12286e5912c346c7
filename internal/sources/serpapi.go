package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/daniel/jobscout/internal/fetch"
	"github.com/daniel/jobscout/internal/types"
)

const defaultSerpAPIBaseURL = "https://serpapi.com/search.json"

// SerpAPIAdapter searches Google Jobs through the SerpAPI aggregator.
type SerpAPIAdapter struct {
	apiKey  string
	baseURL string
	limiter *HostLimiter
}

// NewSerpAPIAdapter creates the Google Jobs adapter. An empty apiKey is a
// legal configuration: Search then returns an error that the retry wrapper
// absorbs into an empty result.
func NewSerpAPIAdapter(apiKey string, limiter *HostLimiter) *SerpAPIAdapter {
	return &SerpAPIAdapter{
		apiKey:  apiKey,
		baseURL: defaultSerpAPIBaseURL,
		limiter: limiter,
	}
}

// Name implements Adapter.
func (a *SerpAPIAdapter) Name() string { return types.SourceGoogleJobs }

// serpAPIResponse mirrors the jobs_results portion of a SerpAPI search.
type serpAPIResponse struct {
	JobsResults []struct {
		JobID        string `json:"job_id"`
		Title        string `json:"title"`
		CompanyName  string `json:"company_name"`
		Thumbnail    string `json:"thumbnail"`
		Location     string `json:"location"`
		Description  string `json:"description"`
		ShareLink    string `json:"share_link"`
		Link         string `json:"link"`
		ApplyOptions []struct {
			Link string `json:"link"`
		} `json:"apply_options"`
		DetectedExtensions struct {
			Salary       string `json:"salary"`
			PostedAt     string `json:"posted_at"`
			Posted       string `json:"posted"`
			ScheduleType string `json:"schedule_type"`
		} `json:"detected_extensions"`
	} `json:"jobs_results"`
}

// Search implements Adapter against the google_jobs engine.
func (a *SerpAPIAdapter) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("serpapi: api key not configured")
	}

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query.Terms())
	params.Set("location", query.Location)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("api_key", a.apiKey)
	searchURL := a.baseURL + "?" + params.Encode()

	if err := a.limiter.WaitURL(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("serpapi: rate limit wait: %w", err)
	}

	var resp serpAPIResponse
	if err := fetch.JSON(ctx, searchURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("serpapi: search failed: %w", err)
	}

	postings := make([]types.RawPosting, 0, len(resp.JobsResults))
	for _, job := range resp.JobsResults {
		applyURL := ""
		if len(job.ApplyOptions) > 0 {
			applyURL = job.ApplyOptions[0].Link
		}
		listingURL := job.ShareLink
		if listingURL == "" {
			listingURL = job.Link
		}
		postedAt := job.DetectedExtensions.PostedAt
		if postedAt == "" {
			postedAt = job.DetectedExtensions.Posted
		}
		location := job.Location
		if location == "" {
			location = query.Location
		}

		postings = append(postings, types.RawPosting{
			"id":              job.JobID,
			"title":           job.Title,
			"company":         job.CompanyName,
			"company_logo":    job.Thumbnail,
			"location":        location,
			"description":     job.Description,
			"via":             "Google Jobs",
			"listing_url":     listingURL,
			"apply_url":       applyURL,
			"salary":          job.DetectedExtensions.Salary,
			"posted_at":       postedAt,
			"employment_type": job.DetectedExtensions.ScheduleType,
		})
	}

	return postings, nil
}
