package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daniel/jobscout/internal/fetch"
	"github.com/daniel/jobscout/internal/types"
)

const defaultLeverBaseURL = "https://api.lever.co/v0/postings"

// LeverAdapter pulls postings from the public Lever JSON API for a configured
// set of company boards.
type LeverAdapter struct {
	companies []string
	baseURL   string
	limiter   *HostLimiter
}

// NewLeverAdapter creates the Lever adapter for the given board slugs.
func NewLeverAdapter(companies []string, limiter *HostLimiter) *LeverAdapter {
	return &LeverAdapter{
		companies: companies,
		baseURL:   defaultLeverBaseURL,
		limiter:   limiter,
	}
}

// Name implements Adapter.
func (a *LeverAdapter) Name() string { return types.SourceLever }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	ApplyURL   string `json:"applyUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	DescriptionPlain string `json:"descriptionPlain"`
}

// Search implements Adapter. One failing board degrades to a skip; the
// adapter only errors when every board fails.
func (a *LeverAdapter) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	if len(a.companies) == 0 {
		return nil, nil
	}

	terms := strings.ToLower(query.Terms())
	var postings []types.RawPosting
	failures := 0

	for _, slug := range a.companies {
		boardURL := fmt.Sprintf("%s/%s?mode=json", a.baseURL, slug)

		if err := a.limiter.WaitURL(ctx, boardURL); err != nil {
			return nil, fmt.Errorf("lever: rate limit wait: %w", err)
		}

		var board []leverPosting
		if err := fetch.JSON(ctx, boardURL, nil, &board); err != nil {
			failures++
			continue
		}

		for _, p := range board {
			if terms != "" && !matchesTerms(terms, p.Text, p.DescriptionPlain) {
				continue
			}
			posted := ""
			if p.CreatedAt > 0 {
				posted = time.UnixMilli(p.CreatedAt).UTC().Format(time.RFC3339)
			}
			postings = append(postings, types.RawPosting{
				"id":              p.ID,
				"title":           p.Text,
				"company":         slug,
				"location":        p.Categories.Location,
				"description":     p.DescriptionPlain,
				"via":             "Lever",
				"listing_url":     p.HostedURL,
				"apply_url":       p.ApplyURL,
				"posted_at":       posted,
				"employment_type": p.Categories.Commitment,
			})
		}
	}

	if failures == len(a.companies) {
		return nil, fmt.Errorf("lever: all %d boards failed", failures)
	}
	return postings, nil
}

// matchesTerms reports whether any search term appears in the given fields.
func matchesTerms(loweredTerms string, fields ...string) bool {
	for _, term := range strings.Fields(loweredTerms) {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
	}
	return false
}
