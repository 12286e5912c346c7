package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daniel/jobscout/internal/fetch"
	"github.com/daniel/jobscout/internal/types"
)

const defaultYCJobsURL = "https://www.ycombinator.com/jobs"

// maxYCJobs bounds how many postings one scrape contributes to a run.
const maxYCJobs = 10

// YCombinatorAdapter scrapes Y Combinator's jobs page.
type YCombinatorAdapter struct {
	jobsURL string
	limiter *HostLimiter
}

// NewYCombinatorAdapter creates the YC jobs adapter.
func NewYCombinatorAdapter(limiter *HostLimiter) *YCombinatorAdapter {
	return &YCombinatorAdapter{jobsURL: defaultYCJobsURL, limiter: limiter}
}

// Name implements Adapter.
func (a *YCombinatorAdapter) Name() string { return types.SourceYCombinator }

// Search implements Adapter by scraping the YC jobs listing page.
func (a *YCombinatorAdapter) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	if err := a.limiter.WaitURL(ctx, a.jobsURL); err != nil {
		return nil, fmt.Errorf("yc: rate limit wait: %w", err)
	}

	body, err := fetch.URL(ctx, a.jobsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("yc: fetch jobs page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("yc: parse jobs page: %w", err)
	}

	var postings []types.RawPosting
	doc.Find("div.job-listing").EachWithBreak(func(_ int, listing *goquery.Selection) bool {
		title := strings.TrimSpace(listing.Find("h3").First().Text())
		if title == "" {
			return true
		}

		company := strings.TrimSpace(listing.Find("span.company").First().Text())
		if company == "" {
			company = "YC Startup"
		}
		location := strings.TrimSpace(listing.Find("span.location").First().Text())
		if location == "" {
			location = "San Francisco"
		}

		listingURL := a.jobsURL
		if id, ok := listing.Attr("id"); ok && id != "" {
			listingURL = fmt.Sprintf("%s/%s", a.jobsURL, id)
		}

		postings = append(postings, types.RawPosting{
			"title":       title,
			"company":     company,
			"location":    location,
			"description": fmt.Sprintf("Y Combinator startup looking for: %s", query.Terms()),
			"via":         "Y Combinator",
			"listing_url": listingURL,
		})
		return len(postings) < maxYCJobs
	})

	return postings, nil
}
