package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daniel/jobscout/internal/fetch"
	"github.com/daniel/jobscout/internal/types"
)

const linkedInSearchURL = "https://www.linkedin.com/jobs/search/"

// maxLinkedInJobs bounds how many cards one search contributes to a run.
const maxLinkedInJobs = 10

// renderFunc loads a URL in a headless browser and returns the rendered HTML.
// Indirection exists so tests can substitute a canned renderer.
type renderFunc func(ctx context.Context, url string) (string, error)

// LinkedInAdapter scrapes the public LinkedIn jobs search page. The page is
// JavaScript-rendered, so it goes through the headless browser.
type LinkedInAdapter struct {
	render  renderFunc
	limiter *HostLimiter
}

// NewLinkedInAdapter creates the LinkedIn adapter backed by chromedp.
func NewLinkedInAdapter(limiter *HostLimiter) *LinkedInAdapter {
	return &LinkedInAdapter{
		render: func(ctx context.Context, u string) (string, error) {
			return fetch.RenderedHTML(ctx, u, fetch.DefaultBrowserTimeout)
		},
		limiter: limiter,
	}
}

// Name implements Adapter.
func (a *LinkedInAdapter) Name() string { return types.SourceLinkedIn }

// Search implements Adapter by rendering the search results page and parsing
// its job cards.
func (a *LinkedInAdapter) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	searchURL := linkedInSearchURL + "?keywords=" + url.QueryEscape(query.Terms())

	if err := a.limiter.WaitURL(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("linkedin: rate limit wait: %w", err)
	}

	html, err := a.render(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("linkedin: render search page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("linkedin: parse search page: %w", err)
	}

	var postings []types.RawPosting
	doc.Find(".job-search-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := strings.TrimSpace(card.Find(".base-search-card__title").First().Text())
		if title == "" {
			return true
		}

		jobURL, _ := card.Find("a.base-card__full-link").First().Attr("href")
		logo, _ := card.Find("img").First().Attr("src")
		posted := strings.TrimSpace(card.Find("time").First().Text())

		postings = append(postings, types.RawPosting{
			"title":        title,
			"company":      strings.TrimSpace(card.Find(".base-search-card__subtitle").First().Text()),
			"company_logo": logo,
			"location":     strings.TrimSpace(card.Find(".job-search-card__location").First().Text()),
			"via":          "LinkedIn",
			"listing_url":  strings.TrimSpace(jobURL),
			"posted_at":    posted,
		})
		return len(postings) < maxLinkedInJobs
	})

	return postings, nil
}
