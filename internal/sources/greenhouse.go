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

const defaultGreenhouseBaseURL = "https://boards.greenhouse.io"

// GreenhouseAdapter scrapes the public Greenhouse boards of a configured set
// of companies.
type GreenhouseAdapter struct {
	companies []string
	baseURL   string
	limiter   *HostLimiter
}

// NewGreenhouseAdapter creates the Greenhouse adapter for the given board slugs.
func NewGreenhouseAdapter(companies []string, limiter *HostLimiter) *GreenhouseAdapter {
	return &GreenhouseAdapter{
		companies: companies,
		baseURL:   defaultGreenhouseBaseURL,
		limiter:   limiter,
	}
}

// Name implements Adapter.
func (a *GreenhouseAdapter) Name() string { return types.SourceGreenhouse }

// Search implements Adapter by scraping each board page for job links.
func (a *GreenhouseAdapter) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	if len(a.companies) == 0 {
		return nil, nil
	}

	terms := strings.ToLower(query.Terms())
	var postings []types.RawPosting
	failures := 0

	for _, slug := range a.companies {
		boardURL := fmt.Sprintf("%s/%s", a.baseURL, slug)

		if err := a.limiter.WaitURL(ctx, boardURL); err != nil {
			return nil, fmt.Errorf("greenhouse: rate limit wait: %w", err)
		}

		body, err := fetch.URL(ctx, boardURL, nil)
		if err != nil {
			failures++
			continue
		}

		boardPostings, err := a.parseBoard(body, slug, terms)
		if err != nil {
			failures++
			continue
		}
		postings = append(postings, boardPostings...)
	}

	if failures == len(a.companies) {
		return nil, fmt.Errorf("greenhouse: all %d boards failed", failures)
	}
	return postings, nil
}

// parseBoard extracts job anchors from a Greenhouse board page. Boards link
// jobs as /<slug>/jobs/<id> anchors whose text is the title.
func (a *GreenhouseAdapter) parseBoard(html []byte, slug, terms string) ([]types.RawPosting, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("greenhouse: parse board html: %w", err)
	}

	seen := map[string]bool{}
	var postings []types.RawPosting

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if !strings.Contains(strings.ToLower(href), "/jobs/") {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = a.baseURL + href
		}
		if seen[href] {
			return
		}

		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return
		}
		if terms != "" && !matchesTerms(terms, title) {
			return
		}
		seen[href] = true

		location := strings.TrimSpace(anchor.Parent().Find(".location").Text())
		postings = append(postings, types.RawPosting{
			"title":       title,
			"company":     slug,
			"location":    location,
			"via":         "Greenhouse",
			"listing_url": href,
		})
	})

	return postings, nil
}
