// Package sources contains the per-board adapters that turn a search query
// into raw postings, plus the retry wrapper and rate limiting shared by all of
// them. Adapters degrade to an empty result on any failure; they never leak
// errors or partial structures past their boundary.
package sources

import (
	"context"
	"strings"

	"github.com/daniel/jobscout/internal/types"
)

// Query is the search request handed to every adapter.
type Query struct {
	Keywords []string
	Location string
}

// Terms returns the keywords joined into a single query string.
func (q Query) Terms() string {
	return strings.Join(q.Keywords, " ")
}

// Adapter performs a single search against one external job source.
// Implementations must respect context deadlines on every external call and
// must return an empty slice, never partial or corrupt data, on failure.
type Adapter interface {
	Name() string
	Search(ctx context.Context, query Query) ([]types.RawPosting, error)
}

// Registry maps source tags to their adapters.
type Registry map[string]Adapter

// Register adds an adapter under its own name.
func (r Registry) Register(a Adapter) {
	r[a.Name()] = a
}

// Get returns the adapter for a source tag, or nil when unknown.
func (r Registry) Get(name string) Adapter {
	return r[name]
}
