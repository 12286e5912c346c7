package sources

import (
	"context"

	"github.com/daniel/jobscout/internal/types"
)

// WellfoundAdapter is a registered placeholder: Wellfound has no public
// search API and its listings sit behind aggressive bot protection.
// TODO: implement once the partner API access request is approved.
type WellfoundAdapter struct{}

// NewWellfoundAdapter creates the placeholder Wellfound adapter.
func NewWellfoundAdapter() *WellfoundAdapter { return &WellfoundAdapter{} }

// Name implements Adapter.
func (a *WellfoundAdapter) Name() string { return types.SourceWellfound }

// Search implements Adapter and always returns an empty result.
func (a *WellfoundAdapter) Search(_ context.Context, _ Query) ([]types.RawPosting, error) {
	return nil, nil
}
