// Package mock provides test doubles for econstats interfaces using function fields.
package mock

import (
	"context"

	"github.com/econstats/econstats"
)

// Interface compliance check.
var _ econstats.Searcher = (*Searcher)(nil)

// Searcher is a test double for econstats.Searcher.
// Set the function fields for the methods you need; an unset method
// panics when called, to catch missing setup.
type Searcher struct {
	SearchFn       func(ctx context.Context, req econstats.SearchRequest) (*econstats.Result, error)
	SearchStreamFn func(ctx context.Context, req econstats.SearchRequest) (econstats.Stream, error)
}

// Search delegates to SearchFn.
func (s *Searcher) Search(ctx context.Context, req econstats.SearchRequest) (*econstats.Result, error) {
	return s.SearchFn(ctx, req)
}

// SearchStream delegates to SearchStreamFn.
func (s *Searcher) SearchStream(ctx context.Context, req econstats.SearchRequest) (econstats.Stream, error) {
	return s.SearchStreamFn(ctx, req)
}
