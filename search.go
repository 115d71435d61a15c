package econstats

import (
	"fmt"
	"strings"
)

// SearchRequest carries one user query and the session's prior queries.
// History is ordered oldest-first and append-only; the backend uses it
// to resolve follow-up phrasing ("what about services?").
type SearchRequest struct {
	Query   string
	History []string
}

// Validate checks universal constraints on SearchRequest.
// Searcher implementations may apply additional backend-specific validation.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query must be non-empty: %w", ErrValidation)
	}
	for i, q := range r.History {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("history[%d] must be non-empty: %w", i, ErrValidation)
		}
	}
	return nil
}
