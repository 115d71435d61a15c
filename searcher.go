package econstats

import "context"

// Searcher is a strategy interface for the search backend.
//
// SearchStream issues one streaming request per query. Search issues the
// same query as a single non-streaming request and returns the complete
// result; the Runner uses it as the fallback path when streaming fails.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*Result, error)
	SearchStream(ctx context.Context, req SearchRequest) (Stream, error)
}
