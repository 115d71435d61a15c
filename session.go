package econstats

import "time"

// Session is one user's query history, persisted between runs.
// Queries are append-only: entries are never rewritten or reordered.
type Session struct {
	ID        string
	Queries   []QueryRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QueryRecord is one remembered query.
type QueryRecord struct {
	Query   string
	AskedAt time.Time
}

// Append records a query at the end of the history.
func (s *Session) Append(query string, at time.Time) {
	s.Queries = append(s.Queries, QueryRecord{Query: query, AskedAt: at})
	s.UpdatedAt = at
}

// History returns the queries oldest-first, for SearchRequest.History.
func (s *Session) History() []string {
	if len(s.Queries) == 0 {
		return nil
	}
	out := make([]string, len(s.Queries))
	for i, q := range s.Queries {
		out[i] = q.Query
	}
	return out
}

// Recordable reports whether a finished query belongs in the history.
// Queries that failed without assembling anything user-visible are not
// recorded.
func Recordable(r Result) bool {
	return r.State != StreamStateFailed || !r.Empty()
}
