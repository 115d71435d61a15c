package econstats

// StreamState tracks the lifecycle of one query's result assembly.
//
// Connecting, Streaming, Done is the happy path; Failed is reached from
// Connecting or Streaming. A result never re-enters an earlier state.
// Done and Failed are terminal.
type StreamState int

const (
	StreamStateConnecting StreamState = iota // Request issued, nothing renderable yet.
	StreamStateStreaming                     // First charts applied, results rendering.
	StreamStateDone                          // Terminal: done event or fallback success.
	StreamStateFailed                        // Terminal: error event or both paths failed.
)

// String returns the state name for logs and status lines.
func (s StreamState) String() string {
	switch s {
	case StreamStateConnecting:
		return "connecting"
	case StreamStateStreaming:
		return "streaming"
	case StreamStateDone:
		return "done"
	case StreamStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events can change a result in
// this state.
func (s StreamState) Terminal() bool {
	return s == StreamStateDone || s == StreamStateFailed
}

// Stream uses a pull-based iterator pattern. Next returns the next
// semantic event, or io.EOF once the server closes the stream.
// Transport and framing failures come from Next's error return; a
// server-sent "error" frame is an EventError, not an error.
// Cancellation flows through the context passed to Searcher.SearchStream.
type Stream interface {
	Next() (Event, error)
	Close() error
}
