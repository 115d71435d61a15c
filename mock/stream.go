package mock

import "github.com/econstats/econstats"

// Interface compliance check.
var _ econstats.Stream = (*Stream)(nil)

// Stream is a test double for econstats.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe
// because test code commonly calls defer stream.Close() and rarely needs
// custom close behavior.
type Stream struct {
	NextFn  func() (econstats.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (econstats.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Events returns a Stream that yields the given events in order, then
// the final error (io.EOF for a normally closed stream).
func Events(final error, events ...econstats.Event) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (econstats.Event, error) {
			if i >= len(events) {
				return nil, final
			}
			evt := events[i]
			i++
			return evt, nil
		},
	}
}
