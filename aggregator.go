package econstats

// Aggregator owns the partial result for exactly one query and applies
// streaming events to it in arrival order. It is not safe for concurrent
// use; the Runner applies events from a single goroutine.
type Aggregator struct {
	result Result
}

// NewAggregator creates an aggregator for one query, starting in
// StreamStateConnecting.
func NewAggregator(query string) *Aggregator {
	return &Aggregator{result: Result{Query: query, State: StreamStateConnecting}}
}

// Apply folds one event into the result and returns the updated
// snapshot. Events are never reordered or coalesced. Events arriving
// after a terminal state are ignored: a trailing done after an error
// must not resurrect the query.
func (a *Aggregator) Apply(evt Event) Result {
	if a.result.State.Terminal() {
		return a.result
	}
	switch e := evt.(type) {
	case EventCharts:
		a.result.Charts = e.Charts
		a.result.Metrics = e.Metrics
		a.result.TemporalContext = e.TemporalContext
		if a.result.State == StreamStateConnecting {
			a.result.State = StreamStateStreaming
		}
	case EventSpecial:
		a.result.Fragments = a.result.Fragments.Merge(e.Fragments)
	case EventSources:
		a.result.Sources = e.Sources
	case EventSummaryChunk:
		a.result.Summary += e.Text
	case EventDone:
		a.result.Suggestions = e.Suggestions
		a.result.State = StreamStateDone
	case EventError:
		a.result.ErrorMessage = e.Message
		a.result.State = StreamStateFailed
	}
	return a.result
}

// ReplaceWith supersedes the entire result with a complete non-streaming
// response and enters Done. Partially-applied state from a broken stream
// is discarded wholesale, never merged. No-op when already terminal.
func (a *Aggregator) ReplaceWith(full Result) Result {
	if a.result.State.Terminal() {
		return a.result
	}
	full.Query = a.result.Query
	full.ErrorMessage = ""
	full.State = StreamStateDone
	a.result = full
	return a.result
}

// Fail records a user-visible failure and enters Failed. No-op when
// already terminal.
func (a *Aggregator) Fail(message string) Result {
	if a.result.State.Terminal() {
		return a.result
	}
	a.result.ErrorMessage = message
	a.result.State = StreamStateFailed
	return a.result
}

// Snapshot returns the current result.
func (a *Aggregator) Snapshot() Result {
	return a.result
}

// State returns the current lifecycle state.
func (a *Aggregator) State() StreamState {
	return a.result.State
}

// Handlers returns a dispatch table whose callbacks apply events to this
// aggregator, for wiring a raw event source straight into result
// assembly.
func (a *Aggregator) Handlers() Handlers {
	return Handlers{
		OnCharts:       func(e EventCharts) { a.Apply(e) },
		OnSpecial:      func(e EventSpecial) { a.Apply(e) },
		OnSources:      func(e EventSources) { a.Apply(e) },
		OnSummaryChunk: func(e EventSummaryChunk) { a.Apply(e) },
		OnDone:         func(e EventDone) { a.Apply(e) },
		OnError:        func(e EventError) { a.Apply(e) },
	}
}
