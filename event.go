package econstats

// Event is a sealed interface representing a streaming search event.
// Events are purely semantic. Transport and framing errors come from
// Next()'s error return, not from events; a server-sent "error" frame is
// a valid protocol outcome and arrives as EventError.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventCharts carries the chart payloads for a query. Charts, Metrics,
// and TemporalContext replace any prior values wholesale.
type EventCharts struct {
	Charts          []Chart
	Metrics         []Metric
	TemporalContext string
}

func (EventCharts) event() {}

// EventSpecial carries named HTML fragments. Any subset may be present;
// fragments absent from the event leave prior values untouched.
type EventSpecial struct {
	Fragments Fragments
}

func (EventSpecial) event() {}

// EventSources carries the data-source list, replacing any prior list.
type EventSources struct {
	Sources []SourceInfo
}

func (EventSources) event() {}

// EventSummaryChunk carries the next piece of summary text. Chunks
// concatenate in arrival order with no separator insertion.
type EventSummaryChunk struct {
	Text string
}

func (EventSummaryChunk) event() {}

// EventDone signals normal completion and carries follow-up suggestions.
type EventDone struct {
	Suggestions []string
}

func (EventDone) event() {}

// EventError signals a server-side failure. It is terminal for the
// query; events after it are not applied.
type EventError struct {
	Message string
}

func (EventError) event() {}

// Interface compliance checks.
var (
	_ Event = EventCharts{}
	_ Event = EventSpecial{}
	_ Event = EventSources{}
	_ Event = EventSummaryChunk{}
	_ Event = EventDone{}
	_ Event = EventError{}
)
