package econstats

// Handlers is a fixed callback table for streaming events. Nil entries
// are skipped. Dispatch runs callbacks synchronously on the caller's
// goroutine, in arrival order.
type Handlers struct {
	OnCharts       func(EventCharts)
	OnSpecial      func(EventSpecial)
	OnSources      func(EventSources)
	OnSummaryChunk func(EventSummaryChunk)
	OnDone         func(EventDone)
	OnError        func(EventError)
}

// Dispatch routes one event to its callback.
func (h Handlers) Dispatch(evt Event) {
	switch e := evt.(type) {
	case EventCharts:
		if h.OnCharts != nil {
			h.OnCharts(e)
		}
	case EventSpecial:
		if h.OnSpecial != nil {
			h.OnSpecial(e)
		}
	case EventSources:
		if h.OnSources != nil {
			h.OnSources(e)
		}
	case EventSummaryChunk:
		if h.OnSummaryChunk != nil {
			h.OnSummaryChunk(e)
		}
	case EventDone:
		if h.OnDone != nil {
			h.OnDone(e)
		}
	case EventError:
		if h.OnError != nil {
			h.OnError(e)
		}
	}
}
