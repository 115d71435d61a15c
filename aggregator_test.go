package econstats_test

import (
	"testing"

	"github.com/econstats/econstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAggregator_New(t *testing.T) {
	t.Parallel()

	agg := econstats.NewAggregator("inflation since 2020")
	snap := agg.Snapshot()

	assert.Equal(t, "inflation since 2020", snap.Query)
	assert.Equal(t, econstats.StreamStateConnecting, snap.State)
	assert.False(t, snap.Renderable())
	assert.True(t, snap.Empty())
}

func TestAggregator_Apply(t *testing.T) {
	t.Parallel()

	t.Run("charts enter streaming and set payload", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("cpi")
		snap := agg.Apply(econstats.EventCharts{
			Charts:          []econstats.Chart{{SeriesID: "CPIAUCSL", Name: "Consumer Price Index"}},
			Metrics:         []econstats.Metric{{SeriesID: "CPIAUCSL", Label: "CPI YoY", Value: 3.2, Unit: "%"}},
			TemporalContext: "Showing data from 2020 to present.",
		})

		assert.Equal(t, econstats.StreamStateStreaming, snap.State)
		assert.True(t, snap.Renderable())
		require.Len(t, snap.Charts, 1)
		assert.Equal(t, "CPIAUCSL", snap.Charts[0].SeriesID)
		require.Len(t, snap.Metrics, 1)
		assert.Equal(t, "Showing data from 2020 to present.", snap.TemporalContext)
	})

	t.Run("summary chunks append in order without separators", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("cpi")
		agg.Apply(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "CPIAUCSL"}}})
		agg.Apply(econstats.EventSummaryChunk{Text: "A"})
		snap := agg.Apply(econstats.EventSummaryChunk{Text: "B"})

		assert.Equal(t, "AB", snap.Summary)
	})

	t.Run("second charts event replaces wholesale", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("rates")
		agg.Apply(econstats.EventCharts{
			Charts:          []econstats.Chart{{SeriesID: "DGS10"}, {SeriesID: "DGS2"}},
			Metrics:         []econstats.Metric{{SeriesID: "DGS10"}},
			TemporalContext: "old",
		})
		snap := agg.Apply(econstats.EventCharts{
			Charts:          []econstats.Chart{{SeriesID: "FEDFUNDS"}},
			TemporalContext: "new",
		})

		require.Len(t, snap.Charts, 1)
		assert.Equal(t, "FEDFUNDS", snap.Charts[0].SeriesID)
		assert.Empty(t, snap.Metrics)
		assert.Equal(t, "new", snap.TemporalContext)
		assert.Equal(t, econstats.StreamStateStreaming, snap.State)
	})

	t.Run("sources replace wholesale", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("jobs")
		agg.Apply(econstats.EventSources{Sources: []econstats.SourceInfo{{Name: "FRED"}}})
		snap := agg.Apply(econstats.EventSources{Sources: []econstats.SourceInfo{{Name: "BLS"}}})

		require.Len(t, snap.Sources, 1)
		assert.Equal(t, "BLS", snap.Sources[0].Name)
	})

	t.Run("special fragments merge", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("fed")
		agg.Apply(econstats.EventSpecial{Fragments: econstats.Fragments{
			FedSEP: ptr("<table>SEP</table>"),
		}})
		snap := agg.Apply(econstats.EventSpecial{Fragments: econstats.Fragments{
			Recession: ptr("<div>scorecard</div>"),
		}})

		require.NotNil(t, snap.Fragments.FedSEP)
		assert.Equal(t, "<table>SEP</table>", *snap.Fragments.FedSEP)
		require.NotNil(t, snap.Fragments.Recession)
		assert.Equal(t, "<div>scorecard</div>", *snap.Fragments.Recession)
		assert.Nil(t, snap.Fragments.Polymarket)
	})

	t.Run("special fragment overwrite keeps others", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("fed")
		agg.Apply(econstats.EventSpecial{Fragments: econstats.Fragments{
			FedSEP:    ptr("v1"),
			Recession: ptr("r1"),
		}})
		snap := agg.Apply(econstats.EventSpecial{Fragments: econstats.Fragments{
			FedSEP: ptr("v2"),
		}})

		require.NotNil(t, snap.Fragments.FedSEP)
		assert.Equal(t, "v2", *snap.Fragments.FedSEP)
		require.NotNil(t, snap.Fragments.Recession)
		assert.Equal(t, "r1", *snap.Fragments.Recession)
	})

	t.Run("done sets suggestions and terminal state", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("gdp")
		snap := agg.Apply(econstats.EventDone{Suggestions: []string{"gdp per capita", "real gdp growth"}})

		assert.Equal(t, econstats.StreamStateDone, snap.State)
		assert.Equal(t, []string{"gdp per capita", "real gdp growth"}, snap.Suggestions)
	})

	t.Run("error after chunks keeps partial summary, trailing done ignored", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("cpi")
		agg.Apply(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "CPIAUCSL"}}})
		agg.Apply(econstats.EventSummaryChunk{Text: "Inflation "})
		agg.Apply(econstats.EventSummaryChunk{Text: "cooled."})
		agg.Apply(econstats.EventError{Message: "summary backend unavailable"})
		snap := agg.Apply(econstats.EventDone{Suggestions: []string{"ignored"}})

		assert.Equal(t, econstats.StreamStateFailed, snap.State)
		assert.Equal(t, "summary backend unavailable", snap.ErrorMessage)
		assert.Equal(t, "Inflation cooled.", snap.Summary)
		require.Len(t, snap.Charts, 1)
		assert.Nil(t, snap.Suggestions)
	})

	t.Run("events after done are ignored", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("gdp")
		agg.Apply(econstats.EventDone{})
		snap := agg.Apply(econstats.EventSummaryChunk{Text: "late"})

		assert.Equal(t, econstats.StreamStateDone, snap.State)
		assert.Empty(t, snap.Summary)
	})
}

func TestAggregator_RenderSignalFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	events := []econstats.Event{
		econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "UNRATE"}}},
		econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "PAYEMS"}}},
		econstats.EventSources{Sources: []econstats.SourceInfo{{Name: "FRED"}}},
		econstats.EventSummaryChunk{Text: "Unemployment held steady."},
		econstats.EventDone{},
	}

	agg := econstats.NewAggregator("unemployment")
	fires := 0
	prev := agg.Snapshot().Renderable()
	for _, evt := range events {
		snap := agg.Apply(evt)
		if !prev && snap.Renderable() {
			fires++
		}
		prev = snap.Renderable()
	}

	assert.Equal(t, 1, fires)
}

func TestAggregator_ReplaceWith(t *testing.T) {
	t.Parallel()

	t.Run("supersedes partial state wholesale", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("housing")
		agg.Apply(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "BROKEN"}}})
		agg.Apply(econstats.EventSummaryChunk{Text: "partial"})

		snap := agg.ReplaceWith(econstats.Result{
			Summary:     "Home prices rose 4% in 2025.",
			Charts:      []econstats.Chart{{SeriesID: "CSUSHPINSA"}},
			Suggestions: []string{"mortgage rates"},
		})

		assert.Equal(t, econstats.StreamStateDone, snap.State)
		assert.Equal(t, "housing", snap.Query)
		assert.Equal(t, "Home prices rose 4% in 2025.", snap.Summary)
		require.Len(t, snap.Charts, 1)
		assert.Equal(t, "CSUSHPINSA", snap.Charts[0].SeriesID)
		assert.Empty(t, snap.ErrorMessage)
	})

	t.Run("no-op after terminal state", func(t *testing.T) {
		t.Parallel()

		agg := econstats.NewAggregator("housing")
		agg.Apply(econstats.EventError{Message: "nope"})
		snap := agg.ReplaceWith(econstats.Result{Summary: "late"})

		assert.Equal(t, econstats.StreamStateFailed, snap.State)
		assert.Empty(t, snap.Summary)
	})
}

func TestAggregator_Fail(t *testing.T) {
	t.Parallel()

	agg := econstats.NewAggregator("oil prices")
	snap := agg.Fail("Search is temporarily unavailable.")

	assert.Equal(t, econstats.StreamStateFailed, snap.State)
	assert.Equal(t, "Search is temporarily unavailable.", snap.ErrorMessage)

	// A second failure does not overwrite the first.
	snap = agg.Fail("different message")
	assert.Equal(t, "Search is temporarily unavailable.", snap.ErrorMessage)
}

func TestAggregator_SnapshotsAreStable(t *testing.T) {
	t.Parallel()

	agg := econstats.NewAggregator("cpi")
	agg.Apply(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "CPIAUCSL"}}})
	first := agg.Apply(econstats.EventSummaryChunk{Text: "A"})

	agg.Apply(econstats.EventSummaryChunk{Text: "B"})
	agg.Apply(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "PCEPI"}}})

	assert.Equal(t, "A", first.Summary)
	require.Len(t, first.Charts, 1)
	assert.Equal(t, "CPIAUCSL", first.Charts[0].SeriesID)
}

func TestAggregator_Handlers(t *testing.T) {
	t.Parallel()

	agg := econstats.NewAggregator("fed")
	h := agg.Handlers()

	h.Dispatch(econstats.EventCharts{Charts: []econstats.Chart{{SeriesID: "FEDFUNDS"}}})
	h.Dispatch(econstats.EventSpecial{Fragments: econstats.Fragments{FedSEP: ptr("<table/>")}})
	h.Dispatch(econstats.EventSources{Sources: []econstats.SourceInfo{{Name: "FRED"}}})
	h.Dispatch(econstats.EventSummaryChunk{Text: "The Fed held rates."})
	h.Dispatch(econstats.EventDone{Suggestions: []string{"dot plot"}})

	snap := agg.Snapshot()
	assert.Equal(t, econstats.StreamStateDone, snap.State)
	require.Len(t, snap.Charts, 1)
	assert.NotNil(t, snap.Fragments.FedSEP)
	require.Len(t, snap.Sources, 1)
	assert.Equal(t, "The Fed held rates.", snap.Summary)
	assert.Equal(t, []string{"dot plot"}, snap.Suggestions)
}
