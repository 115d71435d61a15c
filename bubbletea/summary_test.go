package bubbletea_test

import (
	"testing"

	"github.com/econstats/econstats"
	bt "github.com/econstats/econstats/bubbletea"
	"github.com/econstats/econstats/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryView(t *testing.T) {
	t.Parallel()

	theme := econstats.DefaultTheme()

	t.Run("renders appended text", func(t *testing.T) {
		t.Parallel()

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, "Inflation ")
		bt.SetSummaryText(v, "Inflation cooled in April.")

		got := bt.SummaryViewRender(v, 80)
		assert.Contains(t, got, "Inflation cooled in April.")
	})

	t.Run("paragraphs before the last break are finalized", func(t *testing.T) {
		t.Parallel()

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, "Para one.")
		assert.Empty(t, bt.FinalizedRaw(v))

		bt.SetSummaryText(v, "Para one.\n\nPara two")
		assert.Equal(t, "Para one.", bt.FinalizedRaw(v))

		bt.SetSummaryText(v, "Para one.\n\nPara two.\n\nPara three")
		assert.Equal(t, "Para one.\n\nPara two.", bt.FinalizedRaw(v))
	})

	t.Run("seam matches a full document render", func(t *testing.T) {
		t.Parallel()

		full := "CPI rose 0.3 percent in April.\n\nShelter remained the largest contributor.\n\nEnergy prices declined again"

		v := bt.NewSummaryViewForTest(theme)
		// Feed the text the way a stream delivers it: cumulative prefixes.
		for i := 10; i <= len(full); i += 10 {
			bt.SetSummaryText(v, full[:i])
		}
		bt.SetSummaryText(v, full)

		want := markdown.Render(full, 80, theme)
		assert.Equal(t, want, bt.SummaryViewRender(v, 80))
	})

	t.Run("non-extension replacement resets the cache", func(t *testing.T) {
		t.Parallel()

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, "Streamed para.\n\nAnother streamed para.\n\ntrailing")
		require.NotEmpty(t, bt.FinalizedRaw(v))

		// A fallback result replaces the summary wholesale.
		replacement := "Entirely new summary from the non-streaming endpoint."
		bt.SetSummaryText(v, replacement)

		assert.Empty(t, bt.FinalizedRaw(v))
		assert.Equal(t, markdown.Render(replacement, 80, theme), bt.SummaryViewRender(v, 80))
	})

	t.Run("width change re-renders the finalized prefix", func(t *testing.T) {
		t.Parallel()

		full := "The unemployment rate held at three point nine percent for the third consecutive month.\n\nPayroll growth slowed"

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, full)

		assert.Equal(t, markdown.Render(full, 80, theme), bt.SummaryViewRender(v, 80))
		assert.Equal(t, markdown.Render(full, 30, theme), bt.SummaryViewRender(v, 30))
		// Back at the original width, served from cache.
		assert.Equal(t, markdown.Render(full, 80, theme), bt.SummaryViewRender(v, 80))
	})

	t.Run("whitespace-only trailing renders nothing extra", func(t *testing.T) {
		t.Parallel()

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, "Complete paragraph.\n\n  ")

		assert.Equal(t, markdown.Render("Complete paragraph.", 80, theme), bt.SummaryViewRender(v, 80))
	})

	t.Run("same text is a no-op", func(t *testing.T) {
		t.Parallel()

		v := bt.NewSummaryViewForTest(theme)
		bt.SetSummaryText(v, "Para.\n\ntrail")
		before := bt.SummaryViewRender(v, 80)
		bt.SetSummaryText(v, "Para.\n\ntrail")
		assert.Equal(t, before, bt.SummaryViewRender(v, 80))
	})
}
