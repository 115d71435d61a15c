package bubbletea

import (
	"strings"

	"github.com/econstats/econstats"
	"github.com/econstats/econstats/markdown"
)

// summaryView renders the streamed summary with markdown formatting.
// Paragraphs ending before the last blank line are stable while the
// stream appends, so they are rendered once per width and cached; only
// the trailing unfinalized text is re-rendered on each snapshot.
type summaryView struct {
	raw   string
	theme econstats.Theme

	// finalizedRaw is the stable prefix ending at the last paragraph
	// break seen so far.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

func newSummaryView(theme econstats.Theme) *summaryView {
	return &summaryView{
		theme:            theme,
		finalizedByWidth: make(map[int]string),
	}
}

// SetText replaces the view's source text with the latest snapshot. A
// snapshot that no longer extends the cached prefix, as happens when a
// fallback result replaces a partial stream or a new query starts, drops
// the cache entirely.
func (v *summaryView) SetText(raw string) {
	if raw == v.raw {
		return
	}
	if !strings.HasPrefix(raw, v.finalizedRaw) {
		v.finalizedRaw = ""
		clear(v.finalizedByWidth)
	}
	v.raw = raw
	v.promoteFinalized()
}

func (v *summaryView) View(width int) string {
	finalized := v.renderFinalized(width)
	trailing := v.trailingRaw()
	if trailing == "" {
		return finalized
	}
	trailingRendered := markdown.Render(trailing, width, v.theme)
	if strings.TrimSpace(trailingRendered) == "" {
		return finalized
	}
	if finalized == "" {
		return trailingRendered
	}
	// Join independently rendered halves with a single paragraph break
	// so the seam matches a full-document render.
	return strings.TrimRight(finalized, "\n") + "\n\n" + strings.TrimLeft(trailingRendered, "\n")
}

func (v *summaryView) promoteFinalized() {
	idx := strings.LastIndex(v.raw, "\n\n")
	if idx <= 0 {
		return
	}
	candidate := v.raw[:idx]
	if candidate != v.finalizedRaw {
		v.finalizedRaw = candidate
		// The width cache holds renders of the old prefix.
		clear(v.finalizedByWidth)
	}
}

func (v *summaryView) renderFinalized(width int) string {
	if width <= 0 || v.finalizedRaw == "" {
		return ""
	}
	if cached, ok := v.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(v.finalizedRaw, width, v.theme)
	v.finalizedByWidth[width] = rendered
	return rendered
}

func (v *summaryView) trailingRaw() string {
	if v.finalizedRaw == "" {
		return v.raw
	}
	return strings.TrimPrefix(v.raw, v.finalizedRaw+"\n\n")
}
