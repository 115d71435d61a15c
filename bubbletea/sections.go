package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/econstats/econstats"
	"github.com/rivo/uniseg"
)

// renderQuery echoes the submitted query.
func renderQuery(query string, st Styles, width int) string {
	if query == "" {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Render(st.Query.Render("> ") + query)
}

// renderTemporal shows the backend's note about the resolved time range.
func renderTemporal(text string, st Styles, width int) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Render(st.Muted.Italic(true).Render(text))
}

// renderSources lists data sources with their series.
func renderSources(sources []econstats.SourceInfo, st Styles, width int) string {
	if len(sources) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		part := s.Name
		if len(s.Series) > 0 {
			part += " (" + strings.Join(s.Series, ", ") + ")"
		}
		if s.URL != "" {
			part += " <" + s.URL + ">"
		}
		parts = append(parts, part)
	}
	return lipgloss.NewStyle().Width(width).Render(st.Muted.Render("Sources: " + strings.Join(parts, " · ")))
}

// renderSuggestions lists follow-up queries. The first one is the Tab
// completion target, so it gets the accent.
func renderSuggestions(suggestions []string, st Styles, width int) string {
	if len(suggestions) == 0 {
		return ""
	}
	parts := make([]string, len(suggestions))
	for i, s := range suggestions {
		if i == 0 {
			parts[i] = st.Accent.Render(s)
		} else {
			parts[i] = st.Muted.Render(s)
		}
	}
	return lipgloss.NewStyle().Width(width).Render(st.Muted.Render("Related: ") + strings.Join(parts, st.Muted.Render(" · ")))
}

// renderError shows the terminal failure message.
func renderError(message string, st Styles, width int) string {
	if message == "" {
		message = "Search failed."
	}
	return lipgloss.NewStyle().Width(width).Render(st.Error.Render("Error: " + message))
}

// truncateLine cuts s to the given display width, grapheme by grapheme,
// ending the cut with an ellipsis. Callers truncate before styling.
func truncateLine(s string, width int) string {
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	w := 0
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		var cw int
		cluster, rest, cw, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w+cw > width-1 {
			break
		}
		b.WriteString(cluster)
		w += cw
	}
	return b.String() + "…"
}
