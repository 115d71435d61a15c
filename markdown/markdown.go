// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
//
// It targets the prose the EconStats backend produces: paragraphs with
// bold figures, headed sections, bullet lists and the occasional inline
// series ID or source link. Code blocks are tolerated but unstyled.
package markdown

import "github.com/econstats/econstats"

// Render parses markdown source and returns ANSI-styled terminal output
// word-wrapped to width.
func Render(source string, width int, theme econstats.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
