package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/econstats/econstats"
	"golang.org/x/net/html"
)

// fragmentOrder fixes the display order of special-query fragments.
var fragmentOrder = []struct {
	title string
	get   func(econstats.Fragments) *string
}{
	{"Fed SEP projections", func(f econstats.Fragments) *string { return f.FedSEP }},
	{"Recession indicators", func(f econstats.Fragments) *string { return f.Recession }},
	{"Market odds", func(f econstats.Fragments) *string { return f.Polymarket }},
}

// renderFragments renders the HTML fragments special queries return,
// reduced to plain text under a titled header.
func renderFragments(f econstats.Fragments, st Styles, width int) string {
	if f.Empty() {
		return ""
	}
	var parts []string
	for _, fr := range fragmentOrder {
		p := fr.get(f)
		if p == nil || strings.TrimSpace(*p) == "" {
			continue
		}
		text := stripHTML(*p)
		if text == "" {
			continue
		}
		parts = append(parts, st.Title.Render(fr.title)+"\n"+lipgloss.NewStyle().Width(width).Render(text))
	}
	return strings.Join(parts, "\n\n")
}

// blockTags end a line when their element closes.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "table": true, "tr": true,
	"li": true, "ul": true, "ol": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true,
}

// stripHTML reduces an HTML fragment to plain text. Tags are dropped,
// block elements become line breaks and adjacent table cells stay
// separated.
func stripHTML(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return strings.TrimSpace(src)
	}
	var b strings.Builder
	flatten(doc, &b)
	return collapseLines(b.String())
}

func flatten(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, b)
	}
	if n.Type == html.ElementNode {
		switch {
		case n.Data == "td" || n.Data == "th":
			b.WriteString("  ")
		case blockTags[n.Data]:
			b.WriteString("\n")
		}
	}
}

// collapseLines trims each line's edges, squeezes inner whitespace and
// drops runs of blank lines.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true // swallow leading blanks
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
