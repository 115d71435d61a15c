package econstats

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Query    int // Submitted query accent
	Positive int // Upward/improving changes
	Negative int // Downward/worsening changes
	Error    int // Error messages
	Success  int // Done indicators
	Muted    int // Status bar, placeholders, axes
	Accent   int // Headings, links, suggestions
	Border   int // Section borders
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Query:    4,
		Positive: 2,
		Negative: 1,
		Error:    1,
		Success:  2,
		Muted:    8,
		Accent:   5,
		Border:   8,
	}
}
