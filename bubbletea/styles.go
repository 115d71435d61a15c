package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/econstats/econstats"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Query    lipgloss.Style // submitted query echo
	Title    lipgloss.Style // chart names, fragment headers
	Value    lipgloss.Style // headline figures
	Positive lipgloss.Style // upward changes
	Negative lipgloss.Style // downward changes
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Spark    lipgloss.Style // sparkline body
	SparkDim lipgloss.Style // recession-shaded sparkline columns
}

// NewStyles creates Styles from a Theme.
func NewStyles(t econstats.Theme) Styles {
	return Styles{
		Query:    lipgloss.NewStyle().Foreground(ansiColor(t.Query)).Bold(true),
		Title:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Value:    lipgloss.NewStyle().Bold(true),
		Positive: lipgloss.NewStyle().Foreground(ansiColor(t.Positive)),
		Negative: lipgloss.NewStyle().Foreground(ansiColor(t.Negative)),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Spark:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)),
		SparkDim: lipgloss.NewStyle().Foreground(ansiColor(t.Border)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
