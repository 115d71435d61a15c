package bubbletea_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/econstats/econstats"
	bt "github.com/econstats/econstats/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, search bt.SearchFunc) bt.Model {
	t.Helper()
	session := &econstats.Session{}
	theme := econstats.DefaultTheme()
	m := bt.New(search, session, theme)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, search bt.SearchFunc, width, height int) bt.Model {
	t.Helper()
	session := &econstats.Session{}
	theme := econstats.DefaultTheme()
	m := bt.New(search, session, theme)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// typeInputString types s into the input one rune at a time.
func typeInputString(t *testing.T, ti textinput.Model, s string) textinput.Model {
	t.Helper()
	for _, r := range s {
		ti, _ = ti.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return ti
}

// nopSearch is a search function that streams nothing and succeeds with
// an empty result.
func nopSearch(_ context.Context, _ econstats.SearchRequest, _ func(econstats.Result)) (econstats.Result, error) {
	return econstats.Result{}, nil
}

func fptr(v float64) *float64 { return &v }

// cpiChart returns a small CPI chart for rendering tests.
func cpiChart() econstats.Chart {
	return econstats.Chart{
		SeriesID:           "CPIAUCSL",
		Name:               "Consumer Price Index",
		Unit:               "%",
		Source:             "FRED",
		Dates:              []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01"},
		Values:             []float64{3.1, 3.2, 3.5, 3.4},
		Latest:             fptr(3.4),
		LatestDate:         "Apr 2024",
		YoYChange:          fptr(0.4),
		YoYType:            econstats.YoYPoints,
		SeasonallyAdjusted: true,
	}
}
