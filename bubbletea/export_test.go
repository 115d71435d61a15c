package bubbletea

import "github.com/econstats/econstats"

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// StatusLine exports statusLine for testing.
func StatusLine(m Model) string {
	return m.statusLine()
}

// StripHTML exports stripHTML for testing.
func StripHTML(src string) string {
	return stripHTML(src)
}

// TruncateLine exports truncateLine for testing.
func TruncateLine(s string, width int) string {
	return truncateLine(s, width)
}

// SparkRow exports sparkRow for testing.
func SparkRow(values []float64, width int) ([]rune, []int) {
	return sparkRow(values, width)
}

// FormatValue exports formatValue for testing.
func FormatValue(v float64) string {
	return formatValue(v)
}

// FormatYoY exports formatYoY for testing.
func FormatYoY(value float64, typ econstats.YoYType) string {
	return formatYoY(value, typ)
}

// InRecession exports inRecession for testing.
func InRecession(date string, recessions []econstats.Recession) bool {
	return inRecession(date, recessions)
}

// NewSummaryViewForTest exports newSummaryView for testing.
func NewSummaryViewForTest(theme econstats.Theme) *summaryView {
	return newSummaryView(theme)
}

// SetSummaryText exports summaryView.SetText for testing.
func SetSummaryText(v *summaryView, raw string) {
	v.SetText(raw)
}

// SummaryViewRender exports summaryView.View for testing.
func SummaryViewRender(v *summaryView, width int) string {
	return v.View(width)
}

// FinalizedRaw exports the finalized prefix of a summaryView for testing.
func FinalizedRaw(v *summaryView) string {
	return v.finalizedRaw
}
