package bubbletea

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/econstats/econstats"
	"github.com/mattn/go-runewidth"
)

// maxTraceLabel caps the name column on combined charts.
const maxTraceLabel = 16

// renderCharts renders each chart as a header line, a sparkline and
// optional bullets.
func renderCharts(charts []econstats.Chart, st Styles, width int) string {
	if len(charts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(charts))
	for _, c := range charts {
		parts = append(parts, renderChart(c, st, width))
	}
	return strings.Join(parts, "\n\n")
}

func renderChart(c econstats.Chart, st Styles, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Render(chartHeader(c, st)))

	if c.IsCombined && len(c.Traces) > 0 {
		label := traceLabelWidth(c.Traces)
		for _, tr := range c.Traces {
			b.WriteString("\n")
			b.WriteString(st.Muted.Render(runewidth.FillRight(runewidth.Truncate(tr.Name, label, "…"), label)))
			b.WriteString(" ")
			b.WriteString(st.Spark.Render(Sparkline(tr.Values, width-label-1)))
		}
	} else if len(c.Values) > 0 {
		runes, starts := sparkRow(c.Values, width)
		b.WriteString("\n")
		b.WriteString(styleSpark(runes, starts, c.Dates, c.Recessions, st))
		if axis := axisLine(c.Dates, st, len(runes)); axis != "" {
			b.WriteString("\n")
			b.WriteString(axis)
		}
	}

	for _, bullet := range c.Bullets {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(st.Muted.Render("• " + bullet)))
	}
	return b.String()
}

// chartHeader joins name, latest value, date, YoY change and the SA
// marker on one line.
func chartHeader(c econstats.Chart, st Styles) string {
	parts := []string{st.Title.Render(c.Name)}
	if c.Latest != nil {
		parts = append(parts, st.Value.Render(formatValue(*c.Latest)+unitSuffix(c.Unit)))
	}
	if c.LatestDate != "" {
		parts = append(parts, st.Muted.Render(c.LatestDate))
	}
	if c.YoYChange != nil {
		parts = append(parts, styleChange(*c.YoYChange, st).Render(formatYoY(*c.YoYChange, c.YoYType)))
	}
	if c.SeasonallyAdjusted {
		parts = append(parts, st.Muted.Render("SA"))
	}
	return strings.Join(parts, "  ")
}

// styleSpark colors sparkline columns, dimming those that fall inside a
// recession band.
func styleSpark(runes []rune, starts []int, dates []string, recessions []econstats.Recession, st Styles) string {
	if len(runes) == 0 {
		return ""
	}
	if len(recessions) == 0 || len(dates) == 0 {
		return st.Spark.Render(string(runes))
	}
	var b strings.Builder
	for i, r := range runes {
		dim := false
		if starts[i] < len(dates) {
			dim = inRecession(dates[starts[i]], recessions)
		}
		if dim {
			b.WriteString(st.SparkDim.Render(string(r)))
		} else {
			b.WriteString(st.Spark.Render(string(r)))
		}
	}
	return b.String()
}

// inRecession relies on ISO dates comparing lexicographically. An open
// recession has an empty end date.
func inRecession(date string, recessions []econstats.Recession) bool {
	for _, r := range recessions {
		if date >= r.Start && (r.End == "" || date <= r.End) {
			return true
		}
	}
	return false
}

// axisLine puts the first and last dates under the sparkline's ends.
func axisLine(dates []string, st Styles, cols int) string {
	if len(dates) == 0 {
		return ""
	}
	first, last := dates[0], dates[len(dates)-1]
	gap := cols - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		return st.Muted.Render(first)
	}
	return st.Muted.Render(first + strings.Repeat(" ", gap) + last)
}

func traceLabelWidth(traces []econstats.Trace) int {
	w := 0
	for _, tr := range traces {
		if lw := runewidth.StringWidth(tr.Name); lw > w {
			w = lw
		}
	}
	if w > maxTraceLabel {
		w = maxTraceLabel
	}
	return w
}

// renderMetrics renders the metric strip: label, value and change per
// metric.
func renderMetrics(metrics []econstats.Metric, st Styles, width int) string {
	if len(metrics) == 0 {
		return ""
	}
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		s := st.Muted.Render(m.Label) + " " + st.Value.Render(formatValue(m.Value)+unitSuffix(m.Unit))
		if m.Change != nil {
			sign := ""
			if *m.Change > 0 {
				sign = "+"
			}
			s += " " + styleChange(*m.Change, st).Render(sign+formatValue(*m.Change))
		}
		parts = append(parts, s)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, st.Muted.Render("  ·  ")))
}

// formatValue renders a numeric value compactly: grouped integers for
// large magnitudes, trimmed decimals otherwise.
func formatValue(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
	case av >= 100:
		return trimZeros(strconv.FormatFloat(v, 'f', 1, 64))
	default:
		return trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	}
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatYoY renders a year-over-year change with its unit.
func formatYoY(change float64, t econstats.YoYType) string {
	sign := ""
	if change > 0 {
		sign = "+"
	}
	switch t {
	case econstats.YoYPoints:
		return fmt.Sprintf("%s%spp YoY", sign, formatValue(change))
	case econstats.YoYJobs:
		return fmt.Sprintf("%s%s jobs YoY", sign, formatValue(change))
	default:
		return fmt.Sprintf("%s%s%% YoY", sign, formatValue(change))
	}
}

func unitSuffix(unit string) string {
	switch unit {
	case "":
		return ""
	case "%":
		return "%"
	default:
		return " " + unit
	}
}

func styleChange(change float64, st Styles) lipgloss.Style {
	switch {
	case change > 0:
		return st.Positive
	case change < 0:
		return st.Negative
	default:
		return st.Muted
	}
}
