package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mizuki-e/tempo/internal/stats"
)

const (
	splitColWidth = 10
	minBarWidth   = 10
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// singleRows renders one horizontal bar per bucket for the active metric.
// Net lines diverge: positive bars green, negative red.
func (m Model) singleRows() []string {
	periods := m.snapshot.Result.Stats
	labelW := m.labelWidth()

	maxAbs := 0
	for _, p := range periods {
		maxAbs = max(maxAbs, abs(m.metric.ValueOf(p)))
	}

	barW := max(minBarWidth, m.width-labelW-16)
	rows := make([]string, len(periods))
	for i, p := range periods {
		v := m.metric.ValueOf(p)
		rows[i] = fmt.Sprintf("  %s %s %s",
			DimStyle.Render(padRight(p.Label, labelW)),
			bar(v, maxAbs, barW, m.barStyle(v)),
			humanize.Comma(int64(v)))
	}
	return rows
}

// splitRows renders every metric as an aligned column, one row per bucket.
func (m Model) splitRows() []string {
	periods := m.snapshot.Result.Stats
	labelW := m.labelWidth()

	rows := make([]string, len(periods))
	for i, p := range periods {
		cols := make([]string, 0, 6)
		cols = append(cols, DimStyle.Render(padRight(p.Label, labelW)))
		for _, metric := range AllMetrics() {
			v := metric.ValueOf(p)
			cell := padLeft(humanize.Comma(int64(v)), splitColWidth)
			switch metric {
			case MetricAdditions:
				cell = AddStyle.Render(cell)
			case MetricDeletions:
				cell = DelStyle.Render(cell)
			}
			cols = append(cols, cell)
		}
		rows[i] = "  " + strings.Join(cols, " ")
	}
	return rows
}

// activityLines renders the weekday and hourly commit distributions as
// sparklines. Always exactly activityRows lines tall.
func (m Model) activityLines() []string {
	a := m.snapshot.Activity

	labels := stats.WeekdayLabels()
	weekday := make([]string, len(labels))
	for i, l := range labels {
		weekday[i] = fmt.Sprintf("%s %c", l, sparkGlyph(a.Weekday[i], maxOf(a.Weekday[:])))
	}

	var hours strings.Builder
	hourMax := maxOf(a.Hourly[:])
	for _, n := range a.Hourly {
		hours.WriteRune(sparkGlyph(n, hourMax))
	}

	return []string{
		"",
		LabelStyle.Render("  Activity"),
		"  " + BarStyle.Render(strings.Join(weekday, "  ")),
		"  " + DimStyle.Render("00h ") + BarStyle.Render(hours.String()) + DimStyle.Render(" 23h"),
	}
}

func (m Model) barStyle(value int) lipgloss.Style {
	switch m.metric {
	case MetricAdditions:
		return AddStyle
	case MetricDeletions:
		return DelStyle
	case MetricNetLines:
		if value < 0 {
			return DelStyle
		}
		return AddStyle
	default:
		return BarStyle
	}
}

func (m Model) labelWidth() int {
	w := 6
	for _, p := range m.snapshot.Result.Stats {
		w = max(w, len(p.Label))
	}
	return w
}

func bar(value, maxAbs, width int, style lipgloss.Style) string {
	if maxAbs == 0 {
		return ""
	}
	n := abs(value) * width / maxAbs
	if n == 0 && value != 0 {
		n = 1
	}
	return style.Render(strings.Repeat("█", n))
}

func sparkGlyph(value, maxValue int) rune {
	if maxValue == 0 || value == 0 {
		return sparkGlyphs[0]
	}
	idx := (value*len(sparkGlyphs) - 1) / maxValue
	return sparkGlyphs[min(idx, len(sparkGlyphs)-1)]
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxOf(vs []int) int {
	m := 0
	for _, v := range vs {
		m = max(m, v)
	}
	return m
}
