package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Fixed rows around the scrollable body: header box, column headers and
// the footer. The clamp uses these, so the renderers below must not grow
// taller without bumping them.
const (
	chromeRows   = 9
	activityRows = 4
)

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return "\n  " + m.spinner.View() + " Collecting commit statistics...\n"
	case stateFailed:
		return "\n  " + ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
			HelpStyle.Render("  press any key to exit") + "\n"
	case stateExiting:
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.columnHeaderView())
	b.WriteString("\n")
	b.WriteString(m.bodyView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	r := m.snapshot.Result
	title := TitleStyle.Render(r.Repository)
	sub := SubtitleStyle.Render(fmt.Sprintf("%s  %s → %s",
		r.Period, r.From.Format("2006-01-02"), r.To.Format("2006-01-02")))
	return HeaderBoxStyle.Render(title + "  " + sub) + "\n"
}

func (m Model) columnHeaderView() string {
	if m.mode == ViewSingle {
		return LabelStyle.Render("  " + m.metric.Name())
	}
	cols := make([]string, 0, 6)
	cols = append(cols, padRight("Period", m.labelWidth()))
	for _, metric := range AllMetrics() {
		cols = append(cols, padLeft(metric.Name(), splitColWidth))
	}
	return LabelStyle.Render("  " + strings.Join(cols, " "))
}

func (m Model) bodyView() string {
	var rows []string
	if m.mode == ViewSingle {
		rows = m.singleRows()
	} else {
		rows = m.splitRows()
		rows = append(rows, m.activityLines()...)
	}

	lo := min(m.scroll, len(rows))
	hi := min(lo+m.viewportRows(), len(rows))
	return strings.Join(rows[lo:hi], "\n")
}

func (m Model) footerView() string {
	t := m.snapshot.Result.Total
	totals := fmt.Sprintf("Total: %s commits  %s  %s  net %s  %s files",
		humanize.Comma(int64(t.Commits)),
		AddStyle.Render("+"+humanize.Comma(int64(t.Additions))),
		DelStyle.Render("-"+humanize.Comma(int64(t.Deletions))),
		humanize.Comma(int64(t.NetLines)),
		humanize.Comma(int64(t.FilesChanged)))

	help := "m view"
	if m.mode == ViewSingle {
		help += " • tab/←→ metric"
	}
	help += " • j/k scroll • q quit"
	if n := len(m.repoErrs); n > 0 {
		help += ErrorStyle.Render(fmt.Sprintf("  (%d repositories failed)", n))
	}

	return "\n" + LabelStyle.Render("  "+totals) + "\n" + HelpStyle.Render("  "+help)
}
