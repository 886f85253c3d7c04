package output

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mizuki-e/tempo/internal/stats"
)

// HTML renders the snapshot as a self-contained echarts report page:
// commits and files changed as lines, additions/deletions as grouped bars.
func HTML(snapshot *stats.Snapshot, w io.Writer) error {
	labels := make([]string, len(snapshot.Result.Stats))
	commits := make([]opts.LineData, len(snapshot.Result.Stats))
	files := make([]opts.LineData, len(snapshot.Result.Stats))
	additions := make([]opts.BarData, len(snapshot.Result.Stats))
	deletions := make([]opts.BarData, len(snapshot.Result.Stats))

	for i, p := range snapshot.Result.Stats {
		labels[i] = p.Label
		commits[i] = opts.LineData{Value: p.Commits}
		files[i] = opts.LineData{Value: p.FilesChanged}
		additions[i] = opts.BarData{Value: p.Additions}
		deletions[i] = opts.BarData{Value: -p.Deletions}
	}

	activityLine := charts.NewLine()
	activityLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    snapshot.Result.Repository,
			Subtitle: "Commits and files changed per " + periodNoun(snapshot.Result.Period),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	activityLine.SetXAxis(labels).
		AddSeries("Commits", commits).
		AddSeries("Files changed", files)

	churnBar := charts.NewBar()
	churnBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Line churn",
			Subtitle: "Additions above the axis, deletions below",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	churnBar.SetXAxis(labels).
		AddSeries("Additions", additions).
		AddSeries("Deletions", deletions)

	weekdayLabels := stats.WeekdayLabels()
	weekdayData := make([]opts.BarData, len(weekdayLabels))
	for i := range weekdayLabels {
		weekdayData[i] = opts.BarData{Value: snapshot.Activity.Weekday[i]}
	}

	weekdayBar := charts.NewBar()
	weekdayBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Commits by weekday"}),
	)
	weekdayBar.SetXAxis(weekdayLabels[:]).AddSeries("Commits", weekdayData)

	page := components.NewPage()
	page.AddCharts(activityLine, churnBar, weekdayBar)
	return page.Render(w)
}

func periodNoun(p stats.Period) string {
	switch p {
	case stats.Weekly:
		return "week"
	case stats.Monthly:
		return "month"
	case stats.Yearly:
		return "year"
	default:
		return "day"
	}
}
