package tui

import "github.com/mizuki-e/tempo/internal/stats"

// Metric selects which of the five tracked metrics a chart displays.
type Metric int

const (
	MetricCommits Metric = iota
	MetricAdditions
	MetricDeletions
	MetricNetLines
	MetricFilesChanged

	metricCount
)

// Next wraps forward through the metric cycle.
func (m Metric) Next() Metric {
	return (m + 1) % metricCount
}

// Prev wraps backward through the metric cycle.
func (m Metric) Prev() Metric {
	return (m + metricCount - 1) % metricCount
}

func (m Metric) Name() string {
	switch m {
	case MetricCommits:
		return "Commits"
	case MetricAdditions:
		return "Additions"
	case MetricDeletions:
		return "Deletions"
	case MetricNetLines:
		return "Net Lines"
	case MetricFilesChanged:
		return "Files Changed"
	default:
		return ""
	}
}

// ValueOf projects the metric's value out of one bucket.
func (m Metric) ValueOf(p stats.PeriodStats) int {
	switch m {
	case MetricCommits:
		return p.Commits
	case MetricAdditions:
		return p.Additions
	case MetricDeletions:
		return p.Deletions
	case MetricNetLines:
		return p.NetLines
	case MetricFilesChanged:
		return p.FilesChanged
	default:
		return 0
	}
}

// AllMetrics lists the metrics in cycle order.
func AllMetrics() [5]Metric {
	return [5]Metric{MetricCommits, MetricAdditions, MetricDeletions, MetricNetLines, MetricFilesChanged}
}
