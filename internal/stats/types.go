package stats

import (
	"fmt"
	"time"
)

// Period selects the aggregation granularity for a series.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid period: %q (use daily, weekly, monthly or yearly)", s)
	}
}

// DateRange is an inclusive range of calendar dates. From and To are
// normalized to UTC midnight and only their calendar components matter.
type DateRange struct {
	From time.Time
	To   time.Time
}

// LastNDays returns the range covering today and the n days before it,
// where "today" is evaluated in the given zone.
func LastNDays(n int, zone Zone) DateRange {
	to := zone.Today()
	return DateRange{From: to.AddDate(0, 0, -n), To: to}
}

func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: midnightUTC(from), To: midnightUTC(to)}
}

func (r DateRange) Contains(date time.Time) bool {
	d := midnightUTC(date)
	return !d.Before(r.From) && !d.After(r.To)
}

// EachDay calls fn for every date in the range, ascending.
func (r DateRange) EachDay(fn func(date time.Time)) {
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

func (r DateRange) Days() int {
	return int(r.To.Sub(r.From)/(24*time.Hour)) + 1
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PeriodStats accumulates the five tracked metrics for one bucket.
// Date is the period start in the resolved timezone's calendar, stored as
// UTC midnight; it is the bucket's ordering key.
type PeriodStats struct {
	Label        string
	Date         time.Time
	Commits      int
	Additions    int
	Deletions    int
	NetLines     int
	FilesChanged int
}

func NewPeriodStats(date time.Time) PeriodStats {
	return PeriodStats{Label: date.Format("2006-01-02"), Date: date}
}

func WithLabel(date time.Time, label string) PeriodStats {
	return PeriodStats{Label: label, Date: date}
}

// Merge folds another bucket into this one.
func (p *PeriodStats) Merge(other PeriodStats) {
	p.Commits += other.Commits
	p.Additions += other.Additions
	p.Deletions += other.Deletions
	p.FilesChanged += other.FilesChanged
	p.NetLines = p.Additions - p.Deletions
}

func (p *PeriodStats) UpdateNetLines() {
	p.NetLines = p.Additions - p.Deletions
}

// TotalStats sums a series across all buckets.
type TotalStats struct {
	Commits      int
	Additions    int
	Deletions    int
	NetLines     int
	FilesChanged int
}

func TotalsOf(periods []PeriodStats) TotalStats {
	var t TotalStats
	for _, p := range periods {
		t.Commits += p.Commits
		t.Additions += p.Additions
		t.Deletions += p.Deletions
		t.FilesChanged += p.FilesChanged
	}
	t.NetLines = t.Additions - t.Deletions
	return t
}

// AnalysisResult is one complete, gap-filled, ascending series plus totals.
type AnalysisResult struct {
	Repository string
	Period     Period
	From       time.Time
	To         time.Time
	Stats      []PeriodStats
	Total      TotalStats
}

func NewAnalysisResult(repository string, period Period, rng DateRange, periods []PeriodStats) AnalysisResult {
	return AnalysisResult{
		Repository: repository,
		Period:     period,
		From:       rng.From,
		To:         rng.To,
		Stats:      periods,
		Total:      TotalsOf(periods),
	}
}

// ActivityStats counts commits per weekday (Mon..Sun) and per hour (0..23)
// in the resolved timezone.
type ActivityStats struct {
	Weekday [7]int
	Hourly  [24]int
}

func (a *ActivityStats) Add(other ActivityStats) {
	for i := range a.Weekday {
		a.Weekday[i] += other.Weekday[i]
	}
	for i := range a.Hourly {
		a.Hourly[i] += other.Hourly[i]
	}
}

func WeekdayLabels() [7]string {
	return [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}
