package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/mizuki-e/tempo/internal/gitstat"
)

// Collect folds commits into a gap-filled series for the requested range.
// Commit instants are resolved to calendar dates in the given zone. When an
// extension filter is set, a commit's file stats are restricted to matching
// files before folding; a commit that touches no matching file is dropped
// entirely and contributes no commit count.
func Collect(repoLabel string, commits []gitstat.Commit, rng DateRange, period Period, zone Zone, extensions []string) AnalysisResult {
	daily := make(map[time.Time]PeriodStats)

	for _, commit := range commits {
		additions, deletions, filesChanged, ok := filteredStats(commit, extensions)
		if !ok {
			continue
		}

		date := zone.Date(commit.When)
		entry, exists := daily[date]
		if !exists {
			entry = NewPeriodStats(date)
		}
		entry.Commits++
		entry.Additions += additions
		entry.Deletions += deletions
		entry.FilesChanged += filesChanged
		entry.UpdateNetLines()
		daily[date] = entry
	}

	// Every date in the range gets a bucket, commits or not.
	rng.EachDay(func(date time.Time) {
		if _, exists := daily[date]; !exists {
			daily[date] = NewPeriodStats(date)
		}
	})

	ordered := make([]PeriodStats, 0, len(daily))
	for _, p := range daily {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	switch period {
	case Weekly:
		ordered = rollUp(ordered, weekKey)
	case Monthly:
		ordered = rollUp(ordered, monthKey)
	case Yearly:
		ordered = rollUp(ordered, yearKey)
	}

	return NewAnalysisResult(repoLabel, period, rng, ordered)
}

// CollectActivity builds weekday/hour histograms from commit instants,
// resolved in the given zone. The extension filter applies the same
// exclusion rule as Collect.
func CollectActivity(commits []gitstat.Commit, zone Zone, extensions []string) ActivityStats {
	var activity ActivityStats
	for _, commit := range commits {
		if _, _, _, ok := filteredStats(commit, extensions); !ok {
			continue
		}
		weekday, hour := zone.Clock(commit.When)
		// time.Weekday starts on Sunday; the histogram starts on Monday.
		activity.Weekday[(int(weekday)+6)%7]++
		activity.Hourly[hour]++
	}
	return activity
}

func filteredStats(commit gitstat.Commit, extensions []string) (additions, deletions, filesChanged int, ok bool) {
	if len(extensions) == 0 {
		return commit.Diff.Additions, commit.Diff.Deletions, commit.Diff.FilesChanged, true
	}
	for _, f := range commit.Diff.Files {
		if !f.MatchesExtensions(extensions) {
			continue
		}
		additions += f.Additions
		deletions += f.Deletions
		filesChanged++
	}
	if filesChanged == 0 {
		return 0, 0, 0, false
	}
	return additions, deletions, filesChanged, true
}

// rollUp merges ascending daily buckets into coarser periods. keyFn returns
// the period start date and display label for a daily bucket's date.
func rollUp(daily []PeriodStats, keyFn func(date time.Time) (time.Time, string)) []PeriodStats {
	buckets := make(map[time.Time]PeriodStats)
	for _, day := range daily {
		start, label := keyFn(day.Date)
		entry, exists := buckets[start]
		if !exists {
			entry = WithLabel(start, label)
		}
		entry.Merge(day)
		buckets[start] = entry
	}

	ordered := make([]PeriodStats, 0, len(buckets))
	for _, p := range buckets {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })
	return ordered
}

func weekKey(date time.Time) (time.Time, string) {
	year, week := date.ISOWeek()
	// Monday of the date's ISO week.
	start := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
	return start, fmt.Sprintf("%d-W%02d", year, week)
}

func monthKey(date time.Time) (time.Time, string) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.Format("2006-01")
}

func yearKey(date time.Time) (time.Time, string) {
	start := time.Date(date.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.Format("2006")
}
