package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly", "yearly"} {
		p, err := ParsePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, Period(valid), p)
	}

	_, err := ParsePeriod("hourly")
	assert.ErrorContains(t, err, "invalid period")

	_, err = ParsePeriod("Daily")
	assert.Error(t, err)
}

func TestDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	rng := NewDateRange(from, to)

	assert.Equal(t, 5, rng.Days())
	assert.True(t, rng.Contains(time.Date(2024, 3, 3, 15, 4, 5, 0, time.UTC)))
	assert.True(t, rng.Contains(from))
	assert.True(t, rng.Contains(to))
	assert.False(t, rng.Contains(from.AddDate(0, 0, -1)))
	assert.False(t, rng.Contains(to.AddDate(0, 0, 1)))

	var days []time.Time
	rng.EachDay(func(date time.Time) { days = append(days, date) })
	require.Len(t, days, 5)
	assert.Equal(t, from, days[0])
	assert.Equal(t, to, days[4])
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Before(days[i]))
	}
}

func TestLastNDays(t *testing.T) {
	rng := LastNDays(6, UTCZone())
	assert.Equal(t, 7, rng.Days())
	assert.Equal(t, UTCZone().Today(), rng.To)
}

func TestPeriodStatsMerge(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := NewPeriodStats(date)
	a.Commits = 2
	a.Additions = 10
	a.Deletions = 4
	a.FilesChanged = 3
	a.UpdateNetLines()

	b := NewPeriodStats(date)
	b.Commits = 1
	b.Additions = 5
	b.Deletions = 7
	b.FilesChanged = 2
	b.UpdateNetLines()

	a.Merge(b)
	assert.Equal(t, 3, a.Commits)
	assert.Equal(t, 15, a.Additions)
	assert.Equal(t, 11, a.Deletions)
	assert.Equal(t, 4, a.NetLines)
	assert.Equal(t, 5, a.FilesChanged)
}

func TestTotalsOf(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	periods := []PeriodStats{
		{Date: date, Commits: 1, Additions: 10, Deletions: 2, FilesChanged: 1},
		{Date: date.AddDate(0, 0, 1), Commits: 2, Additions: 3, Deletions: 8, FilesChanged: 4},
	}

	total := TotalsOf(periods)
	assert.Equal(t, 3, total.Commits)
	assert.Equal(t, 13, total.Additions)
	assert.Equal(t, 10, total.Deletions)
	assert.Equal(t, 3, total.NetLines)
	assert.Equal(t, 5, total.FilesChanged)
}
