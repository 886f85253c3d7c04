package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizuki-e/tempo/internal/stats"
)

func fixtureSnapshot(buckets int) *stats.Snapshot {
	periods := make([]stats.PeriodStats, buckets)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range periods {
		p := stats.NewPeriodStats(base.AddDate(0, 0, i))
		p.Commits = i + 1
		p.Additions = 10 * (i + 1)
		p.Deletions = 3 * (i + 1)
		p.UpdateNetLines()
		p.FilesChanged = i
		periods[i] = p
	}

	rng := stats.NewDateRange(base, base.AddDate(0, 0, buckets-1))
	return &stats.Snapshot{
		Result: stats.NewAnalysisResult("fixture", stats.Daily, rng, periods),
	}
}

func readyModel(buckets, height int) Model {
	m := NewModel(nil, false)
	m.state = stateReady
	m.snapshot = fixtureSnapshot(buckets)
	m.width = 80
	m.height = height
	return m
}

func TestMetricCycle(t *testing.T) {
	m := MetricCommits
	for i := 0; i < len(AllMetrics()); i++ {
		m = m.Next()
	}
	assert.Equal(t, MetricCommits, m, "a full forward cycle returns to the start")

	m = MetricCommits
	for i := 0; i < len(AllMetrics()); i++ {
		m = m.Prev()
	}
	assert.Equal(t, MetricCommits, m, "a full backward cycle returns to the start")

	assert.Equal(t, MetricFilesChanged, MetricCommits.Prev())
	assert.Equal(t, MetricCommits, MetricFilesChanged.Next())

	for _, metric := range AllMetrics() {
		assert.NotEmpty(t, metric.Name())
	}
}

func TestMetricValueOf(t *testing.T) {
	p := stats.PeriodStats{Commits: 1, Additions: 2, Deletions: 3, NetLines: -1, FilesChanged: 5}
	assert.Equal(t, 1, MetricCommits.ValueOf(p))
	assert.Equal(t, 2, MetricAdditions.ValueOf(p))
	assert.Equal(t, 3, MetricDeletions.ValueOf(p))
	assert.Equal(t, -1, MetricNetLines.ValueOf(p))
	assert.Equal(t, 5, MetricFilesChanged.ValueOf(p))
}

func TestTransitionQuit(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := readyModel(10, 40).transition(key)
		assert.Equal(t, stateExiting, m.state, "key %q", key)
	}
}

func TestTransitionModeToggle(t *testing.T) {
	m := readyModel(10, 40)
	assert.Equal(t, ViewSplit, m.mode)

	m = m.transition("m")
	assert.Equal(t, ViewSingle, m.mode)

	m = m.transition("m")
	assert.Equal(t, ViewSplit, m.mode)
}

func TestTransitionMetricCycleOnlyInSingle(t *testing.T) {
	m := readyModel(10, 40)

	// Split mode ignores metric keys.
	m = m.transition("tab")
	assert.Equal(t, MetricCommits, m.metric)

	m = m.transition("m")
	m = m.transition("tab")
	assert.Equal(t, MetricAdditions, m.metric)
	m = m.transition("l")
	assert.Equal(t, MetricDeletions, m.metric)
	m = m.transition("shift+tab")
	assert.Equal(t, MetricAdditions, m.metric)
	m = m.transition("h")
	assert.Equal(t, MetricCommits, m.metric)
	m = m.transition("left")
	assert.Equal(t, MetricFilesChanged, m.metric)
	m = m.transition("right")
	assert.Equal(t, MetricCommits, m.metric)
}

func TestScrollClamp(t *testing.T) {
	// 30 buckets, tiny window: only part of the series fits.
	m := readyModel(30, chromeRows+10)
	m = m.transition("m") // single view, content is exactly the buckets
	require.Equal(t, ViewSingle, m.mode)

	maxOffset := m.contentRows() - m.viewportRows()
	require.Positive(t, maxOffset)

	for i := 0; i < 100; i++ {
		m = m.transition("j")
	}
	assert.Equal(t, maxOffset, m.scroll, "scroll pins at the last page")

	m = m.transition("k")
	assert.Equal(t, maxOffset-1, m.scroll)

	for i := 0; i < 100; i++ {
		m = m.transition("up")
	}
	assert.Equal(t, 0, m.scroll, "scroll never goes above the top")
}

func TestScrollReclampOnResize(t *testing.T) {
	m := readyModel(30, chromeRows+5)
	for i := 0; i < 100; i++ {
		m = m.transition("down")
	}
	require.Positive(t, m.scroll)

	grown := m.resize(80, chromeRows+100)
	assert.Equal(t, 0, grown.scroll, "everything fits after growing, offset resets")

	shrunk := m.resize(80, chromeRows+3)
	assert.Equal(t, shrunk.contentRows()-shrunk.viewportRows(), shrunk.scroll)
}

func TestScrollReclampOnModeToggle(t *testing.T) {
	// Split content is taller than single content by the activity block, so
	// an offset valid in split may overshoot in single.
	m := readyModel(20, chromeRows+18)
	for i := 0; i < 100; i++ {
		m = m.transition("j")
	}
	require.Equal(t, m.contentRows()-m.viewportRows(), m.scroll)

	m = m.transition("m")
	assert.LessOrEqual(t, m.scroll, max(0, m.contentRows()-m.viewportRows()))
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, 0, clampScroll(-5, 10, 5))
	assert.Equal(t, 0, clampScroll(0, 10, 5))
	assert.Equal(t, 5, clampScroll(5, 10, 5))
	assert.Equal(t, 5, clampScroll(99, 10, 5))
	assert.Equal(t, 0, clampScroll(99, 3, 5), "short content never scrolls")
}

func TestUpdateLifecycle(t *testing.T) {
	load := func() (*stats.Snapshot, []stats.RepoError, error) {
		return fixtureSnapshot(3), nil, nil
	}
	m := NewModel(load, false)
	assert.Equal(t, stateLoading, m.state)

	msg := m.runLoad()
	next, _ := m.Update(msg)
	model := next.(Model)
	assert.Equal(t, stateReady, model.state)
	require.NotNil(t, model.snapshot)
	assert.Len(t, model.snapshot.Result.Stats, 3)
}

func TestUpdateLoadFailure(t *testing.T) {
	load := func() (*stats.Snapshot, []stats.RepoError, error) {
		return nil, nil, errors.New("no repositories")
	}
	m := NewModel(load, false)

	next, _ := m.Update(m.runLoad())
	model := next.(Model)
	assert.Equal(t, stateFailed, model.state)

	// Any key leaves the error screen.
	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	model = next.(Model)
	assert.Equal(t, stateExiting, model.state)
	assert.NotNil(t, cmd)
}

func TestViewRenders(t *testing.T) {
	m := readyModel(5, 40)
	out := m.View()
	assert.Contains(t, out, "fixture")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "2024-03-01")

	single := m.transition("m")
	out = single.View()
	assert.Contains(t, out, "Commits")

	failed := NewModel(nil, false)
	failed.state = stateFailed
	failed.err = errors.New("boom")
	assert.Contains(t, failed.View(), "boom")
}
