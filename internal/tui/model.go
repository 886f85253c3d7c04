package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/mizuki-e/tempo/internal/stats"
)

// ViewMode selects between showing all metrics at once or one at a time.
type ViewMode int

const (
	ViewSplit ViewMode = iota
	ViewSingle
)

type state int

const (
	stateLoading state = iota
	stateReady
	stateFailed
	stateExiting
)

// LoadFunc runs the aggregation. It executes once, as the Loading state's
// command; no transition after that ever performs collection.
type LoadFunc func() (*stats.Snapshot, []stats.RepoError, error)

type snapshotMsg struct {
	snapshot *stats.Snapshot
	repoErrs []stats.RepoError
}

type loadFailedMsg struct {
	err error
}

// Model is the complete UI state. All state changes go through Update;
// rendering is a pure function of the current model.
type Model struct {
	state    state
	spinner  spinner.Model
	load     LoadFunc
	snapshot *stats.Snapshot
	repoErrs []stats.RepoError
	err      error

	metric Metric
	mode   ViewMode
	scroll int
	width  int
	height int
}

func NewModel(load LoadFunc, startSingle bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = BarStyle

	mode := ViewSplit
	if startSingle {
		mode = ViewSingle
	}

	return Model{
		state:   stateLoading,
		spinner: sp,
		load:    load,
		mode:    mode,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runLoad)
}

func (m Model) runLoad() tea.Msg {
	snapshot, repoErrs, err := m.load()
	if err != nil {
		return loadFailedMsg{err: err}
	}
	return snapshotMsg{snapshot: snapshot, repoErrs: repoErrs}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.state = stateReady
		m.snapshot = msg.snapshot
		m.repoErrs = msg.repoErrs
		return m, nil

	case loadFailedMsg:
		m.state = stateFailed
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		next := m.transition(msg.String())
		if next.state == stateExiting {
			return next, tea.Quit
		}
		return next, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// transition is the pure key-event transition function.
func (m Model) transition(key string) Model {
	switch key {
	case "q", "esc", "ctrl+c":
		m.state = stateExiting
		return m
	}

	if m.state == stateFailed {
		// Any key dismisses the error screen.
		m.state = stateExiting
		return m
	}
	if m.state != stateReady {
		return m
	}

	switch key {
	case "m":
		if m.mode == ViewSplit {
			m.mode = ViewSingle
		} else {
			m.mode = ViewSplit
		}
	case "tab", "right", "l":
		if m.mode == ViewSingle {
			m.metric = m.metric.Next()
		}
	case "shift+tab", "left", "h":
		if m.mode == ViewSingle {
			m.metric = m.metric.Prev()
		}
	case "down", "j":
		m.scroll++
	case "up", "k":
		m.scroll--
	}

	return m.reclamp()
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	return m.reclamp()
}

// reclamp pins the scroll offset to the current content and viewport.
// Content height depends on the active view, so this runs after every
// transition and resize rather than once.
func (m Model) reclamp() Model {
	m.scroll = clampScroll(m.scroll, m.contentRows(), m.viewportRows())
	return m
}

func clampScroll(offset, content, viewport int) int {
	maxOffset := max(0, content-viewport)
	return min(max(0, offset), maxOffset)
}

func (m Model) contentRows() int {
	if m.snapshot == nil {
		return 0
	}
	rows := len(m.snapshot.Result.Stats)
	if m.mode == ViewSplit {
		rows += activityRows
	}
	return rows
}

func (m Model) viewportRows() int {
	return max(1, m.height-chromeRows)
}

// Run drives the program until quit. The load function runs during the
// Loading state; once the snapshot arrives the model is Ready and no
// further collection happens.
func Run(load LoadFunc, startSingle bool) error {
	p := tea.NewProgram(NewModel(load, startSingle), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
