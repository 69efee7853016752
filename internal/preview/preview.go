// Package preview implements a live terminal preview of one gauge card
// using BubbleTea: the state snapshot file is polled, the scene recomposed,
// and key presses are dispatched as card interactions.
package preview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/gauge/internal/action"
	"github.com/luki/gauge/internal/card"
	"github.com/luki/gauge/internal/history"
	"github.com/luki/gauge/internal/log"
	"github.com/luki/gauge/internal/scene"
	"github.com/luki/gauge/internal/state"
)

const (
	defaultInterval    = 1 * time.Second
	defaultHistorySize = 600 // 10 minutes at 1s interval
	maxEvents          = 5
)

// Options configures a preview.
type Options struct {
	Card        card.Config
	StatesPath  string
	Interval    time.Duration
	HistorySize int
	// Emitter additionally receives every emitted action event.
	Emitter action.Emitter
	// Load reads the snapshot; defaults to state.LoadFile.
	Load func(path string) (state.Snapshot, error)
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	time     time.Time
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live preview.
type Model struct {
	opts      Options
	history   *history.Store
	snapshot  state.Snapshot
	scene     scene.Scene
	composed  bool
	events    []action.Event
	status    string
	err       error
	width     int
	height    int
	scroll    int
	lastPoll  time.Time
	startTime time.Time
	paused    bool
}

// New creates the initial model for the preview.
func New(opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = defaultHistorySize
	}
	if opts.Load == nil {
		opts.Load = state.LoadFile
	}
	return Model{
		opts:      opts,
		history:   history.NewStore(opts.HistorySize),
		startTime: time.Now(),
	}
}

// Run launches the preview TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) pollCmd() tea.Cmd {
	load, path := m.opts.Load, m.opts.StatesPath
	return func() tea.Msg {
		snap, err := load(path)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snapshot: snap, time: time.Now()}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		case "enter", "t":
			m = m.interact(action.Tap)
		case "d":
			m = m.interact(action.DoubleTap)
		case "h":
			m = m.interact(action.Hold)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.pollCmd(), m.tickCmd())

	case snapshotMsg:
		m = m.apply(msg.snapshot, msg.time)

	case errMsg:
		m.err = msg.err
		log.Warnw("state reload failed", "path", m.opts.StatesPath, "error", msg.err)
	}

	return m, nil
}

// apply recomposes the scene from a fresh snapshot and records every
// numeric entity the card references.
func (m Model) apply(snap state.Snapshot, t time.Time) Model {
	m.snapshot = snap
	m.scene = scene.Compose(m.opts.Card, snap)
	m.composed = true
	m.lastPoll = t
	m.err = nil
	for _, id := range m.opts.Card.Entities() {
		if v, ok := state.Numeric(snap, id); ok {
			m.history.Record(id, v, t)
		}
	}
	return m
}

func (m Model) interact(kind action.Kind) Model {
	var emitted []action.Event
	handled := action.Handle(m.opts.Card, kind, action.EmitterFunc(func(ev action.Event) {
		emitted = append(emitted, ev)
	}))
	if !handled {
		m.status = fmt.Sprintf("no action bound to %s", kindName(kind))
		return m
	}

	for _, ev := range emitted {
		log.Infow("action emitted", "id", ev.ID, "kind", string(ev.Kind), "action", ev.Action.Action, "entity", ev.Config.Entity)
		if m.opts.Emitter != nil {
			m.opts.Emitter.Emit(ev)
		}
	}
	m.events = append(m.events, emitted...)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	m.status = fmt.Sprintf("%s → %s", kindName(kind), emitted[len(emitted)-1].Action.Action)
	return m
}

func kindName(k action.Kind) string {
	switch k {
	case action.Tap:
		return "tap"
	case action.DoubleTap:
		return "double tap"
	case action.Hold:
		return "hold"
	}
	return string(k)
}

// Scene returns the most recently composed scene.
func (m Model) Scene() scene.Scene { return m.scene }

// Events returns the most recent emitted events, oldest first.
func (m Model) Events() []action.Event { return m.events }

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	}

	if !m.composed {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for state snapshot...")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, m.renderGaugePanel(contentWidth))
		sections = append(sections, m.renderEventsPanel(contentWidth))
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	start := min(m.scroll, maxScroll)
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}
