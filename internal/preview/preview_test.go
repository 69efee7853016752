package preview

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luki/gauge/internal/action"
	"github.com/luki/gauge/internal/card"
	"github.com/luki/gauge/internal/log"
	"github.com/luki/gauge/internal/state"
)

func TestMain(m *testing.M) {
	_ = log.Init(log.Options{})
	os.Exit(m.Run())
}

func testCard(t *testing.T, user card.UserConfig) card.Config {
	t.Helper()
	cfg, err := card.Resolve(card.Defaults(), user)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return cfg
}

func reading(v, unit string) state.State {
	return state.State{State: v, Attributes: state.Attributes{UnitOfMeasurement: unit}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewDefaults(t *testing.T) {
	m := New(Options{Card: testCard(t, card.UserConfig{Entity: "sensor.a"})})
	if m.opts.Interval != defaultInterval {
		t.Errorf("Interval = %v, want %v", m.opts.Interval, defaultInterval)
	}
	if m.opts.HistorySize != defaultHistorySize {
		t.Errorf("HistorySize = %d, want %d", m.opts.HistorySize, defaultHistorySize)
	}
	if m.opts.Load == nil {
		t.Error("Load should default to state.LoadFile")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{Card: testCard(t, card.UserConfig{Entity: "sensor.a"})})
	if got := m.View(); !strings.Contains(got, "Initializing") {
		t.Errorf("View() = %q, want initializing message", got)
	}
}

func TestSnapshotComposesAndRecords(t *testing.T) {
	cfg := testCard(t, card.UserConfig{
		Entity:    "sensor.a",
		MinEntity: "sensor.lo",
		Needles:   []card.Needle{{Entity: "sensor.b"}},
	})
	m := New(Options{Card: cfg, HistorySize: 10})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	snap := state.Snapshot{
		"sensor.a":  reading("42", "°C"),
		"sensor.b":  reading("10", "°C"),
		"sensor.lo": reading("5", "°C"),
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m = update(t, m, snapshotMsg{snapshot: snap, time: now})

	if !m.composed {
		t.Fatal("scene not composed after snapshot")
	}
	if got := m.Scene().ValueText; got != "42,000" {
		t.Errorf("ValueText = %q, want %q", got, "42,000")
	}
	for _, id := range []string{"sensor.a", "sensor.b", "sensor.lo"} {
		b := m.history.Get(id)
		if b == nil || b.Len() != 1 {
			t.Errorf("history for %s not recorded", id)
		}
	}

	view := m.View()
	for _, want := range []string{"GAUGE PREVIEW", "sensor.a", "42,000 °C", "No actions yet"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestAllTimeExtremesOutliveWindow(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	m := New(Options{Card: cfg, HistorySize: 1})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, v := range []string{"10", "50", "30"} {
		snap := state.Snapshot{"sensor.a": reading(v, "")}
		m = update(t, m, snapshotMsg{snapshot: snap, time: now.Add(time.Duration(i) * time.Second)})
	}

	view := m.View()
	for _, want := range []string{"lo30,0", "pk30,0", "min 10,0", "peak 50,0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestTitleFallsBackToFriendlyName(t *testing.T) {
	tests := []struct {
		name     string
		cardName string
		friendly string
		want     string
	}{
		{"card name wins", "Boiler", "Boiler sensor", "Boiler"},
		{"friendly name", "", "Boiler sensor", "Boiler sensor"},
		{"entity id", "", "", "sensor.a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCard(t, card.UserConfig{Entity: "sensor.a", Name: tt.cardName})
			m := New(Options{Card: cfg})
			st := reading("42", "")
			st.Attributes.FriendlyName = tt.friendly
			m = update(t, m, snapshotMsg{snapshot: state.Snapshot{"sensor.a": st}, time: time.Now()})
			if got := m.title(); got != tt.want {
				t.Errorf("title: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNonNumericEntityNotRecorded(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	m := New(Options{Card: cfg})
	m = update(t, m, snapshotMsg{snapshot: state.Snapshot{"sensor.a": reading("unavailable", "")}, time: time.Now()})

	if m.history.Get("sensor.a") != nil {
		t.Error("non-numeric state should not be recorded")
	}
	if m.Scene().Numeric {
		t.Error("scene should not be numeric")
	}
}

func TestTapEmitsEvent(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	var got []action.Event
	m := New(Options{Card: cfg, Emitter: action.EmitterFunc(func(ev action.Event) {
		got = append(got, ev)
	})})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(got) != 1 {
		t.Fatalf("emitted %d events, want 1", len(got))
	}
	if got[0].Kind != action.Tap || got[0].Action.Action != "more-info" {
		t.Errorf("event = %+v, want tap more-info", got[0])
	}
	if len(m.Events()) != 1 || m.Events()[0].ID != got[0].ID {
		t.Errorf("Events() = %+v, want the emitted event", m.Events())
	}
	if m.status != "tap → more-info" {
		t.Errorf("status = %q", m.status)
	}
}

func TestUnboundKindIsReported(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	emitted := 0
	m := New(Options{Card: cfg, Emitter: action.EmitterFunc(func(action.Event) { emitted++ })})

	m = update(t, m, keyRune('d'))
	m = update(t, m, keyRune('h'))

	if emitted != 0 {
		t.Errorf("emitted %d events for unbound kinds", emitted)
	}
	if len(m.Events()) != 0 {
		t.Errorf("Events() = %d, want 0", len(m.Events()))
	}
	if m.status != "no action bound to hold" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEventsAreCapped(t *testing.T) {
	cfg := testCard(t, card.UserConfig{
		Entity:     "sensor.a",
		HoldAction: &card.Action{Action: "toggle"},
	})
	m := New(Options{Card: cfg})
	for i := 0; i < maxEvents+3; i++ {
		m = update(t, m, keyRune('h'))
	}
	if len(m.Events()) != maxEvents {
		t.Fatalf("Events() = %d, want %d", len(m.Events()), maxEvents)
	}
	for _, ev := range m.Events() {
		if ev.Kind != action.Hold || ev.Action.Action != "toggle" {
			t.Errorf("event = %+v, want hold toggle", ev)
		}
	}
}

func TestPauseSkipsPolling(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	loads := 0
	m := New(Options{Card: cfg, Load: func(string) (state.Snapshot, error) {
		loads++
		return state.Snapshot{}, nil
	}})

	m = update(t, m, keyRune('p'))
	if !m.paused {
		t.Fatal("p should pause")
	}
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("paused tick should still schedule the next tick")
	}

	m = update(t, m, keyRune('p'))
	if m.paused {
		t.Fatal("p should resume")
	}
	msg := m.pollCmd()()
	if _, ok := msg.(snapshotMsg); !ok {
		t.Errorf("pollCmd() = %T, want snapshotMsg", msg)
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

func TestLoadErrorIsShown(t *testing.T) {
	cfg := testCard(t, card.UserConfig{Entity: "sensor.a"})
	m := New(Options{Card: cfg, StatesPath: "states.json", Load: func(string) (state.Snapshot, error) {
		return nil, errors.New("boom")
	}})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	msg := m.pollCmd()()
	m = update(t, m, msg)
	if m.err == nil {
		t.Fatal("err not set after failed load")
	}
	if !strings.Contains(m.View(), "ERROR: boom") {
		t.Error("View() should show the load error")
	}

	m = update(t, m, snapshotMsg{snapshot: state.Snapshot{}, time: time.Now()})
	if m.err != nil {
		t.Errorf("err = %v, want cleared after successful load", m.err)
	}
}

func TestMarksOrder(t *testing.T) {
	cfg := testCard(t, card.UserConfig{
		Entity:    "sensor.a",
		MaxEntity: "sensor.hi",
		Needles:   []card.Needle{{Entity: "sensor.b", Color: "green"}},
	})
	m := New(Options{Card: cfg})
	m = update(t, m, snapshotMsg{snapshot: state.Snapshot{
		"sensor.a":  reading("40", ""),
		"sensor.b":  reading("25", ""),
		"sensor.hi": reading("90", ""),
	}, time: time.Now()})

	marks := m.marks()
	if len(marks) != 3 {
		t.Fatalf("marks = %d, want 3", len(marks))
	}
	if marks[0].Rune != '┃' || marks[0].Value != 90 || marks[0].Color != "darkred" {
		t.Errorf("stat mark = %+v", marks[0])
	}
	if marks[1].Rune != '▲' || marks[1].Color != "green" {
		t.Errorf("needle mark = %+v", marks[1])
	}
	if d := marks[1].Value - 25; d > 1e-9 || d < -1e-9 {
		t.Errorf("needle mark value = %v, want 25", marks[1].Value)
	}
	if marks[2].Rune != '◆' || marks[2].Value != 40 {
		t.Errorf("primary mark = %+v", marks[2])
	}
}

func TestFmtDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{65 * time.Second, "1m05s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h03m04s"},
	}
	for _, tt := range tests {
		if got := fmtDuration(tt.d); got != tt.want {
			t.Errorf("fmtDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
