// Package action turns interaction events on a gauge card into a single
// outward notification for the host to interpret.
package action

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luki/gauge/internal/card"
)

// Kind is an interaction event kind.
type Kind string

const (
	Tap       Kind = "click"
	DoubleTap Kind = "dblclick"
	Hold      Kind = "contextmenu"
)

// ParseKind accepts either the binding name (tap, double_tap, hold) or the
// underlying event name (click, dblclick, contextmenu).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tap", "click":
		return Tap, nil
	case "double_tap", "double-tap", "dblclick":
		return DoubleTap, nil
	case "hold", "contextmenu":
		return Hold, nil
	}
	return "", fmt.Errorf("unknown interaction %q", s)
}

// Event is the notification emitted for a bound interaction.
type Event struct {
	ID     string      `json:"id"`
	Time   time.Time   `json:"time"`
	Kind   Kind        `json:"kind"`
	Config card.Config `json:"config"`
	Action card.Action `json:"action"`
}

// Emitter receives emitted events.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f(ev).
func (f EmitterFunc) Emit(ev Event) { f(ev) }

// Binding returns the action bound to kind, or nil.
func Binding(cfg card.Config, kind Kind) *card.Action {
	switch kind {
	case Tap:
		return cfg.TapAction
	case DoubleTap:
		return cfg.DoubleTapAction
	case Hold:
		return cfg.HoldAction
	}
	return nil
}

// Handle emits one event when an action is bound to kind and reports
// whether it did. A true result means the caller should suppress its own
// default handling of the interaction.
func Handle(cfg card.Config, kind Kind, emitter Emitter) bool {
	a := Binding(cfg, kind)
	if a == nil {
		return false
	}
	emitter.Emit(Event{
		ID:     uuid.NewString(),
		Time:   time.Now().UTC(),
		Kind:   kind,
		Config: cfg,
		Action: *a,
	})
	return true
}
