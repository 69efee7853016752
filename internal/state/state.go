// Package state provides read-only access to the host's live entity states
// and the numeric parsing every gauge layer relies on.
package state

import (
	"math"
	"strconv"
	"strings"
)

// Attributes holds the entity attributes the gauge reads.
type Attributes struct {
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	FriendlyName      string `json:"friendly_name,omitempty"`
}

// State is a single entity record as delivered by the host.
type State struct {
	EntityID   string     `json:"entity_id,omitempty"`
	State      string     `json:"state"`
	Attributes Attributes `json:"attributes"`
}

// Value is what a lookup yields for one entity.
type Value struct {
	State string
	Unit  string // empty when the entity has no unit
	Name  string // friendly name, may be empty
}

// Reading returns the parsed numeric form of the value.
func (v Value) Reading() Reading {
	return Parse(v.State)
}

// Lookup resolves an entity id to its current value. The second return
// reports whether the entity exists in the snapshot.
type Lookup interface {
	Lookup(entityID string) (Value, bool)
}

// Snapshot is an immutable mapping of entity id to state.
type Snapshot map[string]State

// Lookup implements Lookup.
func (s Snapshot) Lookup(entityID string) (Value, bool) {
	if entityID == "" {
		return Value{}, false
	}
	st, ok := s[entityID]
	if !ok {
		return Value{}, false
	}
	return Value{
		State: st.State,
		Unit:  st.Attributes.UnitOfMeasurement,
		Name:  st.Attributes.FriendlyName,
	}, true
}

// Reading is the tagged result of parsing a state string.
type Reading struct {
	Number  float64
	Numeric bool
}

// Parse converts a raw state into a number. States that are empty, not a
// number, NaN or infinite are reported as not numeric.
func Parse(raw string) Reading {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Reading{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Reading{}
	}
	return Reading{Number: v, Numeric: true}
}

// Numeric looks up entityID and returns its numeric value, if any.
func Numeric(l Lookup, entityID string) (float64, bool) {
	v, ok := l.Lookup(entityID)
	if !ok {
		return 0, false
	}
	r := v.Reading()
	return r.Number, r.Numeric
}
