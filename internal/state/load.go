package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrUnknownFormat is returned when a snapshot document is neither a state
// list nor an entity-keyed object.
var ErrUnknownFormat = errors.New("unrecognised state snapshot format")

// LoadFile reads a snapshot from a JSON file.
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read states: %w", err)
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode parses a snapshot. Two shapes are accepted: the list returned by
// the host's states endpoint ([{"entity_id": ..., "state": ...}, ...]) and an
// object keyed by entity id ({"sensor.x": {"state": ...}}).
func Decode(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUnknownFormat
	}

	switch data[0] {
	case '[':
		var list []State
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode state list: %w", err)
		}
		snap := make(Snapshot, len(list))
		for _, st := range list {
			if st.EntityID == "" {
				continue
			}
			snap[st.EntityID] = st
		}
		return snap, nil

	case '{':
		var m map[string]State
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode state map: %w", err)
		}
		snap := make(Snapshot, len(m))
		for id, st := range m {
			st.EntityID = id
			snap[id] = st
		}
		return snap, nil
	}

	return nil, ErrUnknownFormat
}
