// Package history keeps a ring buffer of observed entity values with
// per-entity min/peak/avg statistics.
package history

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is a single observed value.
type Point struct {
	Value float64
	Time  time.Time
}

// Buffer stores a ring buffer of values for one entity.
type Buffer struct {
	Points []Point
	Max    int // capacity
	Min    float64
	Peak   float64
}

// NewBuffer creates a new history ring buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		Points: make([]Point, 0, capacity),
		Max:    capacity,
		Min:    math.MaxFloat64,
		Peak:   -math.MaxFloat64,
	}
}

// Push adds a new value to the history.
func (b *Buffer) Push(v float64, t time.Time) {
	p := Point{Value: v, Time: t}
	if len(b.Points) >= b.Max {
		copy(b.Points, b.Points[1:])
		b.Points[len(b.Points)-1] = p
	} else {
		b.Points = append(b.Points, p)
	}

	b.Min = math.Min(b.Min, v)
	b.Peak = math.Max(b.Peak, v)
}

// Len returns the number of stored points.
func (b *Buffer) Len() int {
	return len(b.Points)
}

// Values returns the stored values, oldest first.
func (b *Buffer) Values() []float64 {
	vals := make([]float64, len(b.Points))
	for i, p := range b.Points {
		vals[i] = p.Value
	}
	return vals
}

// Avg returns the mean across all stored points.
func (b *Buffer) Avg() float64 {
	if len(b.Points) == 0 {
		return 0
	}
	return stat.Mean(b.Values(), nil)
}

// WindowMin returns the lowest value still in the buffer. Unlike Min it
// forgets values that have been evicted.
func (b *Buffer) WindowMin() float64 {
	if len(b.Points) == 0 {
		return 0
	}
	return floats.Min(b.Values())
}

// WindowMax returns the highest value still in the buffer.
func (b *Buffer) WindowMax() float64 {
	if len(b.Points) == 0 {
		return 0
	}
	return floats.Max(b.Values())
}

// LastNPoints returns the last n Points (with timestamps).
func (b *Buffer) LastNPoints(n int) []Point {
	if n <= 0 || len(b.Points) == 0 {
		return nil
	}
	start := len(b.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]Point, len(b.Points[start:]))
	copy(out, b.Points[start:])
	return out
}

// Store manages histories for all entities.
type Store struct {
	Data     map[string]*Buffer
	Capacity int
}

// NewStore creates a new store with the given per-entity capacity.
func NewStore(capacity int) *Store {
	return &Store{
		Data:     make(map[string]*Buffer),
		Capacity: capacity,
	}
}

// Record adds a value for the given entity.
func (s *Store) Record(entityID string, v float64, t time.Time) {
	b, ok := s.Data[entityID]
	if !ok {
		b = NewBuffer(s.Capacity)
		s.Data[entityID] = b
	}
	b.Push(v, t)
}

// Get returns the history buffer for an entity, or nil.
func (s *Store) Get(entityID string) *Buffer {
	return s.Data[entityID]
}
