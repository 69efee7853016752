package geometry

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// CloseKey is the gradient key whose colour fills the range between the
	// last threshold and the domain maximum. Any key parsing to -1 counts.
	CloseKey = "-1"

	// DefaultRangeColor is used for a threshold with an empty colour.
	DefaultRangeColor = "#888"
	// DefaultCloseColor is used for the closing range when CloseKey is unset.
	DefaultCloseColor = "red"
)

// Range is one coloured segment of the gauge arc.
type Range struct {
	From  float64
	To    float64
	Color string
}

// Contains reports whether v falls inside the range, bounds inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.From && v <= r.To
}

type threshold struct {
	value float64
	color string
}

// GradientRanges turns a threshold → colour map into contiguous ranges
// covering [min, max]. Keys that do not parse as numbers are ignored, as is
// any key equal to -1. The first range starts at min and each later range
// starts at the previous threshold. When the last threshold lies below max a closing
// range is appended, coloured by the CloseKey entry.
func GradientRanges(min, max float64, gradient map[string]string) []Range {
	var (
		keys     []threshold
		closeKey string
		closeSet bool
	)
	for k, color := range gradient {
		v, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v == -1 {
			// "-1" itself wins over other spellings such as "-1.0"
			exact := strings.TrimSpace(k) == CloseKey
			if !closeSet || exact || (strings.TrimSpace(closeKey) != CloseKey && k < closeKey) {
				closeKey, closeSet = k, true
			}
			continue
		}
		keys = append(keys, threshold{value: v, color: color})
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].value == keys[j].value {
			return keys[i].color < keys[j].color
		}
		return keys[i].value < keys[j].value
	})

	ranges := make([]Range, 0, len(keys)+1)
	for i, k := range keys {
		from := min
		if i > 0 {
			from = keys[i-1].value
		}
		color := k.color
		if color == "" {
			color = DefaultRangeColor
		}
		ranges = append(ranges, Range{From: from, To: k.value, Color: color})
	}

	last := keys[len(keys)-1].value
	if last < max {
		var color string
		if closeSet {
			color = gradient[closeKey]
		}
		if color == "" {
			color = DefaultCloseColor
		}
		ranges = append(ranges, Range{From: last, To: max, Color: color})
	}
	return ranges
}

// ColorAt returns the colour of the first range containing v, or fallback.
func ColorAt(ranges []Range, v float64, fallback string) string {
	for _, r := range ranges {
		if r.Contains(v) {
			return r.Color
		}
	}
	return fallback
}
