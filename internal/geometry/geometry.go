// Package geometry maps gauge domain values onto a 180° half circle and
// converts the resulting angles into SVG coordinates and arc paths.
//
// Angles are in degrees. Zero points straight up from the centre, -90 is the
// left end of the gauge and +90 the right end.
package geometry

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MinAngle is the angle of the lower domain bound.
	MinAngle = -90.0
	// MaxAngle is the angle of the upper domain bound.
	MaxAngle = 90.0
	// Sweep is the total angular span of the gauge.
	Sweep = MaxAngle - MinAngle
)

// Point is a position on the drawing canvas.
type Point struct {
	X float64
	Y float64
}

// ValueToAngle clamps value into [min, max] and maps it linearly onto
// [-90, +90]. A degenerate domain (max == min) maps every value to -90.
func ValueToAngle(value, min, max float64) float64 {
	if max == min || math.IsNaN(value) {
		return MinAngle
	}
	clamped := math.Min(math.Max(value, min), max)
	ratio := (clamped - min) / (max - min)
	return MinAngle + ratio*Sweep
}

// AngleToValue is the inverse of ValueToAngle for angles within the gauge.
func AngleToValue(angle, min, max float64) float64 {
	ratio := (angle - MinAngle) / Sweep
	return min + ratio*(max-min)
}

// PolarToCartesian returns the point at distance r from (cx, cy) in the
// direction of angle, with angle zero pointing up.
func PolarToCartesian(cx, cy, r, angle float64) Point {
	rad := (angle - 90) * math.Pi / 180
	return Point{
		X: cx + r*math.Cos(rad),
		Y: cy + r*math.Sin(rad),
	}
}

// DescribeArc returns an SVG path description of the circular arc between
// startAngle and endAngle. The path starts at the endAngle point and ends at
// the startAngle point with a fixed sweep flag of 0.
func DescribeArc(cx, cy, r, startAngle, endAngle float64) string {
	start := PolarToCartesian(cx, cy, r, endAngle)
	end := PolarToCartesian(cx, cy, r, startAngle)
	largeArc := "0"
	if math.Abs(endAngle-startAngle) > 180 {
		largeArc = "1"
	}
	return strings.Join([]string{
		"M", FormatFloat(start.X), FormatFloat(start.Y),
		"A", FormatFloat(r), FormatFloat(r), "0", largeArc, "0",
		FormatFloat(end.X), FormatFloat(end.Y),
	}, " ")
}

// FormatFloat renders a coordinate with the shortest exact representation.
func FormatFloat(v float64) string {
	if v == 0 {
		// avoids "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
