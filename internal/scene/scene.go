// Package scene composes a gauge card into an ordered list of drawing
// primitives and encodes it as an SVG document.
package scene

import (
	"github.com/luki/gauge/internal/geometry"
)

// Canvas layout in SVG user units.
const (
	Width   = 240.0
	Height  = 180.0
	CenterX = 120.0
	CenterY = 140.0
	Radius  = 90.0

	needleWidth      = 10.0
	needleBaseRatio  = 0.6
	infoLineHeight   = 14.0
	needleTransition = "transition: transform 0.6s ease;"

	// Placeholder is shown as the value when the primary entity is absent.
	Placeholder = "–"
)

// Layer orders elements back to front.
type Layer int

const (
	LayerArc Layer = iota
	LayerTicks
	LayerMarkers
	LayerNeedles
	LayerNeedleInfo
	LayerPrimaryNeedle
	LayerText
)

var layerNames = map[Layer]string{
	LayerArc:           "arc",
	LayerTicks:         "ticks",
	LayerMarkers:       "markers",
	LayerNeedles:       "needles",
	LayerNeedleInfo:    "needle-info",
	LayerPrimaryNeedle: "primary-needle",
	LayerText:          "text",
}

func (l Layer) String() string {
	if s, ok := layerNames[l]; ok {
		return s
	}
	return "unknown"
}

// Shape is one drawable primitive.
type Shape interface {
	shape()
}

// Arc is a stroked arc segment of the gauge background.
type Arc struct {
	Path        string
	Stroke      string
	StrokeWidth float64
	From, To    float64 // domain values covered
}

// Line is a straight stroke, used for ticks and statistical markers.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
}

// Needle is a triangle drawn pointing up from the origin, then rotated by
// Angle degrees and translated to (CX, CY).
type Needle struct {
	Entity  string
	CX, CY  float64
	Angle   float64
	Points  []geometry.Point
	Fill    string
	Opacity float64
}

// Text is a single label.
type Text struct {
	X, Y     float64
	Content  string
	Anchor   string
	Baseline string
	FontSize float64
	Fill     string
	Bold     bool
}

func (Arc) shape()    {}
func (Line) shape()   {}
func (Needle) shape() {}
func (Text) shape()   {}

// Element is a shape tagged with its layer.
type Element struct {
	Layer Layer
	Shape Shape
}

// Scene is the output of one render pass.
type Scene struct {
	Width    float64
	Height   float64
	Elements []Element

	// Summary of the primary entity, for consumers that do not draw SVG.
	Entity    string
	ValueText string
	Unit      string
	Value     float64
	Numeric   bool
	Angle     float64
	Ranges    []geometry.Range
}

// Layer returns the elements of layer l in drawing order.
func (s Scene) Layer(l Layer) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Layer == l {
			out = append(out, e)
		}
	}
	return out
}

// Needles returns every needle in the scene, primary last.
func (s Scene) Needles() []Needle {
	var out []Needle
	for _, e := range s.Elements {
		if n, ok := e.Shape.(Needle); ok {
			out = append(out, n)
		}
	}
	return out
}
