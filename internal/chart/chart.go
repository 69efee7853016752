// Package chart renders gauges in the terminal: a horizontal scale coloured
// by the gauge gradient with needle and marker positions, and a sparkline of
// recent values with minute tick marks and timeline labels.
package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/gauge/internal/geometry"
	"github.com/luki/gauge/internal/history"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorDim  = lipgloss.Color("236")
	colorTick = lipgloss.Color("239")
)

// Mark is a position drawn on top of the scale.
type Mark struct {
	Value float64
	Rune  rune
	Color string // CSS colour
}

// Position maps v onto a cell index in [0, width), using the same clamping
// and degenerate-domain rule as the gauge needle.
func Position(v, lo, hi float64, width int) int {
	if width <= 1 {
		return 0
	}
	ratio := (geometry.ValueToAngle(v, lo, hi) - geometry.MinAngle) / geometry.Sweep
	pos := int(math.Round(ratio * float64(width-1)))
	return max(min(pos, width-1), 0)
}

// RenderScale renders the gauge arc unrolled into width cells. Each cell is
// coloured by the gradient range that contains its value; marks are drawn on
// top, later marks winning over earlier ones.
func RenderScale(ranges []geometry.Range, lo, hi float64, marks []Mark, width int) string {
	if width <= 0 {
		return ""
	}

	cells := make([]string, width)
	for i := range cells {
		v := lo
		if width > 1 {
			v = lo + (hi-lo)*float64(i)/float64(width-1)
		}
		col := geometry.ColorAt(ranges, v, "")
		if col == "" {
			cells[i] = lipgloss.NewStyle().Foreground(colorDim).Render("━")
			continue
		}
		cells[i] = lipgloss.NewStyle().Foreground(Color(col)).Render("━")
	}

	for _, m := range marks {
		pos := Position(m.Value, lo, hi, width)
		r := m.Rune
		if r == 0 {
			r = '◆'
		}
		cells[pos] = lipgloss.NewStyle().Foreground(Color(m.Color)).Bold(true).Render(string(r))
	}

	return strings.Join(cells, "")
}

// RenderSparklinePoints renders a sparkline with minute tick marks on the
// timeline. Blocks take the colour of the gradient range containing the
// value; values outside every range use fallback.
func RenderSparklinePoints(points []history.Point, width int, rangeMin, rangeMax float64, ranges []geometry.Range, fallback string) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorDim)
	if len(points) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder

	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(colorTick)

	for i, p := range points {
		norm := (p.Value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		if isMinuteTick(points, i) {
			sb.WriteString(tickStyle.Render("│"))
			continue
		}
		col := geometry.ColorAt(ranges, p.Value, fallback)
		sb.WriteString(lipgloss.NewStyle().Foreground(Color(col)).Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	if i > 0 && !points[i-1].Time.IsZero() {
		return p.Time.Minute() != points[i-1].Time.Minute()
	}
	return false
}

// RenderTimeline renders the time labels under the sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if isMinuteTick(points, i) {
			ticks = append(ticks, tick{pos: padLen + i, label: p.Time.Format("15:04")})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(colorTick).Render(string(line))
}

// RenderValue renders a formatted value in a CSS colour.
func RenderValue(text, css string, bold bool) string {
	return lipgloss.NewStyle().Foreground(Color(css)).Bold(bold).Render(text)
}
