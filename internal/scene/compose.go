package scene

import (
	"github.com/luki/gauge/internal/card"
	"github.com/luki/gauge/internal/geometry"
	"github.com/luki/gauge/internal/state"
)

const (
	defaultNeedleColor   = "gray"
	defaultNeedleOpacity = 0.5
	defaultInfoDecimals  = 1
)

type composer struct {
	cfg    card.Config
	lookup state.Lookup
	out    []Element
}

// Compose renders cfg against the live values in lookup. It never fails:
// missing or non-numeric entities only drop the elements that depend on
// them. Identical inputs yield identical scenes.
func Compose(cfg card.Config, lookup state.Lookup) Scene {
	c := &composer{cfg: cfg, lookup: lookup}

	sc := Scene{
		Width:  Width,
		Height: Height,
		Entity: cfg.Entity,
		Ranges: c.ranges(),
	}

	raw := Placeholder
	if v, ok := lookup.Lookup(cfg.Entity); ok {
		raw = v.State
		sc.Unit = v.Unit
	}
	r := state.Parse(raw)
	sc.Numeric = r.Numeric
	sc.Value = r.Number
	sc.ValueText = raw
	sc.Angle = geometry.MinAngle
	if r.Numeric {
		sc.ValueText = FormatNumber(r.Number, cfg.Decimals, cfg.DecimalSeparator)
		sc.Angle = geometry.ValueToAngle(r.Number, cfg.Min, cfg.Max)
	}

	c.arcs(sc.Ranges)
	c.ticks()
	c.markers()
	c.needles()
	c.needleInfo()
	c.add(LayerPrimaryNeedle, c.needle(cfg.Entity, sc.Angle, cfg.NeedleColor, cfg.NeedleOpacity))
	c.texts(sc.ValueText, sc.Unit)

	sc.Elements = c.out
	return sc
}

func (c *composer) add(l Layer, s Shape) {
	c.out = append(c.out, Element{Layer: l, Shape: s})
}

func (c *composer) angle(v float64) float64 {
	return geometry.ValueToAngle(v, c.cfg.Min, c.cfg.Max)
}

func (c *composer) at(r, angle float64) geometry.Point {
	return geometry.PolarToCartesian(CenterX, CenterY, r, angle)
}

// ranges resolves the gradient. Without numeric thresholds the whole domain
// is drawn in the neutral colour so the gauge never loses its arc.
func (c *composer) ranges() []geometry.Range {
	ranges := geometry.GradientRanges(c.cfg.Min, c.cfg.Max, c.cfg.Gradient)
	if len(ranges) == 0 {
		ranges = []geometry.Range{{From: c.cfg.Min, To: c.cfg.Max, Color: geometry.DefaultRangeColor}}
	}
	return ranges
}

func (c *composer) arcs(ranges []geometry.Range) {
	for _, r := range ranges {
		c.add(LayerArc, Arc{
			Path:        geometry.DescribeArc(CenterX, CenterY, Radius, c.angle(r.From), c.angle(r.To)),
			Stroke:      r.Color,
			StrokeWidth: c.cfg.StrokeWidth,
			From:        r.From,
			To:          r.To,
		})
	}
}

func (c *composer) ticks() {
	n := c.cfg.TicksCount
	if n <= 0 {
		return
	}
	sw := c.cfg.StrokeWidth
	span := c.cfg.Max - c.cfg.Min
	for i := 0; i <= n; i++ {
		val := c.cfg.Min + float64(i)*span/float64(n)
		a := c.angle(val)
		if i != 0 && i != n {
			inner := c.at(Radius-sw*c.cfg.TickStrokeInner, a)
			outer := c.at(Radius+sw*c.cfg.TickStrokeOuter, a)
			c.add(LayerTicks, Line{
				X1: inner.X, Y1: inner.Y, X2: outer.X, Y2: outer.Y,
				Stroke:      c.cfg.TickColor,
				StrokeWidth: c.cfg.TickWidth,
			})
		}
		label := c.at(Radius-sw/2-c.cfg.TickLabelOffset, a)
		c.add(LayerTicks, Text{
			X: label.X, Y: label.Y,
			Content:  tickLabel(val),
			Anchor:   "middle",
			Baseline: "middle",
			FontSize: c.cfg.TickFontSize,
		})
	}
}

func (c *composer) markers() {
	sw := c.cfg.StrokeWidth
	for _, st := range card.Stats {
		val, ok := state.Numeric(c.lookup, c.cfg.StatEntity(st))
		if !ok {
			continue
		}
		col := c.cfg.StatColor(st)
		a := c.angle(val)
		inner := c.at(Radius-sw*0.5, a)
		outer := c.at(Radius+sw*0.5, a)
		label := c.at(Radius+sw/2+c.cfg.StatLabelOffset, a)
		c.add(LayerMarkers, Line{
			X1: inner.X, Y1: inner.Y, X2: outer.X, Y2: outer.Y,
			Stroke:      col,
			StrokeWidth: c.cfg.MarkersWidth,
		})
		c.add(LayerMarkers, Text{
			X: label.X, Y: label.Y,
			Content:  FormatNumber(val, c.cfg.StatDecimals, c.cfg.DecimalSeparator),
			Anchor:   "middle",
			Baseline: "middle",
			FontSize: c.cfg.TickFontSize,
			Fill:     col,
		})
	}
}

func (c *composer) needle(entity string, angle float64, fill string, opacity float64) Needle {
	length := Radius + c.cfg.StrokeWidth/2
	base := Radius * needleBaseRatio
	return Needle{
		Entity: entity,
		CX:     CenterX,
		CY:     CenterY,
		Angle:  angle,
		Points: []geometry.Point{
			{X: 0, Y: -length},
			{X: -needleWidth / 2, Y: -base},
			{X: needleWidth / 2, Y: -base},
		},
		Fill:    fill,
		Opacity: opacity,
	}
}

func (c *composer) needles() {
	for _, n := range c.cfg.Needles {
		v, ok := c.lookup.Lookup(n.Entity)
		if !ok || v.State == "" {
			continue
		}
		r := v.Reading()
		if !r.Numeric {
			continue
		}

		color := n.Color
		if color == "" {
			color = defaultNeedleColor
		}
		opacity := defaultNeedleOpacity
		if n.Opacity != nil {
			opacity = *n.Opacity
		}

		a := c.angle(r.Number)
		c.add(LayerNeedles, c.needle(n.Entity, a, color, opacity))

		if !n.ShowValue {
			continue
		}
		dec := c.cfg.StatDecimals
		if n.Decimal != nil {
			dec = *n.Decimal
		}
		label := c.at(Radius+c.cfg.StrokeWidth/2+c.cfg.NeedleLabelOffset, a)
		c.add(LayerNeedles, Text{
			X: label.X, Y: label.Y,
			Content:  FormatNumber(r.Number, dec, c.cfg.DecimalSeparator),
			Anchor:   "middle",
			Baseline: "middle",
			FontSize: c.cfg.TickFontSize,
			Fill:     color,
		})
	}
}

// needleInfo lists "label: value" for needles that show their value. Rows
// keep the position of the needle in the configuration, so skipped needles
// leave a gap.
func (c *composer) needleInfo() {
	for i, n := range c.cfg.Needles {
		if !n.ShowValue {
			continue
		}
		val, ok := state.Numeric(c.lookup, n.Entity)
		if !ok {
			continue
		}
		label := n.Label
		if label == "" {
			label = n.Entity
		}
		color := n.Color
		if color == "" {
			color = defaultNeedleColor
		}
		dec := defaultInfoDecimals
		if n.Decimal != nil {
			dec = *n.Decimal
		}
		c.add(LayerNeedleInfo, Text{
			X:        -10,
			Y:        10 + float64(i)*infoLineHeight,
			Content:  label + ": " + FormatNumber(val, dec, c.cfg.DecimalSeparator),
			Anchor:   "start",
			FontSize: c.cfg.TickFontSize,
			Fill:     color,
		})
	}
}

func (c *composer) texts(value, unit string) {
	content := value
	if unit != "" {
		content += " " + unit
	}
	c.add(LayerText, Text{
		X: CenterX, Y: c.cfg.TitleFontSize * 0.75,
		Content:  c.cfg.Name,
		Anchor:   "middle",
		FontSize: c.cfg.TitleFontSize,
		Bold:     true,
	})
	c.add(LayerText, Text{
		X: CenterX, Y: CenterY + 10,
		Content:  content,
		Anchor:   "middle",
		FontSize: c.cfg.ValueFontSize,
		Bold:     true,
	})

	left := c.at(Radius, -100)
	right := c.at(Radius, 100)
	c.add(LayerText, Text{
		X: left.X, Y: left.Y,
		Content:  c.cfg.LeftText,
		Anchor:   "middle",
		FontSize: c.cfg.RLTextFontSize,
	})
	c.add(LayerText, Text{
		X: right.X, Y: right.Y,
		Content:  c.cfg.RightText,
		Anchor:   "middle",
		FontSize: c.cfg.RLTextFontSize,
	})
}
