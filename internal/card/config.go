// Package card resolves a gauge card configuration: built-in defaults, the
// default action binding and the user's fields, merged into one immutable
// Config per render.
package card

import (
	"encoding/json"
	"errors"
	"maps"
)

// ErrMissingEntity is returned when the user configuration names no entity.
var ErrMissingEntity = errors.New("you need to define an entity")

// Action is an interaction binding handed to the host untouched.
type Action struct {
	Action string         `yaml:"action" json:"action"`
	Extra  map[string]any `yaml:",inline" json:"-"`
}

// MarshalJSON flattens the extra keys next to "action", the shape the host
// expects.
func (a Action) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(a.Extra)+1)
	maps.Copy(m, a.Extra)
	m["action"] = a.Action
	return json.Marshal(m)
}

// Needle configures a secondary needle.
type Needle struct {
	Entity    string   `yaml:"entity" json:"entity"`
	Color     string   `yaml:"color,omitempty" json:"color,omitempty"`
	Opacity   *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	ShowValue bool     `yaml:"show_value,omitempty" json:"show_value,omitempty"`
	Decimal   *int     `yaml:"decimal,omitempty" json:"decimal,omitempty"`
	Label     string   `yaml:"label,omitempty" json:"label,omitempty"`
}

// Stat identifies one of the statistical markers.
type Stat string

const (
	StatMin Stat = "min"
	StatMax Stat = "max"
	StatAvg Stat = "avg"
)

// Stats lists the markers in drawing order.
var Stats = []Stat{StatMin, StatMax, StatAvg}

// Config is a fully resolved card configuration. Resolve returns a fresh
// value; callers must treat it as read-only.
type Config struct {
	Entity string  `json:"entity"`
	Name   string  `json:"name,omitempty"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	Gradient map[string]string `json:"gradient,omitempty"`
	Needles  []Needle          `json:"needles,omitempty"`

	MinEntity string `json:"min_entity,omitempty"`
	MaxEntity string `json:"max_entity,omitempty"`
	AvgEntity string `json:"avg_entity,omitempty"`
	MinColor  string `json:"min_color"`
	MaxColor  string `json:"max_color"`
	AvgColor  string `json:"avg_color"`

	StrokeWidth   float64 `json:"strokeWidth"`
	NeedleColor   string  `json:"needle_color"`
	NeedleOpacity float64 `json:"needle_opacity"`

	TitleFontSize  float64 `json:"titel_font_size"`
	ValueFontSize  float64 `json:"value_font_size"`
	RLTextFontSize float64 `json:"rltext_font_size"`
	TickFontSize   float64 `json:"tick_font_size"`

	TicksCount      int     `json:"ticks_count"`
	TickColor       string  `json:"tick_color"`
	TickWidth       float64 `json:"tick_width"`
	TickStrokeInner float64 `json:"tick_stroke_inner"`
	TickStrokeOuter float64 `json:"tick_stroke_outer"`

	DecimalSeparator string  `json:"decimal_separator"`
	Decimals         int     `json:"decimals"`
	StatDecimals     int     `json:"stat_decimals"`
	MarkersWidth     float64 `json:"markers_width"`

	TickLabelOffset   float64 `json:"tick_label_offset"`
	StatLabelOffset   float64 `json:"stat_label_offset"`
	NeedleLabelOffset float64 `json:"needle_label_offset"`

	LeftText  string `json:"leftText,omitempty"`
	RightText string `json:"rightText,omitempty"`

	TapAction       *Action `json:"tap_action,omitempty"`
	DoubleTapAction *Action `json:"double_tap_action,omitempty"`
	HoldAction      *Action `json:"hold_action,omitempty"`
}

// StatEntity returns the entity configured for a statistical marker.
func (c Config) StatEntity(s Stat) string {
	switch s {
	case StatMin:
		return c.MinEntity
	case StatMax:
		return c.MaxEntity
	case StatAvg:
		return c.AvgEntity
	}
	return ""
}

// StatColor returns the marker colour for s, falling back to the built-in
// default for that statistic and finally to gray.
func (c Config) StatColor(s Stat) string {
	var col string
	switch s {
	case StatMin:
		col = c.MinColor
	case StatMax:
		col = c.MaxColor
	case StatAvg:
		col = c.AvgColor
	}
	if col != "" {
		return col
	}
	if col = defaultStatColors[s]; col != "" {
		return col
	}
	return "gray"
}

// Entities lists every entity id the configuration reads, primary first.
func (c Config) Entities() []string {
	ids := []string{c.Entity}
	for _, n := range c.Needles {
		if n.Entity != "" {
			ids = append(ids, n.Entity)
		}
	}
	for _, s := range Stats {
		if e := c.StatEntity(s); e != "" {
			ids = append(ids, e)
		}
	}
	return ids
}
