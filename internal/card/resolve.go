package card

import (
	"maps"
	"slices"
	"strings"
)

// UserConfig holds the fields a user may set on a card. Nil pointers and
// empty strings mean "not set" and leave the lower layer in place.
type UserConfig struct {
	Entity string   `yaml:"entity"`
	Name   string   `yaml:"name"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`

	Gradient map[string]string `yaml:"gradient"`
	Needles  []Needle          `yaml:"needles"`

	MinEntity string `yaml:"min_entity"`
	MaxEntity string `yaml:"max_entity"`
	AvgEntity string `yaml:"avg_entity"`
	MinColor  string `yaml:"min_color"`
	MaxColor  string `yaml:"max_color"`
	AvgColor  string `yaml:"avg_color"`

	StrokeWidth   *float64 `yaml:"strokeWidth"`
	NeedleColor   string   `yaml:"needle_color"`
	NeedleOpacity *float64 `yaml:"needle_opacity"`

	TitleFontSize  *float64 `yaml:"titel_font_size"`
	ValueFontSize  *float64 `yaml:"value_font_size"`
	RLTextFontSize *float64 `yaml:"rltext_font_size"`
	TickFontSize   *float64 `yaml:"tick_font_size"`

	TicksCount      *int     `yaml:"ticks_count"`
	TickColor       string   `yaml:"tick_color"`
	TickWidth       *float64 `yaml:"tick_width"`
	TickStrokeInner *float64 `yaml:"tick_stroke_inner"`
	TickStrokeOuter *float64 `yaml:"tick_stroke_outer"`

	DecimalSeparator string   `yaml:"decimal_separator"`
	Decimals         *int     `yaml:"decimals"`
	StatDecimals     *int     `yaml:"stat_decimals"`
	MarkersWidth     *float64 `yaml:"markers_width"`

	TickLabelOffset   *float64 `yaml:"tick_label_offset"`
	StatLabelOffset   *float64 `yaml:"stat_label_offset"`
	NeedleLabelOffset *float64 `yaml:"needle_label_offset"`

	LeftText  string `yaml:"leftText"`
	RightText string `yaml:"rightText"`

	TapAction       *Action `yaml:"tap_action"`
	DoubleTapAction *Action `yaml:"double_tap_action"`
	HoldAction      *Action `yaml:"hold_action"`
}

// Resolve merges defaults, the default tap action and user, in that order.
// Nested values (gradient, needles, actions) are replaced wholesale, never
// merged. The result shares no memory with either input.
func Resolve(defaults Config, user UserConfig) (Config, error) {
	if strings.TrimSpace(user.Entity) == "" {
		return Config{}, ErrMissingEntity
	}

	cfg := defaults
	cfg.Gradient = maps.Clone(defaults.Gradient)
	cfg.Needles = cloneNeedles(defaults.Needles)
	cfg.TapAction = cloneAction(&DefaultTapAction)
	cfg.DoubleTapAction = cloneAction(defaults.DoubleTapAction)
	cfg.HoldAction = cloneAction(defaults.HoldAction)

	cfg.Entity = user.Entity
	setString(&cfg.Name, user.Name)
	setValue(&cfg.Min, user.Min)
	setValue(&cfg.Max, user.Max)

	if user.Gradient != nil {
		cfg.Gradient = maps.Clone(user.Gradient)
	}
	if user.Needles != nil {
		cfg.Needles = cloneNeedles(user.Needles)
	}

	setString(&cfg.MinEntity, user.MinEntity)
	setString(&cfg.MaxEntity, user.MaxEntity)
	setString(&cfg.AvgEntity, user.AvgEntity)
	setString(&cfg.MinColor, user.MinColor)
	setString(&cfg.MaxColor, user.MaxColor)
	setString(&cfg.AvgColor, user.AvgColor)

	setValue(&cfg.StrokeWidth, user.StrokeWidth)
	setString(&cfg.NeedleColor, user.NeedleColor)
	setValue(&cfg.NeedleOpacity, user.NeedleOpacity)

	setValue(&cfg.TitleFontSize, user.TitleFontSize)
	setValue(&cfg.ValueFontSize, user.ValueFontSize)
	setValue(&cfg.RLTextFontSize, user.RLTextFontSize)
	setValue(&cfg.TickFontSize, user.TickFontSize)

	setValue(&cfg.TicksCount, user.TicksCount)
	setString(&cfg.TickColor, user.TickColor)
	setValue(&cfg.TickWidth, user.TickWidth)
	setValue(&cfg.TickStrokeInner, user.TickStrokeInner)
	setValue(&cfg.TickStrokeOuter, user.TickStrokeOuter)

	setString(&cfg.DecimalSeparator, user.DecimalSeparator)
	setValue(&cfg.Decimals, user.Decimals)
	setValue(&cfg.StatDecimals, user.StatDecimals)
	setValue(&cfg.MarkersWidth, user.MarkersWidth)

	setValue(&cfg.TickLabelOffset, user.TickLabelOffset)
	setValue(&cfg.StatLabelOffset, user.StatLabelOffset)
	setValue(&cfg.NeedleLabelOffset, user.NeedleLabelOffset)

	setString(&cfg.LeftText, user.LeftText)
	setString(&cfg.RightText, user.RightText)

	if user.TapAction != nil {
		cfg.TapAction = cloneAction(user.TapAction)
	}
	if user.DoubleTapAction != nil {
		cfg.DoubleTapAction = cloneAction(user.DoubleTapAction)
	}
	if user.HoldAction != nil {
		cfg.HoldAction = cloneAction(user.HoldAction)
	}

	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setValue[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func cloneAction(a *Action) *Action {
	if a == nil {
		return nil
	}
	c := *a
	c.Extra = maps.Clone(a.Extra)
	return &c
}

func cloneNeedles(in []Needle) []Needle {
	if in == nil {
		return nil
	}
	out := slices.Clone(in)
	for i, n := range out {
		if n.Opacity != nil {
			o := *n.Opacity
			out[i].Opacity = &o
		}
		if n.Decimal != nil {
			d := *n.Decimal
			out[i].Decimal = &d
		}
	}
	return out
}
