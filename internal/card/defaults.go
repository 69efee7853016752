package card

var defaultStatColors = map[Stat]string{
	StatMin: "blue",
	StatMax: "darkred",
	StatAvg: "darkorange",
}

// DefaultTapAction is bound to a tap unless the user overrides it.
var DefaultTapAction = Action{Action: "more-info"}

// Defaults returns the built-in layer of the configuration.
func Defaults() Config {
	return Config{
		Min: 0,
		Max: 100,

		StrokeWidth:   30,
		NeedleColor:   "black",
		NeedleOpacity: 0.7,

		TitleFontSize:  15,
		ValueFontSize:  18,
		RLTextFontSize: 12,
		TickFontSize:   10,

		TicksCount:      10,
		TickColor:       "rgb(120, 120, 120)",
		TickWidth:       1,
		TickStrokeInner: 0.5,
		TickStrokeOuter: 0.2,

		DecimalSeparator: ",",
		Decimals:         3,
		StatDecimals:     1,
		MarkersWidth:     2,

		MinColor: defaultStatColors[StatMin],
		MaxColor: defaultStatColors[StatMax],
		AvgColor: defaultStatColors[StatAvg],

		TickLabelOffset:   12,
		StatLabelOffset:   10,
		NeedleLabelOffset: 18,
	}
}
