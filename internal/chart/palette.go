package chart

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FallbackColor is used for colours that cannot be parsed.
const FallbackColor = lipgloss.Color("#888888")

// cssNames covers the named colours gauge cards commonly use.
var cssNames = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"gray":        "#808080",
	"grey":        "#808080",
	"darkgray":    "#a9a9a9",
	"lightgray":   "#d3d3d3",
	"silver":      "#c0c0c0",
	"red":         "#ff0000",
	"darkred":     "#8b0000",
	"crimson":     "#dc143c",
	"firebrick":   "#b22222",
	"tomato":      "#ff6347",
	"orange":      "#ffa500",
	"darkorange":  "#ff8c00",
	"coral":       "#ff7f50",
	"gold":        "#ffd700",
	"yellow":      "#ffff00",
	"khaki":       "#f0e68c",
	"green":       "#008000",
	"darkgreen":   "#006400",
	"lime":        "#00ff00",
	"limegreen":   "#32cd32",
	"olive":       "#808000",
	"teal":        "#008080",
	"cyan":        "#00ffff",
	"aqua":        "#00ffff",
	"turquoise":   "#40e0d0",
	"blue":        "#0000ff",
	"darkblue":    "#00008b",
	"navy":        "#000080",
	"royalblue":   "#4169e1",
	"steelblue":   "#4682b4",
	"skyblue":     "#87ceeb",
	"lightblue":   "#add8e6",
	"dodgerblue":  "#1e90ff",
	"purple":      "#800080",
	"violet":      "#ee82ee",
	"magenta":     "#ff00ff",
	"fuchsia":     "#ff00ff",
	"indigo":      "#4b0082",
	"pink":        "#ffc0cb",
	"hotpink":     "#ff69b4",
	"brown":       "#a52a2a",
	"chocolate":   "#d2691e",
	"sienna":      "#a0522d",
	"maroon":      "#800000",
	"salmon":      "#fa8072",
	"yellowgreen": "#9acd32",
}

// ParseColor converts a CSS colour (#rgb, #rrggbb, rgb(), rgba() or a
// common colour name) into a colorful.Color.
func ParseColor(css string) (colorful.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(css))
	if hex, ok := cssNames[s]; ok {
		s = hex
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		open := strings.IndexByte(s, '(')
		body := strings.TrimSuffix(s[open+1:], ")")
		parts := strings.Split(body, ",")
		if len(parts) < 3 {
			return colorful.Color{}, false
		}
		var rgb [3]float64
		for i := range rgb {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil {
				return colorful.Color{}, false
			}
			rgb[i] = v / 255
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Clamped(), true
	}

	return colorful.Color{}, false
}

// Color returns a terminal colour for a CSS colour, or FallbackColor.
func Color(css string) lipgloss.Color {
	c, ok := ParseColor(css)
	if !ok {
		return FallbackColor
	}
	return lipgloss.Color(c.Hex())
}
