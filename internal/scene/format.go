package scene

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const maxDecimals = 20

// FormatNumber rounds v to decimals places. A "," separator replaces the
// decimal point.
func FormatNumber(v float64, decimals int, separator string) string {
	decimals = min(max(decimals, 0), maxDecimals)
	s := fixed(v, decimals)
	if separator == "," {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// fixed renders v with exactly decimals places. Exact ties round away from
// zero; everything else rounds to the nearest representable digit string.
func fixed(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	return new(big.Rat).SetFloat64(v).FloatString(decimals)
}

// tickLabel renders integral samples without a fraction and everything
// else with one decimal place.
func tickLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fixed(v, 1)
}
