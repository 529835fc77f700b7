package panel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var leadingFloatRegex = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`)

// leadingFloat reads the longest numeric prefix of s after skipping leading
// whitespace. Trailing garbage is ignored. It returns NaN when s does not
// start with a number. "Infinity" and out of range exponents read as ±Inf.
func leadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := leadingFloatRegex.FindString(s)
	if m == "" {
		return math.NaN()
	}
	// The only possible error is a range error, which still yields ±Inf.
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

// dimension reads the first capture group of re in text, defaulting to zero
// when the marker is missing.
func dimension(re *regexp.Regexp, text string) float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v := leadingFloat(m[1])
	if math.IsNaN(v) {
		return 0
	}
	return v
}
