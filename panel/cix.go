package panel

import (
	"math"
	"regexp"
	"strings"
)

var (
	cixWidthRegex  = regexp.MustCompile(`LPY=(\d+(?:\.\d+)?)`)
	cixHeightRegex = regexp.MustCompile(`LPX=(\d+(?:\.\d+)?)`)
	cixMacroRegex  = regexp.MustCompile(`BEGIN MACRO|END MACRO`)

	cixParamRegex = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range []string{"X", "Y", "DP", "DIA"} {
		cixParamRegex[name] = regexp.MustCompile(`PARAM,NAME=` + name + `,VALUE=([^\n]+)`)
	}
}

func parseCIX(text string) (width, height float64, holes []Hole) {
	width = dimension(cixWidthRegex, text)
	height = dimension(cixHeightRegex, text)

	for _, block := range cixMacroRegex.Split(text, -1) {
		if !strings.Contains(block, "NAME=BV") {
			continue
		}
		holes = append(holes, Hole{
			X:        cixParam(block, "X"),
			Y:        cixParam(block, "Y"),
			Depth:    cixParam(block, "DP"),
			Diameter: cixParam(block, "DIA"),
		})
	}
	return width, height, holes
}

func cixParam(block, name string) float64 {
	m := cixParamRegex[name].FindStringSubmatch(block)
	if m == nil {
		return math.NaN()
	}
	// Escaped quotes are dropped; a plain quoted value is not a number.
	return leadingFloat(strings.TrimSpace(strings.ReplaceAll(m[1], `\"`, "")))
}
