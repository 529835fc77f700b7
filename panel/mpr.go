package panel

import (
	"math"
	"regexp"
	"strings"
)

var (
	mprWidthRegex  = regexp.MustCompile(`BSY=(\d+(?:\.\d+)?)`)
	mprHeightRegex = regexp.MustCompile(`BSX=(\d+(?:\.\d+)?)`)
	mprAttrRegex   = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

func parseMPR(text string) (width, height float64, holes []Hole) {
	width = dimension(mprWidthRegex, text)
	height = dimension(mprHeightRegex, text)

	for _, block := range strings.Split(text, "<") {
		if !strings.Contains(block, "BohrVert") {
			continue
		}
		params := make(map[string]float64)
		for _, m := range mprAttrRegex.FindAllStringSubmatch(block, -1) {
			params[strings.TrimSpace(m[1])] = leadingFloat(m[2])
		}
		holes = append(holes, Hole{
			X:        attr(params, "XA"),
			Y:        attr(params, "YA"),
			Diameter: attr(params, "DU"),
			Depth:    attr(params, "TI"),
			Params:   params,
		})
	}
	return width, height, holes
}

func attr(params map[string]float64, key string) float64 {
	v, ok := params[key]
	if !ok {
		return math.NaN()
	}
	return v
}
