package panel

import (
	"math"
	"regexp"
	"strings"
)

var (
	// Only the integer part of a BPP dimension is read.
	bppWidthRegex  = regexp.MustCompile(`PAN=LPY\|(\d+)`)
	bppHeightRegex = regexp.MustCompile(`PAN=LPX\|(\d+)`)
	bppFieldRegex  = regexp.MustCompile(`(?:"[^"]*"|[^,])+`)
)

// Field positions on an "@ BV" line.
const (
	bppFieldX        = 7
	bppFieldY        = 8
	bppFieldDepth    = 10
	bppFieldDiameter = 11
)

func parseBPP(text string) (width, height float64, holes []Hole) {
	width = dimension(bppWidthRegex, text)
	height = dimension(bppHeightRegex, text)

	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "@ BV") {
			continue
		}
		fields := splitBPPFields(line)
		holes = append(holes, Hole{
			X:        bppField(fields, bppFieldX),
			Y:        bppField(fields, bppFieldY),
			Depth:    bppField(fields, bppFieldDepth),
			Diameter: bppField(fields, bppFieldDiameter),
		})
	}
	return width, height, holes
}

// splitBPPFields splits a hole line into fields. A field is a run of quoted
// strings or non-comma characters, so empty fields between consecutive
// commas do not count.
func splitBPPFields(line string) []string {
	raw := bppFieldRegex.FindAllString(line, -1)
	fields := make([]string, len(raw))
	for i, f := range raw {
		f = strings.TrimPrefix(f, `"`)
		f = strings.TrimSuffix(f, `"`)
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func bppField(fields []string, i int) float64 {
	if i >= len(fields) {
		return math.NaN()
	}
	return leadingFloat(fields[i])
}
