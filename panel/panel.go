// Package panel extracts panel geometry from CNC/CAD export files.
//
// Three formats are understood, distinguished by file extension: ".bpp",
// ".cix" and the default XML-like ".mpr" format. Parsing is lenient: fields
// that cannot be read become NaN (holes) or zero (panel dimensions) instead
// of failing the whole file.
package panel

import (
	"encoding/json"
	"errors"
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrUnsupportedFormat is returned when a file's extension is not one of the known formats.
var ErrUnsupportedFormat = errors.New("unsupported panel format")

// Format identifies the export format of a panel file.
type Format int

const (
	// FormatMPR is the default XML-like format (BohrVert blocks).
	FormatMPR Format = iota
	// FormatBPP is the pipe/comma delimited format with "@ BV" hole lines.
	FormatBPP
	// FormatCIX is the macro block format with PARAM lines.
	FormatCIX
)

// String returns the file extension of the format without the dot.
func (f Format) String() string {
	switch f {
	case FormatBPP:
		return "bpp"
	case FormatCIX:
		return "cix"
	default:
		return "mpr"
	}
}

// Extensions lists the file extensions accepted by every intake path.
var Extensions = []string{".mpr", ".bpp", ".cix"}

// Supported reports whether the file name carries one of the known
// extensions. The match is case-sensitive: "DOOR.MPR" is not a panel file.
func Supported(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DetectFormat returns the format for a file name, ignoring case. Anything
// that is not ".bpp" or ".cix" is treated as the default format.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bpp":
		return FormatBPP
	case ".cix":
		return FormatCIX
	default:
		return FormatMPR
	}
}

// Hole is a drilled feature on a panel. X runs along the panel height and Y
// along the panel width. Any field may be NaN when it could not be parsed.
type Hole struct {
	X        float64
	Y        float64
	Diameter float64
	Depth    float64

	// Params holds every numeric attribute found in the hole block. Only
	// populated for the default format.
	Params map[string]float64
}

// Valid reports whether the hole can be drawn.
func (h Hole) Valid() bool {
	return !math.IsNaN(h.X) && !math.IsNaN(h.Y) && !math.IsNaN(h.Diameter)
}

type holeJSON struct {
	X        *float64           `json:"x"`
	Y        *float64           `json:"y"`
	Diameter *float64           `json:"diameter"`
	Depth    *float64           `json:"depth"`
	Valid    bool               `json:"valid"`
	Params   map[string]float64 `json:"params,omitempty"`
}

// MarshalJSON encodes NaN fields as null.
func (h Hole) MarshalJSON() ([]byte, error) {
	var params map[string]float64
	for k, v := range h.Params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if params == nil {
			params = make(map[string]float64, len(h.Params))
		}
		params[k] = v
	}
	return json.Marshal(holeJSON{
		X:        finite(h.X),
		Y:        finite(h.Y),
		Diameter: finite(h.Diameter),
		Depth:    finite(h.Depth),
		Valid:    h.Valid(),
		Params:   params,
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Panel is a rectangular sheet with its drilled holes. Dimensions are millimetres.
type Panel struct {
	Name   string  `json:"name"`
	Format Format  `json:"-"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Holes  []Hole  `json:"holes"`
}

var extRegex = regexp.MustCompile(`\.\w+$`)

// DisplayName returns the file name without its extension.
func (p *Panel) DisplayName() string {
	return extRegex.ReplaceAllString(p.Name, "")
}

// ValidHoles returns the holes that can be drawn, in file order.
func (p *Panel) ValidHoles() []Hole {
	holes := make([]Hole, 0, len(p.Holes))
	for _, h := range p.Holes {
		if h.Valid() {
			holes = append(holes, h)
		}
	}
	return holes
}

// InvalidHoleCount returns how many holes will be skipped by the renderers.
func (p *Panel) InvalidHoleCount() int {
	return len(p.Holes) - len(p.ValidHoles())
}
