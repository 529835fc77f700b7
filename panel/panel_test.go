package panel

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBPP = `[HEADER]
PAN=LPX|800|0|0|0|0
PAN=LPY|400|0|0|0|0
PAN=LPZ|18|0|0|0|0
[PROGRAM]
@ BV, "", 1, 0, 32, 0, 0, 100, 50, 0, 12, 5, 0
@ BV,,,1,2,3,4,5,6,7,8,9,10,11
@ BV,"a,b",1,2,3,4,5,300,"75",9,15,8
@ BV,1,2
@ ROUT, "", 1, 0, 32, 0, 0, 100, 50, 0, 12, 5
  @ BV, indented lines are not holes
`

const sampleCIX = `BEGIN ID CID3
	REL= 5.0
END ID

BEGIN MAINDATA
	LPX=800
	LPY=400.5
	LPZ=18
END MAINDATA

BEGIN MACRO
	NAME=BV
	PARAM,NAME=LAY,VALUE="Layer 0"
	PARAM,NAME=X,VALUE=100
	PARAM,NAME=Y,VALUE=50
	PARAM,NAME=DP,VALUE=12
	PARAM,NAME=DIA,VALUE=5
END MACRO

BEGIN MACRO
	NAME=BV
	PARAM,NAME=X,VALUE=\"200\"
	PARAM,NAME=Y,VALUE="60.5"
	PARAM,NAME=DIA,VALUE=8
END MACRO

BEGIN MACRO
	NAME=ROUTG
	PARAM,NAME=X,VALUE=1
END MACRO
`

const sampleMPR = `[H
VERSION="4.0 Alpha"
_BSX=800.000000
_BSY=400.000000
_BSZ=18.000000

<100 \WerkStck\
LA="800"
BR="400"

<102 \BohrVert\
XA="100"
YA="50"
TI="12"
DU="5"
BM="LS"

<102 \BohrVert\
XA="x-20"
YA="30"
DU="8"

<105 \Konturfraesen\
XA="1"
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Format
	}{
		{name: "bpp", file: "door.bpp", want: FormatBPP},
		{name: "bpp upper case", file: "DOOR.BPP", want: FormatBPP},
		{name: "cix", file: "side.cix", want: FormatCIX},
		{name: "mpr", file: "back.mpr", want: FormatMPR},
		{name: "unknown falls back to default", file: "notes.txt", want: FormatMPR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.file))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.mpr"))
	assert.True(t, Supported("a.bpp"))
	assert.True(t, Supported("/tmp/x/a.cix"))
	assert.False(t, Supported("DOOR.MPR"))
	assert.False(t, Supported("a.Cix"))
	assert.False(t, Supported("a.txt"))
	assert.False(t, Supported("mpr"))
}

func TestParseBPP(t *testing.T) {
	p, err := Parse("door.bpp", []byte(sampleBPP))
	require.NoError(t, err)

	assert.Equal(t, "door.bpp", p.Name)
	assert.Equal(t, FormatBPP, p.Format)
	assert.Equal(t, 400.0, p.Width)
	assert.Equal(t, 800.0, p.Height)
	require.Len(t, p.Holes, 4)

	assert.Equal(t, Hole{X: 100, Y: 50, Depth: 12, Diameter: 5}, p.Holes[0])

	// Empty fields between commas are dropped before indexing.
	assert.Equal(t, Hole{X: 7, Y: 8, Depth: 10, Diameter: 11}, p.Holes[1])

	// Quoted fields may contain commas and lose their quotes.
	assert.Equal(t, Hole{X: 300, Y: 75, Depth: 15, Diameter: 8}, p.Holes[2])

	short := p.Holes[3]
	assert.True(t, math.IsNaN(short.X))
	assert.True(t, math.IsNaN(short.Diameter))
	assert.False(t, short.Valid())

	assert.Len(t, p.ValidHoles(), 3)
	assert.Equal(t, 1, p.InvalidHoleCount())
}

func TestParseBPPIntegerDimensions(t *testing.T) {
	p, err := Parse("door.bpp", []byte("PAN=LPX|800.7|0\nPAN=LPY|400.5|0\n"))
	require.NoError(t, err)
	assert.Equal(t, 400.0, p.Width)
	assert.Equal(t, 800.0, p.Height)
}

func TestParseCIX(t *testing.T) {
	p, err := Parse("side.cix", []byte(sampleCIX))
	require.NoError(t, err)

	assert.Equal(t, 400.5, p.Width)
	assert.Equal(t, 800.0, p.Height)
	require.Len(t, p.Holes, 2)

	assert.Equal(t, Hole{X: 100, Y: 50, Depth: 12, Diameter: 5}, p.Holes[0])

	second := p.Holes[1]
	assert.Equal(t, 200.0, second.X, "escaped quotes are removed")
	assert.True(t, math.IsNaN(second.Y), "a plain quoted value is not a number")
	assert.Equal(t, 8.0, second.Diameter)
	assert.True(t, math.IsNaN(second.Depth), "missing DP is NaN")
	assert.False(t, second.Valid())
	assert.Len(t, p.ValidHoles(), 1)
}

func TestParseMPR(t *testing.T) {
	p, err := Parse("back.mpr", []byte(sampleMPR))
	require.NoError(t, err)

	assert.Equal(t, 400.0, p.Width)
	assert.Equal(t, 800.0, p.Height)
	require.Len(t, p.Holes, 2)

	first := p.Holes[0]
	assert.Equal(t, 100.0, first.X)
	assert.Equal(t, 50.0, first.Y)
	assert.Equal(t, 5.0, first.Diameter)
	assert.Equal(t, 12.0, first.Depth)
	assert.Contains(t, first.Params, "BM")
	assert.True(t, math.IsNaN(first.Params["BM"]))

	// Formula values do not start with a number.
	second := p.Holes[1]
	assert.True(t, math.IsNaN(second.X))
	assert.True(t, math.IsNaN(second.Depth))
	assert.False(t, second.Valid())
}

func TestParseMissingDimensions(t *testing.T) {
	for _, name := range []string{"a.bpp", "a.cix", "a.mpr"} {
		t.Run(name, func(t *testing.T) {
			p, err := Parse(name, []byte("nothing useful here"))
			require.NoError(t, err)
			assert.Zero(t, p.Width)
			assert.Zero(t, p.Height)
			assert.NotNil(t, p.Holes)
			assert.Empty(t, p.Holes)
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("notes.txt", []byte("BSX=1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "12", want: 12},
		{in: "  12.5mm", want: 12.5},
		{in: "-3", want: -3},
		{in: ".5", want: 0.5},
		{in: "1e2x", want: 100},
		{in: "7.", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, leadingFloat(tt.in))
		})
	}

	assert.True(t, math.IsNaN(leadingFloat("")))
	assert.True(t, math.IsNaN(leadingFloat("x-20")))
	assert.True(t, math.IsNaN(leadingFloat("-")))
	assert.True(t, math.IsNaN(leadingFloat("infinity")))

	assert.True(t, math.IsInf(leadingFloat("Infinity"), 1))
	assert.True(t, math.IsInf(leadingFloat(" -Infinity mm"), -1))
	assert.True(t, math.IsInf(leadingFloat("1e999"), 1))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "door", (&Panel{Name: "door.mpr"}).DisplayName())
	assert.Equal(t, "door.left", (&Panel{Name: "door.left.cix"}).DisplayName())
	assert.Equal(t, "door", (&Panel{Name: "door"}).DisplayName())
}

func TestHoleJSON(t *testing.T) {
	h := Hole{X: 1, Y: math.NaN(), Diameter: 5, Depth: 2, Params: map[string]float64{"XA": 1, "BM": math.NaN()}}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":null,"diameter":5,"depth":2,"valid":false,"params":{"XA":1}}`, string(data))
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.bpp":     sampleBPP,
		"a.mpr":     sampleMPR,
		"UPPER.MPR": sampleMPR,
		"c.cix":     sampleCIX,
		"notes.txt": "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mpr"), 0755))

	paths, err := CollectPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, paths, 3)

	panels, err := ParseFiles(context.Background(), append(paths, filepath.Join(dir, "notes.txt")))
	require.NoError(t, err)
	require.Len(t, panels, 3)
	assert.Equal(t, "a.mpr", panels[0].Name)
	assert.Equal(t, "b.bpp", panels[1].Name)
	assert.Equal(t, "c.cix", panels[2].Name)
}

func TestParseFilesMissing(t *testing.T) {
	_, err := ParseFiles(context.Background(), []string{filepath.Join(t.TempDir(), "gone.mpr")})
	assert.Error(t, err)
}
