package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardLayout(t *testing.T) {
	tests := []struct {
		name         string
		panel        Panel
		scale        float64
		canvasWidth  float64
		canvasHeight float64
		panelHeight  float64
	}{
		{
			name:         "portrait panel scales by height",
			panel:        Panel{Width: 400, Height: 800},
			scale:        0.75,
			canvasWidth:  300 + CardPadding,
			canvasHeight: 600 + CardPadding,
			panelHeight:  600,
		},
		{
			name:         "landscape panel scales by width",
			panel:        Panel{Width: 1200, Height: 300},
			scale:        0.5,
			canvasWidth:  600 + CardPadding,
			canvasHeight: 600 + CardPadding,
			panelHeight:  150,
		},
		{
			name:         "zero size falls back to scale 1",
			panel:        Panel{},
			scale:        1,
			canvasWidth:  CardPadding,
			canvasHeight: 600 + CardPadding,
			panelHeight:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CardLayout(&tt.panel, CardHeight)
			assert.InDelta(t, tt.scale, l.Scale, 1e-9)
			assert.InDelta(t, tt.canvasWidth, l.CanvasWidth, 1e-9)
			assert.InDelta(t, tt.canvasHeight, l.CanvasHeight, 1e-9)
			assert.InDelta(t, tt.panelHeight, l.PanelHeight, 1e-9)
			assert.False(t, math.IsInf(l.Scale, 0))
		})
	}
}

func TestCardLayoutHolePlacement(t *testing.T) {
	p := &Panel{Width: 400, Height: 800}
	l := CardLayout(p, CardHeight)
	h := Hole{X: 100, Y: 40, Diameter: 8}

	c := l.HoleCenter(h)
	assert.InDelta(t, 40*0.75+50, c.X, 1e-9)
	assert.InDelta(t, 100*0.75+50, c.Y, 1e-9)
	assert.InDelta(t, 3.0, l.HoleRadius(h), 1e-9)
}

func TestDetailLayout(t *testing.T) {
	p := &Panel{Width: 400, Height: 800}
	l := DetailLayout(p)
	assert.Equal(t, 500.0, l.CanvasWidth)
	assert.Equal(t, 900.0, l.CanvasHeight)
	assert.Equal(t, Point{X: 90, Y: 150}, l.HoleCenter(Hole{X: 100, Y: 40}))
	assert.Equal(t, 4.0, l.HoleRadius(Hole{Diameter: 8}))
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 0.5, ClampZoom(0.1))
	assert.Equal(t, 5.0, ClampZoom(7))
	assert.Equal(t, 1.3, ClampZoom(1.0+ZoomStep+ZoomStep+ZoomStep))
	assert.Equal(t, 1.0, ClampZoom(DefaultZoom))
}

func TestScenePosition(t *testing.T) {
	p := &Panel{Width: 400, Height: 800}
	pos := ScenePosition(p, Hole{X: 100, Y: 50})
	assert.Equal(t, Vec3{X: -150, Y: 300, Z: HoleZ}, pos)

	// Non-positive dimensions use the fallback size.
	pos = ScenePosition(&Panel{}, Hole{X: 0, Y: 0})
	assert.Equal(t, Vec3{X: -50, Y: 50, Z: HoleZ}, pos)
}

func TestSceneDepth(t *testing.T) {
	assert.Equal(t, 12.0, SceneDepth(Hole{Depth: 12}, 0))
	assert.Equal(t, DefaultHoleDepth, SceneDepth(Hole{Depth: 0}, 0))
	assert.Equal(t, DefaultHoleDepth, SceneDepth(Hole{Depth: math.NaN()}, -1))
	assert.Equal(t, 9.0, SceneDepth(Hole{Depth: -3}, 9))
}
