package panel

import (
	"math"
)

// Display constants shared by the renderers.
const (
	// CardHeight is the default height in pixels a panel is scaled to on a card.
	CardHeight = 600.0
	// CardOffset is the margin between the card canvas edge and the panel.
	CardOffset = 50.0
	// CardPadding is added to the scaled panel size to get the card canvas size.
	CardPadding = 140.0

	// DetailOffset is the margin around the unscaled panel in the detail view.
	DetailOffset = 50.0
	// DetailPadding is added to the panel size to get the detail viewBox.
	DetailPadding = 100.0

	MinZoom     = 0.5
	MaxZoom     = 5.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0

	// Thickness of the panel box in the 3D scene.
	Thickness = 18.0
	// HoleZ is the z coordinate of every hole centre in the 3D scene.
	HoleZ = 2.5
	// DefaultHoleDepth is used for holes with no usable depth.
	DefaultHoleDepth = 6.0
	// FallbackSize replaces non-positive panel dimensions in the 3D scene.
	FallbackSize = 100.0
)

// Point is a 2D position in canvas units.
type Point struct {
	X, Y float64
}

// Layout maps panel millimetres onto a drawing canvas.
type Layout struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	// PanelWidth and PanelHeight are the drawn panel rectangle size.
	PanelWidth  float64
	PanelHeight float64
	// DisplayHeight is the nominal height used to place the height label.
	DisplayHeight float64

	CanvasWidth  float64
	CanvasHeight float64
}

// CardLayout scales the panel so its longer side is cardHeight pixels. A
// panel with no size uses scale 1.
func CardLayout(p *Panel, cardHeight float64) Layout {
	if cardHeight <= 0 {
		cardHeight = CardHeight
	}
	scale := 1.0
	if longest := math.Max(p.Width, p.Height); longest > 0 {
		scale = cardHeight / longest
	}
	displayWidth := p.Width * scale
	return Layout{
		Scale:         scale,
		OffsetX:       CardOffset,
		OffsetY:       CardOffset,
		PanelWidth:    displayWidth,
		PanelHeight:   p.Height * scale,
		DisplayHeight: cardHeight,
		CanvasWidth:   displayWidth + CardPadding,
		CanvasHeight:  cardHeight + CardPadding,
	}
}

// DetailLayout draws the panel at 1 unit per millimetre.
func DetailLayout(p *Panel) Layout {
	return Layout{
		Scale:         1,
		OffsetX:       DetailOffset,
		OffsetY:       DetailOffset,
		PanelWidth:    p.Width,
		PanelHeight:   p.Height,
		DisplayHeight: p.Height,
		CanvasWidth:   p.Width + DetailPadding,
		CanvasHeight:  p.Height + DetailPadding,
	}
}

// HoleCenter places a hole on the canvas. The hole's Y runs horizontally and
// its X vertically.
func (l Layout) HoleCenter(h Hole) Point {
	return Point{
		X: h.Y*l.Scale + l.OffsetX,
		Y: h.X*l.Scale + l.OffsetY,
	}
}

// HoleRadius returns the drawn radius of a hole.
func (l Layout) HoleRadius(h Hole) float64 {
	return h.Diameter / 2 * l.Scale
}

// ClampZoom limits a zoom factor to the supported range and rounds it to
// one decimal so repeated steps do not drift.
func ClampZoom(z float64) float64 {
	z = math.Round(z*10) / 10
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// SafeSize returns the panel size with non-positive dimensions replaced.
func SafeSize(p *Panel) (width, height float64) {
	width, height = p.Width, p.Height
	if !(width > 0) {
		width = FallbackSize
	}
	if !(height > 0) {
		height = FallbackSize
	}
	return width, height
}

// Vec3 is a point in the 3D scene.
type Vec3 struct {
	X, Y, Z float64
}

// ScenePosition maps a hole onto the 3D scene, where the panel is centred on
// the origin with its width along x and its height along y.
func ScenePosition(p *Panel, h Hole) Vec3 {
	width, height := SafeSize(p)
	return Vec3{
		X: h.Y - width/2,
		Y: -(h.X - height/2),
		Z: HoleZ,
	}
}

// SceneDepth returns the cylinder length used for a hole. Holes without a
// positive depth use fallback, or DefaultHoleDepth when fallback is not
// positive either.
func SceneDepth(h Hole, fallback float64) float64 {
	if math.IsNaN(h.Depth) || h.Depth <= 0 {
		if fallback > 0 {
			return fallback
		}
		return DefaultHoleDepth
	}
	return h.Depth
}
