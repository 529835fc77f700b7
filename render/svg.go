// Package render draws parsed panels as SVG diagrams and 3D scenes.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"door-import/panel"
)

// subunits is the number of viewBox units per pixel. svgo only takes integer
// coordinates, so everything is drawn in tenths of a pixel.
const subunits = 10

const (
	panelStyle = "fill:#f9fafb;stroke:black;stroke-width:%d"
	holeStyle  = "fill:red;stroke:black;stroke-width:%d"
	labelStyle = "text-anchor:middle;font-size:%dpx;fill:black"

	cardFontSize   = 20
	detailFontSize = 40
)

// View selects one of the 2D diagrams.
type View string

const (
	ViewCard   View = "card"
	ViewDetail View = "detail"
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewCard, ViewDetail:
		return View(s), nil
	default:
		return "", fmt.Errorf("unknown view %q (want card or detail)", s)
	}
}

// Options tune the SVG output.
type Options struct {
	// CardHeight is the pixel size of the longer panel side on a card.
	CardHeight float64
}

// SVG renders the given view of a panel.
func SVG(w io.Writer, p *panel.Panel, view View, opts Options) error {
	if view == ViewDetail {
		return WriteDetailSVG(w, p)
	}
	return WriteCardSVG(w, p, opts.CardHeight)
}

// CardSVG renders the scaled card diagram of a panel.
func CardSVG(p *panel.Panel) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCardSVG(&buf, p, panel.CardHeight); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetailSVG renders the unscaled detail diagram of a panel.
func DetailSVG(p *panel.Panel) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDetailSVG(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCardSVG writes the card diagram. The longer panel side is scaled to
// cardHeight pixels and labelled with the raw millimetre values.
func WriteCardSVG(w io.Writer, p *panel.Panel, cardHeight float64) error {
	l := panel.CardLayout(p, cardHeight)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	start(canvas, l)
	canvas.Rect(u(l.OffsetX), u(l.OffsetY), u(l.PanelWidth), u(l.PanelHeight), fmt.Sprintf(panelStyle, subunits))

	style := fmt.Sprintf(labelStyle, cardFontSize*subunits)
	canvas.Text(u(l.PanelWidth/2+l.OffsetX), u(l.OffsetY-10), mm(p.Width), style)

	hx, hy := l.OffsetX-10, l.DisplayHeight/2+l.OffsetY
	canvas.Gtransform(rotate(hx, hy))
	canvas.Text(u(hx), u(hy), mm(p.Height), style)
	canvas.Gend()

	holes(canvas, p, l)
	canvas.End()
	return ew.err
}

// WriteDetailSVG writes the detail diagram at one unit per millimetre.
func WriteDetailSVG(w io.Writer, p *panel.Panel) error {
	l := panel.DetailLayout(p)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	start(canvas, l)
	canvas.Rect(u(l.OffsetX), u(l.OffsetY), u(l.PanelWidth), u(l.PanelHeight), fmt.Sprintf(panelStyle, subunits))

	style := fmt.Sprintf(labelStyle, detailFontSize*subunits)
	canvas.Text(u(p.Width/2+l.OffsetX), u(45), "Width: "+mm(p.Width), style)

	hx, hy := 10.0, p.Height/2+l.OffsetY
	canvas.Gtransform(rotate(hx, hy))
	canvas.Text(u(hx), u(hy), "Height: "+mm(p.Height), style)
	canvas.Gend()

	holes(canvas, p, l)
	canvas.End()
	return ew.err
}

func start(canvas *svg.SVG, l panel.Layout) {
	w := int(math.Ceil(math.Max(l.CanvasWidth, 0)))
	h := int(math.Ceil(math.Max(l.CanvasHeight, 0)))
	canvas.Startview(w, h, 0, 0, u(l.CanvasWidth), u(l.CanvasHeight))
}

func holes(canvas *svg.SVG, p *panel.Panel, l panel.Layout) {
	style := fmt.Sprintf(holeStyle, subunits/2)
	for _, h := range p.ValidHoles() {
		c := l.HoleCenter(h)
		canvas.Group()
		canvas.Title(HoleTitle(h))
		canvas.Circle(u(c.X), u(c.Y), u(l.HoleRadius(h)), style)
		canvas.Gend()
	}
}

// HoleTitle is the tooltip text of a hole.
func HoleTitle(h panel.Hole) string {
	return fmt.Sprintf("X: %s, Y: %s, Ø%s, Depth: %s", num(h.X), num(h.Y), num(h.Diameter), num(h.Depth))
}

func rotate(x, y float64) string {
	return fmt.Sprintf("rotate(-90 %d %d)", u(x), u(y))
}

// u converts pixels to viewBox units.
func u(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v * subunits))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mm(v float64) string {
	return num(v) + "mm"
}

// errWriter keeps the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
