package ui

import (
	"math"
	"strings"

	"door-import/panel"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

const (
	holeRune  = '●'
	emptyRune = ' '
)

// Diagram plots a panel outline and its holes on a cols by rows grid of
// runes, using the same orientation as the SVG card: the panel width runs
// across and a hole's X runs down. At zoom 1 the whole panel fits; higher
// zoom crops around the panel centre.
func Diagram(p *panel.Panel, cols, rows int, zoom float64) []string {
	if cols < 3 || rows < 3 {
		return nil
	}
	if !(p.Width > 0 && p.Height > 0) {
		return centeredMessage("no panel dimensions", cols, rows)
	}

	scale := math.Min(float64(cols-1)/p.Width, float64(rows-1)*cellAspect/p.Height) * panel.ClampZoom(zoom)
	rowScale := scale / cellAspect
	originX := (float64(cols-1) - p.Width*scale) / 2
	originY := (float64(rows-1) - p.Height*rowScale) / 2

	g := newGrid(cols, rows)

	left := round(originX)
	right := round(originX + p.Width*scale)
	top := round(originY)
	bottom := round(originY + p.Height*rowScale)
	for c := max(left, 0); c <= min(right, cols-1); c++ {
		g.set(c, top, '─')
		g.set(c, bottom, '─')
	}
	for r := max(top, 0); r <= min(bottom, rows-1); r++ {
		g.set(left, r, '│')
		g.set(right, r, '│')
	}
	g.set(left, top, '┌')
	g.set(right, top, '┐')
	g.set(left, bottom, '└')
	g.set(right, bottom, '┘')

	for _, h := range p.ValidHoles() {
		cx := originX + h.Y*scale
		cy := originY + h.X*rowScale
		rx := h.Diameter / 2 * scale
		if rx < 1 {
			g.set(round(cx), round(cy), holeRune)
			continue
		}
		ry := rx / cellAspect
		for r := max(int(math.Floor(cy-ry)), 0); r <= min(int(math.Ceil(cy+ry)), rows-1); r++ {
			for c := max(int(math.Floor(cx-rx)), 0); c <= min(int(math.Ceil(cx+rx)), cols-1); c++ {
				dx, dy := (float64(c)-cx)/rx, (float64(r)-cy)/ry
				if dx*dx+dy*dy <= 1 {
					g.set(c, r, holeRune)
				}
			}
		}
	}

	return g.lines()
}

type grid struct {
	cols, rows int
	cells      [][]rune
}

func newGrid(cols, rows int) *grid {
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(emptyRune), cols))
	}
	return &grid{cols: cols, rows: rows, cells: cells}
}

func (g *grid) set(c, r int, ch rune) {
	if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
		return
	}
	g.cells[r][c] = ch
}

func (g *grid) lines() []string {
	out := make([]string, g.rows)
	for r, row := range g.cells {
		out[r] = string(row)
	}
	return out
}

func centeredMessage(msg string, cols, rows int) []string {
	g := newGrid(cols, rows)
	start := max((cols-len(msg))/2, 0)
	for i, ch := range msg {
		g.set(start+i, rows/2, ch)
	}
	return g.lines()
}

func round(v float64) int {
	return int(math.Round(v))
}
