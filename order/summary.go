package order

import (
	"time"

	"door-import/panel"
)

// Line is one row of the order summary.
type Line struct {
	Name     string  `json:"name"`
	File     string  `json:"file"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Holes    int     `json:"holes"`
	Quantity int     `json:"quantity"`
}

// Summary lists every entry of an order with the total quantity.
type Summary struct {
	Lines     []Line    `json:"lines"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

func summarize(entries []Entry) Summary {
	s := Summary{
		Lines:     make([]Line, 0, len(entries)),
		CreatedAt: time.Now(),
	}
	for _, e := range entries {
		s.Lines = append(s.Lines, lineFor(e.Panel, e.Quantity))
		s.Total += e.Quantity
	}
	return s
}

func lineFor(p *panel.Panel, qty int) Line {
	return Line{
		Name:     p.DisplayName(),
		File:     p.Name,
		Height:   p.Height,
		Width:    p.Width,
		Holes:    len(p.ValidHoles()),
		Quantity: qty,
	}
}

// HoleCounts returns the number of drawable holes per line, for charts.
func (s Summary) HoleCounts() []float64 {
	counts := make([]float64, len(s.Lines))
	for i, l := range s.Lines {
		counts[i] = float64(l.Holes)
	}
	return counts
}
