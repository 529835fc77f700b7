package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"door-import/log"
	"door-import/panel"
	"door-import/render"
)

var previewTitleStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

var holeStyle = lipgloss.NewStyle().Foreground(HoleColor)

var outlineStyle = lipgloss.NewStyle().Foreground(TextSecondary)

// AdjustPreviewWidth leaves a margin so borders never touch the terminal edge.
func AdjustPreviewWidth(width int) int {
	return int(float64(width) * 0.9)
}

// previewHeaderHeight is the title, the info line and a blank line.
const previewHeaderHeight = 3

// PreviewPane draws the selected panel. In detail mode it can be zoomed and
// lists the hole coordinates under the diagram.
type PreviewPane struct {
	width, height int
	panel         *panel.Panel
	zoom          float64
	detail        bool
}

func NewPreviewPane() *PreviewPane {
	return &PreviewPane{zoom: panel.DefaultZoom}
}

func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetPanel changes the shown panel. A different panel resets the zoom.
func (p *PreviewPane) SetPanel(pn *panel.Panel) {
	if pn != p.panel {
		p.zoom = panel.DefaultZoom
	}
	p.panel = pn
}

// SetDetail switches between the list preview and the zoomable detail view.
func (p *PreviewPane) SetDetail(detail bool) {
	p.detail = detail
	if !detail {
		p.zoom = panel.DefaultZoom
	}
}

func (p *PreviewPane) Detail() bool {
	return p.detail
}

func (p *PreviewPane) ZoomIn() {
	p.zoom = panel.ClampZoom(p.zoom + panel.ZoomStep)
}

func (p *PreviewPane) ZoomOut() {
	p.zoom = panel.ClampZoom(p.zoom - panel.ZoomStep)
}

func (p *PreviewPane) ResetZoom() {
	p.zoom = panel.DefaultZoom
}

func (p *PreviewPane) Zoom() float64 {
	return p.zoom
}

func (p *PreviewPane) String() string {
	defer log.GetProfiler().StartRender("preview")()

	style := PaneStyle(p.detail)
	innerWidth := AdjustPreviewWidth(p.width) - style.GetHorizontalFrameSize()
	innerHeight := p.height - style.GetVerticalFrameSize() - 1
	if innerWidth < 3 || innerHeight < 3 {
		return ""
	}

	if p.panel == nil {
		msg := TextStyles.Muted.Render("Select a panel to preview it")
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	b.WriteString(previewTitleStyle.Render(p.panel.DisplayName()))
	b.WriteString("\n")
	b.WriteString(TextStyles.Secondary.Render(p.infoLine()))
	b.WriteString("\n\n")

	diagramRows := innerHeight - previewHeaderHeight
	var holeLines []string
	if p.detail {
		holeLines = p.holeLines(innerWidth)
		// The diagram keeps at least two thirds of the space.
		listRows := min(len(holeLines)+1, diagramRows/3)
		if listRows < 2 {
			holeLines = nil
		} else {
			holeLines = holeLines[:listRows-1]
			diagramRows -= listRows
		}
	}

	for i, line := range Diagram(p.panel, innerWidth, diagramRows, p.zoom) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(colorDiagramLine(line))
	}

	if len(holeLines) > 0 {
		b.WriteString("\n")
		for _, line := range holeLines {
			b.WriteString("\n")
			b.WriteString(TextStyles.Muted.Render(line))
		}
	}

	pane := style.Width(innerWidth + style.GetHorizontalPadding()).Render(b.String())
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Top, pane)
}

func (p *PreviewPane) infoLine() string {
	valid := len(p.panel.ValidHoles())
	info := fmt.Sprintf("%s · %s · %d %s", p.panel.Format, FormatDimensions(p.panel), valid, plural(valid, "hole", "holes"))
	if invalid := p.panel.InvalidHoleCount(); invalid > 0 {
		info += fmt.Sprintf(" (%d skipped)", invalid)
	}
	if p.detail {
		info += fmt.Sprintf(" · zoom %d%%", round(p.zoom*100))
	}
	return info
}

// holeLines lists the drawable holes, one per line, cut to width cells.
func (p *PreviewPane) holeLines(width int) []string {
	holes := p.panel.ValidHoles()
	lines := make([]string, 0, len(holes))
	for i, h := range holes {
		line := fmt.Sprintf("%3d  %s", i+1, render.HoleTitle(h))
		lines = append(lines, truncate.String(line, uint(max(width, 0))))
	}
	return lines
}

// colorDiagramLine styles the outline and the holes of one diagram row.
func colorDiagramLine(line string) string {
	var b strings.Builder
	var run []rune
	runHoles := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runHoles {
			b.WriteString(holeStyle.Render(string(run)))
		} else {
			b.WriteString(outlineStyle.Render(string(run)))
		}
		run = run[:0]
	}
	for _, r := range line {
		isHole := r == holeRune
		if isHole != runHoles {
			flush()
			runHoles = isHole
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
