package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"door-import/order"
)

var summaryTitleStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230")).
	Padding(0, 1)

var sparklineStyle = lipgloss.NewStyle().Foreground(HoleColor)

const sparklineHeight = 3

// tableHeadLines is the top border, the header row and its separator.
const tableHeadLines = 3

const selectedRowMarker = "▸"

// SummaryTable renders order lines as a table with a total footer.
func SummaryTable(s order.Summary, style table.Style) string {
	return summaryTable(s, style, -1)
}

// summaryTable marks the row at selected; a negative index marks nothing.
func summaryTable(s order.Summary, style table.Style, selected int) string {
	t := table.NewWriter()
	t.SetStyle(style)
	t.AppendHeader(table.Row{"#", "Panel", "Height", "Width", "Holes", "Qty"})
	for i, l := range s.Lines {
		var num any = i + 1
		if selected >= 0 {
			marker := " "
			if i == selected {
				marker = selectedRowMarker
			}
			num = fmt.Sprintf("%s %d", marker, i+1)
		}
		t.AppendRow(table.Row{num, l.Name, FormatMillimetres(l.Height), FormatMillimetres(l.Width), l.Holes, l.Quantity})
	}
	t.AppendFooter(table.Row{"", "Total", "", "", "", s.Total})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return t.Render()
}

// HoleSparkline draws the hole count of each line, left to right.
func HoleSparkline(counts []float64, width int) string {
	if len(counts) == 0 || width < 1 {
		return ""
	}
	spark := sparkline.New(min(width, max(len(counts), 10)), sparklineHeight)
	for _, v := range counts {
		spark.Push(v)
	}
	spark.Draw()
	return sparklineStyle.Render(spark.View())
}

// SummaryView is the order summary screen. One row is selected so its
// quantity can be changed in place.
type SummaryView struct {
	width, height int
	summary       order.Summary
	lastReceipt   *order.Summary
	selected      int
	offset        int
}

func NewSummaryView() *SummaryView {
	return &SummaryView{}
}

func (v *SummaryView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetSummary replaces the shown summary. The selection is kept, clamped to
// the new rows.
func (v *SummaryView) SetSummary(s order.Summary) {
	v.summary = s
	v.SetSelected(v.selected)
}

// SetLastReceipt records the most recently completed order, or nil.
func (v *SummaryView) SetLastReceipt(r *order.Summary) {
	v.lastReceipt = r
}

func (v *SummaryView) SetSelected(i int) {
	v.selected = max(min(i, len(v.summary.Lines)-1), 0)
}

func (v *SummaryView) Selected() int {
	return v.selected
}

func (v *SummaryView) Up() {
	v.SetSelected(v.selected - 1)
}

func (v *SummaryView) Down() {
	v.SetSelected(v.selected + 1)
}

func (v *SummaryView) String() string {
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("Order summary"))
	b.WriteString("  ")
	b.WriteString(TextStyles.Secondary.Render(fmt.Sprintf("%d panels, %d pieces", len(v.summary.Lines), v.summary.Total)))
	b.WriteString("\n\n")

	if len(v.summary.Lines) == 0 {
		b.WriteString(TextStyles.Muted.Render("The order is empty."))
	} else {
		b.WriteString(v.visibleTable())
		if spark := HoleSparkline(v.summary.HoleCounts(), AdjustPreviewWidth(v.width)); spark != "" {
			b.WriteString("\n\n")
			b.WriteString(TextStyles.Muted.Render("Holes per panel"))
			b.WriteString("\n")
			b.WriteString(spark)
		}
	}

	if v.lastReceipt != nil {
		b.WriteString("\n\n")
		b.WriteString(TextStyles.Muted.Render(fmt.Sprintf("Last completed order: %s, %d pieces",
			FormatRelativeTime(v.lastReceipt.CreatedAt, v.summary.CreatedAt), v.lastReceipt.Total)))
	}

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().PaddingTop(1).Render(b.String()))
}

// visibleTable crops the table so it leaves room for the header, sparkline
// and receipt line, scrolling just enough to keep the selected row shown.
func (v *SummaryView) visibleTable() string {
	lines := strings.Split(summaryTable(v.summary, table.StyleRounded, v.selected), "\n")
	room := v.height - 4 - (sparklineHeight + 3) - 2
	if v.height <= 0 || room >= len(lines) {
		v.offset = 0
		return strings.Join(lines, "\n")
	}
	room = min(max(room, 5), len(lines))
	row := tableHeadLines + v.selected
	if row < v.offset {
		v.offset = row
	}
	if row >= v.offset+room {
		v.offset = row - room + 1
	}
	v.offset = max(min(v.offset, len(lines)-room), 0)
	return strings.Join(lines[v.offset:v.offset+room], "\n")
}
