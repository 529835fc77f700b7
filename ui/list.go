package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"door-import/order"
	"door-import/panel"
)

var titleStyle = lipgloss.NewStyle().
	Padding(1, 1, 0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var listDescStyle = lipgloss.NewStyle().
	Padding(0, 1, 1, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var selectedTitleStyle = lipgloss.NewStyle().
	Padding(1, 1, 0, 1).
	Background(BackgroundSelected).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var selectedDescStyle = lipgloss.NewStyle().
	Padding(0, 1, 1, 1).
	Background(BackgroundSelected).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var mainTitle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var totalStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.Color("#1a1a1a"))

var quantityStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

var emptyStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true)

// entryHeight is the number of rows one rendered entry takes, including the
// blank line after it. Compact entries drop the source line.
const (
	entryHeight        = 6
	compactEntryHeight = 5
)

// listHeaderHeight covers the blank lines and the title bar.
const listHeaderHeight = 4

// List shows the panels of an order with their quantities.
type List struct {
	order         *order.Order
	selectedIdx   int
	scrollOffset  int
	height, width int
	renderer      *EntryRenderer
}

func NewList(o *order.Order) *List {
	return &List{
		order:    o,
		renderer: &EntryRenderer{},
	}
}

// SetSize sets the height and width of the list.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.renderer.setWidth(width)
}

// Len returns the number of panels in the order.
func (l *List) Len() int {
	return l.order.Len()
}

// SetCompact drops the source line from entries on short terminals.
func (l *List) SetCompact(compact bool) {
	l.renderer.compact = compact
}

func (l *List) rowsPerEntry() int {
	if l.renderer.compact {
		return compactEntryHeight
	}
	return entryHeight
}

// EntryRenderer renders one order entry.
type EntryRenderer struct {
	width   int
	compact bool
}

func (r *EntryRenderer) setWidth(width int) {
	r.width = AdjustPreviewWidth(width)
}

// FormatDimensions renders a panel size as "H × W mm".
func FormatDimensions(p *panel.Panel) string {
	return fmt.Sprintf("%s × %s mm", FormatMillimetres(p.Height), FormatMillimetres(p.Width))
}

// FormatMillimetres prints a length without trailing zeros.
func FormatMillimetres(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func (r *EntryRenderer) Render(e order.Entry, idx int, selected bool) string {
	prefix := fmt.Sprintf(" %d. ", idx)
	titleS, descS := titleStyle, listDescStyle
	if selected {
		titleS, descS = selectedTitleStyle, selectedDescStyle
	}

	qty := fmt.Sprintf("×%d", e.Quantity)
	qtyWidth := runewidth.StringWidth(qty)
	name := e.Panel.DisplayName()
	widthAvail := r.width - 3 - len(prefix) - qtyWidth - 1
	if widthAvail > 3 && runewidth.StringWidth(name) > widthAvail {
		name = runewidth.Truncate(name, widthAvail, "...")
	}

	title := titleS.Render(lipgloss.JoinHorizontal(
		lipgloss.Left,
		lipgloss.Place(r.width-3-qtyWidth, 1, lipgloss.Left, lipgloss.Center, prefix+name),
		" ",
		quantityStyle.Background(titleS.GetBackground()).Render(qty),
	))

	indent := strings.Repeat(" ", len(prefix))
	holes := len(e.Panel.ValidHoles())
	desc := fmt.Sprintf("%s%s · %d %s", indent, FormatDimensions(e.Panel), holes, plural(holes, "hole", "holes"))
	if invalid := e.Panel.InvalidHoleCount(); invalid > 0 {
		desc += TextStyles.Warning.Background(descS.GetBackground()).
			Render(fmt.Sprintf(" %s %d skipped", IconWarning, invalid))
	}
	body := desc
	if !r.compact {
		source := indent + e.Panel.Format.String() + " · " + e.Panel.Name
		if r.width > 3 && runewidth.StringWidth(source) > r.width-3 {
			source = runewidth.Truncate(source, r.width-3, "...")
		}
		body = lipgloss.JoinVertical(lipgloss.Left, desc, source)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, descS.Render(body))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (l *List) String() string {
	const titleText = " Panels "
	entries := l.order.Entries()
	l.clamp(len(entries))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("\n")

	// add padding of 2 because the border on list items adds some extra characters
	titleWidth := AdjustPreviewWidth(l.width) + 2
	title := lipgloss.Place(
		titleWidth/2, 1, lipgloss.Left, lipgloss.Bottom, mainTitle.Render(titleText))
	total := lipgloss.Place(
		titleWidth-(titleWidth/2), 1, lipgloss.Right, lipgloss.Bottom,
		totalStyle.Render(fmt.Sprintf(" total %d ", l.order.Total())))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, total))

	b.WriteString("\n")
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(emptyStyle.Render(" No panels yet. Press o to open files."))
		return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
	}

	start, end := l.visibleRange(len(entries))
	for i := start; i < end; i++ {
		b.WriteString(l.renderer.Render(entries[i], i+1, i == l.selectedIdx))
		if i != end-1 {
			b.WriteString("\n\n")
		}
	}
	if end < len(entries) {
		b.WriteString("\n" + emptyStyle.Render(fmt.Sprintf(" … %d more", len(entries)-end)))
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
}

// visibleRange returns the slice of entries that fits the list height,
// scrolled so the selected entry is shown.
func (l *List) visibleRange(n int) (int, int) {
	rows := (l.height - listHeaderHeight) / l.rowsPerEntry()
	if l.height <= 0 || rows >= n {
		l.scrollOffset = 0
		return 0, n
	}
	rows = max(rows, 1)
	if l.selectedIdx < l.scrollOffset {
		l.scrollOffset = l.selectedIdx
	} else if l.selectedIdx >= l.scrollOffset+rows {
		l.scrollOffset = l.selectedIdx - rows + 1
	}
	return l.scrollOffset, min(l.scrollOffset+rows, n)
}

func (l *List) clamp(n int) {
	if l.selectedIdx >= n {
		l.selectedIdx = max(0, n-1)
	}
}

// Down selects the next item in the list.
func (l *List) Down() {
	n := l.order.Len()
	l.clamp(n)
	if l.selectedIdx < n-1 {
		l.selectedIdx++
	}
}

// Up selects the prev item in the list.
func (l *List) Up() {
	l.clamp(l.order.Len())
	if l.selectedIdx > 0 {
		l.selectedIdx--
	}
}

// SelectedIndex returns the index of the selected entry.
func (l *List) SelectedIndex() int {
	l.clamp(l.order.Len())
	return l.selectedIdx
}

// Selected returns the selected entry, or false when the order is empty.
func (l *List) Selected() (order.Entry, bool) {
	return l.order.Entry(l.SelectedIndex())
}

// SetSelected sets the selected index. Noop if the index is out of bounds.
func (l *List) SetSelected(idx int) {
	if idx < 0 || idx >= l.order.Len() {
		return
	}
	l.selectedIdx = idx
}
