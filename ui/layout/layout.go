// Package layout sizes the panes of the home screen for a terminal size.
package layout

// Mode is a coarse size class of the terminal.
type Mode int

const (
	// ModeFull is for large terminals (>= 140x45).
	ModeFull Mode = iota
	// ModeStandard is for medium terminals (>= 100x30).
	ModeStandard
	// ModeCompact is for small terminals (>= 70x20).
	ModeCompact
	// ModeMinimal is below the minimum size. A warning replaces the screen.
	ModeMinimal
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeStandard:
		return "standard"
	case ModeCompact:
		return "compact"
	case ModeMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// Breakpoints.
const (
	MinWidth       = 70
	MinHeight      = 20
	StandardWidth  = 100
	StandardHeight = 30
	FullWidth      = 140
	FullHeight     = 45

	// StackWidth is the width below which the list sits above the preview.
	StackWidth = 90
	// CompactListHeight is the height below which list entries drop their
	// source line.
	CompactListHeight = 30
)

const (
	ListMinWidth     = 28
	ListMaxWidth     = 60
	ListCompactWidth = 40

	ErrBoxHeight = 1

	OverlayMinWidth = 30
	OverlayMaxWidth = 80
	OverlayMargin   = 4
)

// Constraints holds the computed size of every pane.
type Constraints struct {
	Width, Height int
	Mode          Mode

	ListWidth, ListHeight       int
	PreviewWidth, PreviewHeight int
	// ContentHeight is the space above the menu, used by full-width screens
	// such as the summary and the detail view.
	ContentHeight int
	MenuHeight    int

	// Stack puts the list above the preview.
	Stack bool
	// CompactList hides the source line of list entries.
	CompactList bool
	// TooSmall means the terminal is below MinWidth x MinHeight.
	TooSmall bool
}

// ModeFor returns the most restrictive mode of the two dimensions.
func ModeFor(width, height int) Mode {
	if width < MinWidth || height < MinHeight {
		return ModeMinimal
	}
	return max(widthMode(width), heightMode(height))
}

func widthMode(width int) Mode {
	switch {
	case width >= FullWidth:
		return ModeFull
	case width >= StandardWidth:
		return ModeStandard
	default:
		return ModeCompact
	}
}

func heightMode(height int) Mode {
	switch {
	case height >= FullHeight:
		return ModeFull
	case height >= StandardHeight:
		return ModeStandard
	default:
		return ModeCompact
	}
}

// Compute sizes the panes for a width x height terminal.
func Compute(width, height int) Constraints {
	c := Constraints{
		Width:       width,
		Height:      height,
		Mode:        ModeFor(width, height),
		CompactList: height < CompactListHeight,
	}
	c.TooSmall = c.Mode == ModeMinimal
	c.MenuHeight = menuHeight(c.Mode)
	c.ContentHeight = max(height-c.MenuHeight-ErrBoxHeight, 0)

	if width < StackWidth {
		c.Stack = true
		c.ListWidth, c.PreviewWidth = width, width
		c.ListHeight = c.ContentHeight / 2
		c.PreviewHeight = c.ContentHeight - c.ListHeight
		return c
	}

	c.ListWidth = listWidth(width, c.Mode)
	c.PreviewWidth = width - c.ListWidth
	c.ListHeight, c.PreviewHeight = c.ContentHeight, c.ContentHeight
	return c
}

func listWidth(width int, mode Mode) int {
	switch mode {
	case ModeFull:
		return clamp(width*30/100, ListMinWidth, ListMaxWidth)
	case ModeStandard:
		return clamp(width*35/100, ListMinWidth, ListMaxWidth)
	default:
		return clamp(width*40/100, ListMinWidth, ListCompactWidth)
	}
}

func menuHeight(mode Mode) int {
	switch mode {
	case ModeFull:
		return 3
	case ModeStandard:
		return 2
	default:
		return 1
	}
}

// OverlayWidth fits a preferred overlay width into the terminal.
func OverlayWidth(termWidth, preferred int) int {
	upper := min(max(termWidth-OverlayMargin*2, OverlayMinWidth), OverlayMaxWidth)
	return clamp(preferred, OverlayMinWidth, upper)
}

// OverlayHeight fits a preferred overlay height into the terminal.
func OverlayHeight(termHeight, preferred int) int {
	return clamp(preferred, 5, max(termHeight-OverlayMargin, 5))
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
