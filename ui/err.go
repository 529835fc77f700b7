package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#FF0000",
	Dark:  "#FF0000",
})

var infoStyle = lipgloss.NewStyle().Foreground(SuccessColor)

// ErrBox is the one-line status area below the menu. It shows errors, and
// short confirmations such as the path of an export.
type ErrBox struct {
	height, width int
	err           error
	info          string
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	e.err = err
	e.info = ""
}

// SetInfo shows a non-error message.
func (e *ErrBox) SetInfo(msg string) {
	e.info = msg
	e.err = nil
}

func (e *ErrBox) Clear() {
	e.err = nil
	e.info = ""
}

// Message returns the text currently shown, if any.
func (e *ErrBox) Message() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.info
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) String() string {
	style := errStyle
	if e.err == nil {
		style = infoStyle
	}

	msg := strings.Join(strings.Split(e.Message(), "\n"), "//")
	if e.width-3 >= 0 && len(msg) > e.width-3 {
		msg = msg[:e.width-3] + "..."
	}
	return lipgloss.Place(e.width, e.height, lipgloss.Center, lipgloss.Center, style.Render(msg))
}
