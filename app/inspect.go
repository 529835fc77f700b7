package app

import (
	"time"

	"door-import/inspect"
)

var stateNames = map[state]string{
	stateDefault: "default",
	stateDetail:  "detail",
	stateSummary: "summary",
	stateHelp:    "help",
	stateConfirm: "confirm",
	stateBrowse:  "browse",
	stateExport:  "export",
	stateLoading: "loading",
}

// screenState names the screen under any overlay.
func (m *home) screenState() state {
	switch {
	case m.state == stateSummary || (m.state == stateHelp && m.helpReturnState == stateSummary):
		return stateSummary
	case m.preview.Detail():
		return stateDetail
	default:
		return stateDefault
	}
}

func (m *home) inspectSnapshot(frame string) *inspect.Snapshot {
	c := m.layout
	s := &inspect.Snapshot{
		Timestamp: time.Now(),
		Terminal:  inspect.Size{Width: c.Width, Height: c.Height},
		State:     stateNames[m.screenState()],
		Layout: inspect.Layout{
			Mode:    c.Mode.String(),
			List:    inspect.Size{Width: c.ListWidth, Height: c.ListHeight},
			Preview: inspect.Size{Width: c.PreviewWidth, Height: c.PreviewHeight},
			Stack:   c.Stack,
		},
		Order: inspect.Order{
			Total:    m.order.Total(),
			Selected: m.list.SelectedIndex(),
		},
		Zoom:   m.preview.Zoom(),
		Status: m.errBox.Message(),
		Toast:  m.toast.Visible(),
		Screen: inspect.ScreenLines(frame),
	}
	if m.state != m.screenState() {
		s.Overlay = stateNames[m.state]
	}
	for _, e := range m.order.Entries() {
		s.Order.Entries = append(s.Order.Entries, inspect.Entry{
			Name:     e.Panel.DisplayName(),
			Quantity: e.Quantity,
			Holes:    len(e.Panel.ValidHoles()),
		})
	}
	return s
}
