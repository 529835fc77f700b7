package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"door-import/config"
	"door-import/inspect"
	"door-import/keys"
	"door-import/log"
	"door-import/order"
	"door-import/panel"
	"door-import/ui"
	"door-import/ui/layout"
	"door-import/ui/overlay"
	"door-import/watch"
)

// Options are the inputs of a TUI run besides the configuration.
type Options struct {
	// Panels are parsed from the command line and listed on start.
	Panels []*panel.Panel
	// Watcher, when set, feeds panels from the watch folder into the order.
	Watcher *watch.Watcher
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	ordersDir, err := config.OrdersDir()
	if err != nil {
		return err
	}
	h := newHome(ctx, cfg, config.LoadState(), order.NewStore(ordersDir), opts)
	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
	)
	_, err = p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateDetail is the zoomable full-width preview of one panel.
	stateDetail
	// stateSummary shows the order summary table.
	stateSummary
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateConfirm is the state when a confirmation modal is displayed.
	stateConfirm
	// stateBrowse is the state when the file browser is open.
	stateBrowse
	// stateExport is the state when the export selector is open.
	stateExport
	// stateLoading is the state while picked files are parsed.
	stateLoading
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	cfg *config.Config
	// appState stores persistent application state like seen help screens
	appState config.AppState
	// receipts stores completed orders
	receipts *order.Store
	watcher  *watch.Watcher

	// copyToClipboard writes the hole list. Tests replace it.
	copyToClipboard func(string) error

	// -- State --

	order *order.Order
	// state is the current discrete state of the application
	state state
	// helpReturnState is restored when the help overlay closes.
	helpReturnState state
	// undoGen identifies the latest removal. Expiry ticks of older removals
	// are ignored.
	undoGen int
	// importQueue holds the files picked in the browser that are still to
	// be parsed, importDone the panels parsed so far.
	importQueue  []string
	importTotal  int
	importDone   []*panel.Panel
	importErrors []error

	layout layout.Constraints

	// -- UI Components --

	list    *ui.List
	menu    *ui.Menu
	preview *ui.PreviewPane
	summary *ui.SummaryView
	errBox  *ui.ErrBox
	toast   *ui.Toast
	// global spinner instance. we plumb this down to where it's needed
	spinner spinner.Model

	textOverlay         *overlay.TextOverlay
	confirmationOverlay *overlay.ConfirmationOverlay
	fileBrowser         *overlay.FileBrowserOverlay
	exportSelector      *overlay.ExportSelectorOverlay
	loadingOverlay      *overlay.LoadingOverlay
}

func newHome(ctx context.Context, cfg *config.Config, appState config.AppState, receipts *order.Store, opts Options) *home {
	o := order.New()
	o.Add(opts.Panels...)

	h := &home{
		ctx:             ctx,
		cfg:             cfg,
		appState:        appState,
		receipts:        receipts,
		watcher:         opts.Watcher,
		copyToClipboard: clipboard.WriteAll,
		order:           o,
		state:           stateDefault,
		list:            ui.NewList(o),
		menu:            ui.NewMenu(),
		preview:         ui.NewPreviewPane(),
		summary:         ui.NewSummaryView(),
		errBox:          ui.NewErrBox(),
		toast:           ui.NewToast(),
		spinner:         spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	h.orderChanged()

	if appState.GetHelpScreensSeen()&(helpTypeGeneral{}).mask() == 0 {
		h.showHelpScreen(helpTypeGeneral{}, nil)
	}
	return h
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.layout = layout.Compute(msg.Width, msg.Height)
	log.LayoutTrace("resize %dx%d mode=%s stack=%t", msg.Width, msg.Height, m.layout.Mode, m.layout.Stack)
	m.applyLayout()
}

func (m *home) applyLayout() {
	c := m.layout
	m.list.SetSize(c.ListWidth, c.ListHeight)
	m.list.SetCompact(c.CompactList)
	if m.preview.Detail() {
		m.preview.SetSize(c.Width, c.ContentHeight)
	} else {
		m.preview.SetSize(c.PreviewWidth, c.PreviewHeight)
	}
	m.summary.SetSize(c.Width, c.ContentHeight)
	m.menu.SetSize(c.Width, c.MenuHeight)
	m.errBox.SetSize(int(float32(c.Width)*0.9), layout.ErrBoxHeight)

	overlayWidth := layout.OverlayWidth(c.Width, 60)
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(overlayWidth)
	}
	if m.confirmationOverlay != nil {
		m.confirmationOverlay.SetWidth(layout.OverlayWidth(c.Width, 50))
	}
	if m.exportSelector != nil {
		m.exportSelector.SetWidth(overlayWidth)
	}
	if m.loadingOverlay != nil {
		m.loadingOverlay.SetWidth(layout.OverlayWidth(c.Width, 50))
	}
	if m.fileBrowser != nil {
		m.fileBrowser.SetSize(layout.OverlayWidth(c.Width, 80), layout.OverlayHeight(c.Height, 30))
	}
}

func (m *home) Init() tea.Cmd {
	// Upon starting, we want to start the spinner. Whenever we get a spinner.TickMsg, we
	// update the spinner, which sends a new spinner.TickMsg.
	return tea.Batch(m.spinner.Tick, m.waitForWatchEvent())
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case undoExpiredMsg:
		if msg.gen == m.undoGen {
			m.order.Dismiss()
			m.toast.Hide()
		}
		return m, nil
	case watchEventMsg:
		return m, tea.Batch(m.handleWatchEvent(watch.Event(msg)), m.waitForWatchEvent())
	case fileParsedMsg:
		return m, m.handleFileParsed(msg)
	case exportDoneMsg:
		if msg.err != nil {
			return m, m.handleError(msg.err)
		}
		return m, m.showInfo(fmt.Sprintf("Exported %s", msg.path))
	case copiedMsg:
		if msg.err != nil {
			return m, m.handleError(fmt.Errorf("failed to copy holes: %w", msg.err))
		}
		return m, m.showInfo(fmt.Sprintf("Copied %d holes of %s", msg.holes, msg.name))
	case receiptSavedMsg:
		if msg.err != nil {
			return m, m.handleError(msg.err)
		}
		return m, m.showInfo(fmt.Sprintf("Order completed, receipt saved to %s", msg.path))
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch {
		case m.state == stateSummary && msg.Button == tea.MouseButtonWheelUp:
			m.summary.Up()
		case m.state == stateSummary && msg.Button == tea.MouseButtonWheelDown:
			m.summary.Down()
		case m.state == stateDefault && msg.Button == tea.MouseButtonWheelUp:
			m.list.Up()
			m.selectionChanged()
		case m.state == stateDefault && msg.Button == tea.MouseButtonWheelDown:
			m.list.Down()
			m.selectionChanged()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
// This is purely visual - it briefly underlines the corresponding menu item.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state != stateDefault && m.state != stateDetail && m.state != stateSummary {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	if m.state == stateDetail {
		switch name {
		case keys.KeyIncrease:
			name = keys.KeyZoomIn
		case keys.KeyDecrease:
			name = keys.KeyZoomOut
		}
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	log.InputTrace("key %q state=%d", msg.String(), m.state)
	// Get the menu highlight command - this is batched with the action command later
	highlightCmd := m.handleMenuHighlighting(msg)

	switch m.state {
	case stateHelp:
		return m.handleHelpState(msg)
	case stateConfirm:
		if m.confirmationOverlay.HandleKeyPress(msg) {
			m.confirmationOverlay = nil
		}
		return m, nil
	case stateBrowse:
		return m.handleBrowseState(msg)
	case stateExport:
		return m.handleExportState(msg)
	case stateLoading:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Handle quit commands first
	if msg.String() == "ctrl+c" || msg.String() == "q" {
		return m, tea.Quit
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateDetail:
		cmd = m.handleDetailKey(name)
	case stateSummary:
		cmd = m.handleSummaryKey(name)
	default:
		cmd = m.handleListKey(name)
	}
	return m, tea.Batch(highlightCmd, cmd)
}

func (m *home) handleListKey(name keys.KeyName) tea.Cmd {
	switch name {
	case keys.KeyHelp:
		m.showHelpScreen(helpTypeGeneral{}, nil)
	case keys.KeyUp:
		m.list.Up()
		m.selectionChanged()
	case keys.KeyDown:
		m.list.Down()
		m.selectionChanged()
	case keys.KeyIncrease:
		return m.changeQuantity(1)
	case keys.KeyDecrease:
		return m.changeQuantity(-1)
	case keys.KeyUndo:
		return m.undo()
	case keys.KeyRemoveAll:
		if m.order.Len() == 0 {
			return nil
		}
		message := fmt.Sprintf("[!] Remove all %d panels from the order?", m.order.Len())
		m.confirmAction(message, func() {
			m.order.RemoveAll()
			m.orderChanged()
		})
	case keys.KeySummary:
		m.openSummary()
	case keys.KeyEnter:
		if _, ok := m.list.Selected(); !ok {
			return nil
		}
		m.setDetail(true)
		m.showHelpScreen(helpTypeDetail{}, nil)
	case keys.KeyOpen:
		return m.openFileBrowser()
	case keys.KeyExportSVG:
		return m.openExportSelector()
	case keys.KeyExportSTL:
		return m.exportSelected(overlay.ExportSTL)
	case keys.KeyCopy:
		return m.copySelectedHoles()
	}
	return nil
}

func (m *home) handleDetailKey(name keys.KeyName) tea.Cmd {
	switch name {
	case keys.KeyHelp:
		m.showHelpScreen(helpTypeGeneral{}, nil)
	case keys.KeyIncrease:
		m.preview.ZoomIn()
	case keys.KeyDecrease:
		m.preview.ZoomOut()
	case keys.KeyZoomReset:
		m.preview.ResetZoom()
	case keys.KeyBack:
		m.setDetail(false)
	case keys.KeyExportSVG:
		return m.openExportSelector()
	case keys.KeyExportSTL:
		return m.exportSelected(overlay.ExportSTL)
	case keys.KeyCopy:
		return m.copySelectedHoles()
	}
	return nil
}

func (m *home) handleSummaryKey(name keys.KeyName) tea.Cmd {
	switch name {
	case keys.KeyHelp:
		m.showHelpScreen(helpTypeGeneral{}, nil)
	case keys.KeyUp:
		m.summary.Up()
	case keys.KeyDown:
		m.summary.Down()
	case keys.KeyIncrease:
		return m.changeSummaryQuantity(1)
	case keys.KeyDecrease:
		return m.changeSummaryQuantity(-1)
	case keys.KeyUndo:
		cmd := m.undo()
		m.summary.SetSummary(m.order.Summary())
		m.summary.SetSelected(m.list.SelectedIndex())
		return cmd
	case keys.KeyBack:
		m.closeSummary()
	case keys.KeyComplete:
		if m.order.Len() == 0 {
			return m.handleError(errors.New("the order is empty"))
		}
		summary := m.order.Complete()
		m.toast.Hide()
		m.closeSummary()
		m.orderChanged()
		return m.saveReceipt(summary)
	}
	return nil
}

func (m *home) handleBrowseState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.fileBrowser.HandleKeyPress(msg) {
		return m, nil
	}
	fb := m.fileBrowser
	m.fileBrowser = nil
	m.state = stateDefault
	if err := m.appState.SetLastDirectory(fb.Dir()); err != nil {
		log.WarningLog.Printf("failed to save last directory: %v", err)
	}
	if fb.IsCanceled() || !fb.IsSubmitted() || len(fb.SelectedPaths) == 0 {
		return m, nil
	}
	return m, m.startImport(fb.SelectedPaths)
}

func (m *home) handleExportState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.exportSelector.HandleKeyPress(msg) {
		return m, nil
	}
	selected := m.exportSelector.Selected
	m.exportSelector = nil
	m.state = stateDefault
	if m.preview.Detail() {
		m.state = stateDetail
	}
	if selected == "" {
		return m, nil
	}
	return m, m.exportSelected(selected)
}

// changeQuantity adjusts the selected entry. Dropping to zero removes it and
// offers an undo until the timeout passes.
func (m *home) changeQuantity(delta int) tea.Cmd {
	idx := m.list.SelectedIndex()
	entry, ok := m.order.Entry(idx)
	if !ok {
		return nil
	}
	removed, err := m.order.ChangeQuantity(idx, delta)
	if err != nil {
		return m.handleError(err)
	}
	if !removed {
		return nil
	}

	log.InfoLog.Printf("removed %s from the order", entry.Panel.Name)
	m.orderChanged()
	m.toast.Show(entry.Panel.DisplayName())
	m.undoGen++
	gen := m.undoGen
	return tea.Tick(m.cfg.UndoTimeout(), func(time.Time) tea.Msg {
		return undoExpiredMsg{gen: gen}
	})
}

// changeSummaryQuantity changes the row selected on the summary screen,
// which is the same entry as the list row with that index.
func (m *home) changeSummaryQuantity(delta int) tea.Cmd {
	m.list.SetSelected(m.summary.Selected())
	cmd := m.changeQuantity(delta)
	m.summary.SetSummary(m.order.Summary())
	return cmd
}

func (m *home) undo() tea.Cmd {
	removed, ok := m.order.RecentlyDeleted()
	if !ok || !m.order.Undo() {
		return nil
	}
	m.undoGen++
	m.toast.Hide()
	m.list.SetSelected(min(removed.Index, m.order.Len()-1))
	m.orderChanged()
	return nil
}

func (m *home) openSummary() {
	m.state = stateSummary
	m.menu.SetState(ui.StateSummary)
	m.summary.SetSummary(m.order.Summary())
	m.summary.SetSelected(m.list.SelectedIndex())

	receipts, err := m.receipts.List()
	if err != nil {
		log.WarningLog.Printf("failed to list receipts: %v", err)
	}
	if len(receipts) > 0 {
		m.summary.SetLastReceipt(&receipts[len(receipts)-1])
	} else {
		m.summary.SetLastReceipt(nil)
	}
}

func (m *home) closeSummary() {
	m.state = stateDefault
	m.menu.SetState(ui.StateDefault)
	m.menu.SetHasPanels(m.order.Len() > 0)
}

func (m *home) setDetail(detail bool) {
	m.preview.SetDetail(detail)
	if detail {
		m.state = stateDetail
		m.menu.SetState(ui.StateDetail)
	} else {
		m.state = stateDefault
		m.menu.SetState(ui.StateDefault)
		m.menu.SetHasPanels(m.order.Len() > 0)
	}
	m.applyLayout()
}

// orderChanged syncs the menu and preview after the order was modified.
func (m *home) orderChanged() {
	m.menu.SetHasPanels(m.order.Len() > 0)
	m.selectionChanged()
}

func (m *home) selectionChanged() {
	if e, ok := m.list.Selected(); ok {
		m.preview.SetPanel(e.Panel)
		return
	}
	m.preview.SetPanel(nil)
	if m.preview.Detail() {
		m.setDetail(false)
	}
}

func (m *home) selectedPanel() (*panel.Panel, bool) {
	e, ok := m.list.Selected()
	if !ok {
		return nil, false
	}
	return e.Panel, true
}

func (m *home) openFileBrowser() tea.Cmd {
	start := m.appState.GetLastDirectory()
	if start == "" {
		start = m.cfg.StartDir
	}
	fb, err := overlay.NewFileBrowserOverlay(start)
	if err != nil && start != m.cfg.StartDir {
		log.WarningLog.Printf("last directory %s is gone: %v", start, err)
		fb, err = overlay.NewFileBrowserOverlay(m.cfg.StartDir)
	}
	if err != nil {
		return m.handleError(err)
	}
	m.fileBrowser = fb
	m.applyLayout()
	m.showHelpScreen(helpTypeImport{}, nil)
	if m.state != stateHelp {
		m.state = stateBrowse
	} else {
		m.helpReturnState = stateBrowse
	}
	return nil
}

func (m *home) openExportSelector() tea.Cmd {
	p, ok := m.selectedPanel()
	if !ok {
		return nil
	}
	m.exportSelector = overlay.NewExportSelectorOverlay(p.DisplayName())
	m.applyLayout()
	m.state = stateExport
	return nil
}

func (m *home) exportSelected(format overlay.ExportFormat) tea.Cmd {
	p, ok := m.selectedPanel()
	if !ok {
		return nil
	}
	cfg := m.cfg
	return func() tea.Msg {
		path, err := exportPanel(p, format, cfg)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *home) copySelectedHoles() tea.Cmd {
	p, ok := m.selectedPanel()
	if !ok {
		return nil
	}
	text, n := holeList(p)
	if n == 0 {
		return m.handleError(fmt.Errorf("%s has no holes to copy", p.DisplayName()))
	}
	write := m.copyToClipboard
	return func() tea.Msg {
		return copiedMsg{name: p.DisplayName(), holes: n, err: write(text)}
	}
}

func (m *home) saveReceipt(summary order.Summary) tea.Cmd {
	store := m.receipts
	return func() tea.Msg {
		path, err := store.Save(summary)
		return receiptSavedMsg{path: path, err: err}
	}
}

// startImport parses the picked files one by one so the loading overlay can
// show progress.
func (m *home) startImport(paths []string) tea.Cmd {
	m.importQueue = append([]string(nil), paths...)
	m.importTotal = len(paths)
	m.importDone = nil
	m.importErrors = nil

	m.loadingOverlay = overlay.NewLoadingOverlay("Importing panels", &m.spinner)
	m.loadingOverlay.SetProgress(0, m.importTotal)
	m.applyLayout()
	m.state = stateLoading
	return m.parseNext()
}

func (m *home) parseNext() tea.Cmd {
	if len(m.importQueue) == 0 {
		return nil
	}
	path := m.importQueue[0]
	m.importQueue = m.importQueue[1:]
	m.loadingOverlay.SetStatus(filepath.Base(path))
	ctx := m.ctx
	return func() tea.Msg {
		if err := ctx.Err(); err != nil {
			return fileParsedMsg{path: path, err: err}
		}
		p, err := panel.ParseFile(path)
		return fileParsedMsg{path: path, panel: p, err: err}
	}
}

func (m *home) handleFileParsed(msg fileParsedMsg) tea.Cmd {
	if msg.err != nil {
		log.WarningLog.Printf("failed to import %s: %v", msg.path, msg.err)
		m.importErrors = append(m.importErrors, msg.err)
	} else {
		m.importDone = append(m.importDone, msg.panel)
	}
	done := len(m.importDone) + len(m.importErrors)
	if m.loadingOverlay != nil {
		m.loadingOverlay.SetProgress(done, m.importTotal)
	}
	if len(m.importQueue) > 0 {
		return m.parseNext()
	}

	m.loadingOverlay = nil
	m.state = stateDefault
	first := m.order.Len()
	m.order.Add(m.importDone...)
	if len(m.importDone) > 0 {
		m.list.SetSelected(first)
	}
	m.orderChanged()
	log.InfoLog.Printf("imported %d of %d files", len(m.importDone), m.importTotal)

	if len(m.importErrors) > 0 {
		return m.handleError(fmt.Errorf("imported %d of %d files: %w",
			len(m.importDone), m.importTotal, errors.Join(m.importErrors...)))
	}
	return m.showInfo(fmt.Sprintf("Imported %d panels", len(m.importDone)))
}

func (m *home) handleWatchEvent(ev watch.Event) tea.Cmd {
	if ev.Err != nil {
		return m.handleError(fmt.Errorf("watch folder: %w", ev.Err))
	}
	m.order.Add(ev.Panel)
	m.orderChanged()
	return m.showInfo(fmt.Sprintf("Added %s from the watch folder", ev.Panel.DisplayName()))
}

// waitForWatchEvent blocks on the next watch folder event. It returns nil
// without a watcher, and once the watcher is stopped.
func (m *home) waitForWatchEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			return watchEventMsg(ev)
		}
	}
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// undoExpiredMsg ends the undo window of the removal numbered gen.
type undoExpiredMsg struct {
	gen int
}

type watchEventMsg watch.Event

type fileParsedMsg struct {
	path  string
	panel *panel.Panel
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	name  string
	holes int
	err   error
}

type receiptSavedMsg struct {
	path string
	err  error
}

// statusTimeout is how long errors and confirmations stay in the status line.
const statusTimeout = 3 * time.Second

// handleError handles all errors which get bubbled up to the app. sets the error message. We return a callback tea.Cmd that returns a hideErrMsg message
// which clears the error message after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)
	return m.hideStatusLater()
}

// showInfo shows a confirmation in the status line for 3 seconds.
func (m *home) showInfo(msg string) tea.Cmd {
	m.errBox.SetInfo(msg)
	return m.hideStatusLater()
}

func (m *home) hideStatusLater() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(statusTimeout):
		}

		return hideErrMsg{}
	}
}

// confirmAction shows a confirmation modal and runs action on confirm.
func (m *home) confirmAction(message string, action func()) {
	returnState := m.state
	m.state = stateConfirm

	m.confirmationOverlay = overlay.NewConfirmationOverlay(message)
	m.applyLayout()

	m.confirmationOverlay.OnConfirm = func() {
		m.state = returnState
		if action != nil {
			action()
		}
	}
	m.confirmationOverlay.OnCancel = func() {
		m.state = returnState
	}
}

func (m *home) View() string {
	defer log.GetProfiler().StartRender("home")()

	frame := m.render()
	if inspect.Enabled() {
		if err := inspect.Write(m.inspectSnapshot(frame)); err != nil {
			log.WarningLog.Printf("inspect: %v", err)
		}
	}
	return frame
}

func (m *home) render() string {
	c := m.layout
	if c.TooSmall {
		msg := ui.TextStyles.Warning.Render(fmt.Sprintf(
			"Terminal too small (%dx%d). Need at least %dx%d.", c.Width, c.Height, layout.MinWidth, layout.MinHeight))
		return lipgloss.Place(c.Width, c.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	var content string
	switch {
	case m.screenState() == stateSummary:
		content = m.summary.String()
	case m.preview.Detail():
		content = m.preview.String()
	case c.Stack:
		content = lipgloss.JoinVertical(lipgloss.Left, m.list.String(), m.preview.String())
	default:
		listWithPadding := lipgloss.NewStyle().PaddingTop(1).Render(m.list.String())
		previewWithPadding := lipgloss.NewStyle().PaddingTop(1).Render(m.preview.String())
		content = lipgloss.JoinHorizontal(lipgloss.Top, listWithPadding, previewWithPadding)
	}
	if toast := m.toast.String(); toast != "" {
		x := max(c.Width-lipgloss.Width(toast)-2, 0)
		y := max(c.ContentHeight-lipgloss.Height(toast), 0)
		content = overlay.PlaceOverlay(x, y, toast, content, false, false)
	}

	mainView := lipgloss.JoinVertical(
		lipgloss.Center,
		content,
		m.menu.String(),
		m.errBox.String(),
	)

	var fg string
	switch m.state {
	case stateHelp:
		fg = m.textOverlay.Render()
	case stateConfirm:
		fg = m.confirmationOverlay.Render()
	case stateBrowse:
		fg = m.fileBrowser.Render()
	case stateExport:
		fg = m.exportSelector.Render()
	case stateLoading:
		fg = m.loadingOverlay.Render()
	default:
		return mainView
	}
	return overlay.PlaceOverlay(0, 0, fg, mainView, true, true)
}
