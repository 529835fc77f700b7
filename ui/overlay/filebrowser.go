package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"door-import/panel"
)

// FileEntry is a directory or panel file shown in the browser.
type FileEntry struct {
	Name     string
	Path     string
	IsDir    bool
	Format   panel.Format
	Expanded bool
	Depth    int
	Parent   *FileEntry
	Children []*FileEntry
}

// FileBrowserOverlay picks panel files to import. Space marks files, enter
// imports the marked files or the one under the cursor.
type FileBrowserOverlay struct {
	root        *FileEntry
	entries     []*FileEntry // flattened tree in display order
	selectedIdx int
	marked      map[string]bool

	Submitted     bool
	Canceled      bool
	SelectedPaths []string

	width, height int
	scrollOffset  int
	message       string
	messageTime   time.Time
}

// NewFileBrowserOverlay creates a file browser rooted at startPath. A
// leading ~ is expanded to the home directory.
func NewFileBrowserOverlay(startPath string) (*FileBrowserOverlay, error) {
	fb := &FileBrowserOverlay{
		marked: make(map[string]bool),
	}
	if err := fb.NavigateToPath(startPath); err != nil {
		return nil, err
	}
	return fb, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// loadChildren reads the directories and supported panel files under entry.
func (fb *FileBrowserOverlay) loadChildren(entry *FileEntry) error {
	if !entry.IsDir {
		return nil
	}

	dirEntries, err := os.ReadDir(entry.Path)
	if err != nil {
		return err
	}

	entry.Children = make([]*FileEntry, 0)
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !de.IsDir() && !panel.Supported(name) {
			continue
		}

		entry.Children = append(entry.Children, &FileEntry{
			Name:   name,
			Path:   filepath.Join(entry.Path, name),
			IsDir:  de.IsDir(),
			Format: panel.DetectFormat(name),
			Depth:  entry.Depth + 1,
			Parent: entry,
		})
	}

	// Directories first, then files, each alphabetically.
	sort.Slice(entry.Children, func(i, j int) bool {
		a, b := entry.Children[i], entry.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return nil
}

func (fb *FileBrowserOverlay) flattenEntries() {
	fb.entries = fb.entries[:0]
	fb.flattenEntry(fb.root)
	if fb.selectedIdx >= len(fb.entries) {
		fb.selectedIdx = max(0, len(fb.entries)-1)
	}
}

func (fb *FileBrowserOverlay) flattenEntry(entry *FileEntry) {
	fb.entries = append(fb.entries, entry)
	if entry.Expanded {
		for _, child := range entry.Children {
			fb.flattenEntry(child)
		}
	}
}

// SetSize sets the size of the file browser
func (fb *FileBrowserOverlay) SetSize(width, height int) {
	fb.width = width
	fb.height = height
}

func (fb *FileBrowserOverlay) setMessage(msg string) {
	fb.message = msg
	fb.messageTime = time.Now()
}

// getMessage returns the feedback message while it is less than two
// seconds old.
func (fb *FileBrowserOverlay) getMessage() string {
	if fb.message != "" && time.Since(fb.messageTime) < 2*time.Second {
		return fb.message
	}
	fb.message = ""
	return ""
}

func (fb *FileBrowserOverlay) current() *FileEntry {
	if fb.selectedIdx < 0 || fb.selectedIdx >= len(fb.entries) {
		return nil
	}
	return fb.entries[fb.selectedIdx]
}

func (fb *FileBrowserOverlay) move(delta int) {
	next := fb.selectedIdx + delta
	if next < 0 || next >= len(fb.entries) {
		return
	}
	fb.selectedIdx = next
	fb.adjustScroll()
}

func (fb *FileBrowserOverlay) expand(entry *FileEntry) {
	if entry == nil || !entry.IsDir || entry.Expanded {
		return
	}
	if entry.Children == nil {
		if err := fb.loadChildren(entry); err != nil {
			fb.setMessage(fmt.Sprintf("Cannot read %s: %v", entry.Name, err))
			return
		}
	}
	entry.Expanded = true
	fb.flattenEntries()
}

// collapse folds the directory under the cursor, or moves to its parent.
func (fb *FileBrowserOverlay) collapse(entry *FileEntry) {
	if entry == nil {
		return
	}
	if entry.IsDir && entry.Expanded && entry != fb.root {
		entry.Expanded = false
		fb.flattenEntries()
		return
	}
	for i, e := range fb.entries {
		if e == entry.Parent {
			fb.selectedIdx = i
			fb.adjustScroll()
			return
		}
	}
}

// toggleMark marks or unmarks the file under the cursor.
func (fb *FileBrowserOverlay) toggleMark(entry *FileEntry) {
	if entry == nil {
		return
	}
	if entry.IsDir {
		fb.setMessage("Only files can be selected, press → to open the folder")
		return
	}
	if fb.marked[entry.Path] {
		delete(fb.marked, entry.Path)
	} else {
		fb.marked[entry.Path] = true
	}
	fb.move(1)
}

// MarkedCount returns the number of files marked for import.
func (fb *FileBrowserOverlay) MarkedCount() int {
	return len(fb.marked)
}

// submit finishes with the marked files, or the file under the cursor when
// nothing is marked.
func (fb *FileBrowserOverlay) submit() bool {
	if len(fb.marked) > 0 {
		fb.SelectedPaths = make([]string, 0, len(fb.marked))
		for path := range fb.marked {
			fb.SelectedPaths = append(fb.SelectedPaths, path)
		}
		sort.Strings(fb.SelectedPaths)
		fb.Submitted = true
		return true
	}

	entry := fb.current()
	if entry == nil {
		return false
	}
	if entry.IsDir {
		if entry.Expanded && entry != fb.root {
			fb.collapse(entry)
		} else {
			fb.expand(entry)
		}
		return false
	}
	fb.SelectedPaths = []string{entry.Path}
	fb.Submitted = true
	return true
}

// HandleKeyPress processes a key press and reports whether the overlay
// should close.
func (fb *FileBrowserOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		fb.move(-1)
		return false
	case tea.KeyDown:
		fb.move(1)
		return false
	case tea.KeyRight:
		fb.expand(fb.current())
		return false
	case tea.KeyLeft:
		fb.collapse(fb.current())
		return false
	case tea.KeySpace:
		fb.toggleMark(fb.current())
		return false
	case tea.KeyEnter:
		return fb.submit()
	case tea.KeyEsc:
		fb.Canceled = true
		return true
	}

	switch msg.String() {
	case "j":
		fb.move(1)
	case "k":
		fb.move(-1)
	case "l":
		fb.expand(fb.current())
	case "h":
		fb.collapse(fb.current())
	case " ":
		fb.toggleMark(fb.current())
	case "a":
		// Mark every visible file.
		for _, e := range fb.entries {
			if !e.IsDir {
				fb.marked[e.Path] = true
			}
		}
	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			if err := fb.NavigateToPath(home); err != nil {
				fb.setMessage(err.Error())
			}
		}
	case "u", "-":
		if err := fb.GoUp(); err != nil {
			fb.setMessage(err.Error())
		}
	case "g":
		fb.selectedIdx = 0
		fb.scrollOffset = 0
	case "G":
		fb.selectedIdx = len(fb.entries) - 1
		fb.adjustScroll()
	}

	return false
}

func (fb *FileBrowserOverlay) adjustScroll() {
	visibleRows := fb.getVisibleRows()
	if visibleRows <= 0 {
		return
	}

	if fb.selectedIdx < fb.scrollOffset {
		fb.scrollOffset = fb.selectedIdx
	} else if fb.selectedIdx >= fb.scrollOffset+visibleRows {
		fb.scrollOffset = fb.selectedIdx - visibleRows + 1
	}
}

// getVisibleRows is the height left after the title, path, separators,
// message, help text, border and padding.
func (fb *FileBrowserOverlay) getVisibleRows() int {
	return fb.height - 12
}

// IsSubmitted returns whether files were chosen
func (fb *FileBrowserOverlay) IsSubmitted() bool {
	return fb.Submitted
}

// IsCanceled returns whether the browser was closed without choosing
func (fb *FileBrowserOverlay) IsCanceled() bool {
	return fb.Canceled
}

// Dir returns the directory the browser is rooted at.
func (fb *FileBrowserOverlay) Dir() string {
	return fb.root.Path
}

// View renders the file browser
func (fb *FileBrowserOverlay) View() string {
	return fb.Render()
}

// Render renders the file browser overlay
func (fb *FileBrowserOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true)

	pathStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("0")).
		Bold(true)

	fileStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#51bd73"))

	markedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#51bd73")).
		Bold(true)

	dirStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888"))

	helpKeyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Bold(true)

	helpDescStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#de613e")).
		Italic(true)

	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#444444"))

	sepWidth := max(fb.width-6, 10)
	lineWidth := fb.width - 8

	title := "Import Panel Files"
	if n := len(fb.marked); n > 0 {
		title += fmt.Sprintf(" (%d selected)", n)
	}
	content := titleStyle.Render(title) + "\n"
	content += pathStyle.Render(fb.root.Path) + "\n"
	content += separatorStyle.Render(strings.Repeat("─", sepWidth)) + "\n"

	visibleRows := fb.getVisibleRows()
	if visibleRows < 1 {
		visibleRows = 10
	}

	startIdx := fb.scrollOffset
	endIdx := min(fb.scrollOffset+visibleRows, len(fb.entries))

	for i := startIdx; i < endIdx; i++ {
		entry := fb.entries[i]

		indent := strings.Repeat("  ", entry.Depth)
		var prefix, icon string
		switch {
		case entry.IsDir && entry.Expanded:
			prefix, icon = "v ", "[dir] "
		case entry.IsDir:
			prefix, icon = "> ", "[dir] "
		case fb.marked[entry.Path]:
			prefix, icon = "* ", "["+entry.Format.String()+"] "
		default:
			prefix, icon = "  ", "["+entry.Format.String()+"] "
		}

		line := indent + prefix + icon + entry.Name
		if lineWidth > 3 && len(line) > lineWidth {
			line = line[:lineWidth-3] + "..."
		}

		switch {
		case i == fb.selectedIdx:
			if len(line) < lineWidth {
				line += strings.Repeat(" ", lineWidth-len(line))
			}
			line = selectedStyle.Render(line)
		case entry.IsDir:
			line = dirStyle.Render(line)
		case fb.marked[entry.Path]:
			line = markedStyle.Render(line)
		default:
			line = fileStyle.Render(line)
		}

		content += line + "\n"
	}

	if len(fb.entries) > visibleRows {
		content += pathStyle.Render(fmt.Sprintf("  (%d-%d of %d)", fb.scrollOffset+1, endIdx, len(fb.entries))) + "\n"
	} else {
		content += "\n"
	}

	if msg := fb.getMessage(); msg != "" {
		content += messageStyle.Render(msg) + "\n"
	} else {
		content += "\n"
	}

	content += separatorStyle.Render(strings.Repeat("─", sepWidth)) + "\n"

	helpLines := []struct{ key, desc string }{
		{"↑/k ↓/j", "navigate"},
		{"←/h →/l", "folders"},
		{"space", "select"},
		{"a", "select all"},
		{"Enter", "import"},
		{"-/u", "parent dir"},
		{"Esc", "cancel"},
	}

	var helpParts []string
	for _, h := range helpLines {
		helpParts = append(helpParts, helpKeyStyle.Render(h.key)+helpDescStyle.Render(" "+h.desc))
	}
	content += strings.Join(helpParts, helpDescStyle.Render(" • "))

	return style.Render(content)
}

// NavigateToPath re-roots the browser at path. Marked files are kept.
func (fb *FileBrowserOverlay) NavigateToPath(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absPath)
	}

	root := &FileEntry{
		Name:     filepath.Base(absPath),
		Path:     absPath,
		IsDir:    true,
		Expanded: true,
	}
	if err := fb.loadChildren(root); err != nil {
		return err
	}

	fb.root = root
	fb.selectedIdx = 0
	fb.scrollOffset = 0
	fb.flattenEntries()
	// Start on the first child rather than the root itself.
	if len(fb.entries) > 1 {
		fb.selectedIdx = 1
	}
	return nil
}

// GoUp navigates to the parent directory
func (fb *FileBrowserOverlay) GoUp() error {
	parentPath := filepath.Dir(fb.root.Path)
	if parentPath == fb.root.Path {
		return nil
	}
	return fb.NavigateToPath(parentPath)
}
