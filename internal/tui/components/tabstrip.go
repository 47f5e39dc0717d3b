package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arbortabs/arbor/internal/registry"
	"github.com/arbortabs/arbor/internal/tabs"
	"github.com/arbortabs/arbor/internal/tui"
)

// TabStrip displays the dual-view tab collection: pinned tabs first, then
// the tab trees with fold markers. Edits go through the delegate so the
// flat and hierarchical views stay consistent.
type TabStrip struct {
	title    string
	focused  bool
	width    int
	height   int
	cursor   int
	offset   int // For scrolling
	rows     []Row
	nextTab  int  // counter for naming opened tabs
	gPressed bool // For gg sequence

	delegate *tabs.Delegate
	registry *registry.Memory
}

// NewTabStrip creates a tab strip over the delegate. reg must be the same
// registry the delegate notifies, so collapse state tracks node lifetimes.
func NewTabStrip(delegate *tabs.Delegate, reg *registry.Memory) *TabStrip {
	s := &TabStrip{
		title:    "Tabs",
		delegate: delegate,
		registry: reg,
	}
	s.refresh()
	return s
}

// Init initializes the component.
func (s *TabStrip) Init() tea.Cmd {
	return nil
}

// Rows returns the current visible rows.
func (s *TabStrip) Rows() []Row {
	return s.rows
}

// Cursor returns the current cursor position.
func (s *TabStrip) Cursor() int {
	return s.cursor
}

// Delegate returns the delegate driving the strip.
func (s *TabStrip) Delegate() *tabs.Delegate {
	return s.delegate
}

// Update handles messages.
func (s *TabStrip) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tui.FocusMsg:
		s.focused = true

	case tui.BlurMsg:
		s.focused = false

	case tui.RefreshMsg:
		s.refresh()

	case tea.KeyMsg:
		if s.focused {
			return s.handleKeyMsg(msg)
		}
	}

	return s, nil
}

func (s *TabStrip) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		s.gPressed = false
		return s, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			s.moveCursor(1)
		case "k":
			s.moveCursor(-1)
		case "G":
			if len(s.rows) > 0 {
				s.cursor = len(s.rows) - 1
				s.offset = AdjustOffset(s.cursor, s.offset, s.contentHeight())
			}
			s.gPressed = false
		case "g":
			if s.gPressed {
				s.cursor = 0
				s.offset = 0
				s.gPressed = false
			} else {
				s.gPressed = true
			}
			return s, nil
		case "o":
			s.openChild()
		case "O":
			s.openRoot()
		case "x":
			s.closeCurrent()
		case "p":
			s.togglePin()
		case "h":
			s.fold(true)
		case "l":
			s.fold(false)
		default:
			s.gPressed = false
		}
	}

	s.gPressed = false
	return s, nil
}

func (s *TabStrip) moveCursor(delta int) {
	s.cursor = MoveCursor(s.cursor, delta, len(s.rows))
	s.offset = AdjustOffset(s.cursor, s.offset, s.contentHeight())
}

// openChild opens a new tab under the cursor tab. A pinned cursor cannot
// anchor a tree, so the tab opens at the end of the strip instead.
func (s *TabStrip) openChild() {
	row, ok := s.currentRow()
	if !ok || row.Pinned {
		s.openRoot()
		return
	}

	tab := s.newTab()
	tab.SetOpenerID(row.Tab.ID())
	s.delegate.AddTabRecursive(tab, row.FlatIndex+1, row.Tab.GroupTag(), false, row.Tab)
	s.refresh()
	s.moveCursor(1)
}

// openRoot opens a new standalone tab at the end of the strip.
func (s *TabStrip) openRoot() {
	coll := s.delegate.Collection()
	tab := s.newTab()
	s.delegate.AddTabRecursive(tab, coll.TotalTabCount(), "", false, nil)
	s.refresh()
	if len(s.rows) > 0 {
		s.cursor = len(s.rows) - 1
		s.offset = AdjustOffset(s.cursor, s.offset, s.contentHeight())
	}
}

func (s *TabStrip) newTab() *tabs.Tab {
	s.nextTab++
	return tabs.NewTab(fmt.Sprintf("tab-%d", s.nextTab), "")
}

func (s *TabStrip) closeCurrent() {
	row, ok := s.currentRow()
	if !ok {
		return
	}
	s.delegate.RemoveTabAtIndexRecursive(row.FlatIndex)
	s.refresh()
}

func (s *TabStrip) togglePin() {
	row, ok := s.currentRow()
	if !ok {
		return
	}
	if row.Tab.Pinned() {
		s.delegate.UnpinTab(row.Tab)
	} else {
		s.delegate.PinTab(row.Tab)
	}
	s.refresh()
}

func (s *TabStrip) fold(collapse bool) {
	row, ok := s.currentRow()
	if !ok || row.NodeID == "" || !row.HasKids {
		return
	}
	if err := s.registry.SetCollapsed(row.NodeID, collapse); err == nil {
		s.refresh()
	}
}

func (s *TabStrip) currentRow() (Row, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return Row{}, false
	}
	return s.rows[s.cursor], true
}

// refresh rebuilds the rows from the collection and clamps the cursor.
func (s *TabStrip) refresh() {
	collapsed := make(map[string]bool)
	for _, rec := range s.registry.Records() {
		if rec.Collapsed {
			collapsed[rec.NodeID] = true
		}
	}
	s.rows = BuildRows(s.delegate.Collection(), collapsed)
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.offset = AdjustOffset(s.cursor, s.offset, s.contentHeight())
}

func (s *TabStrip) contentHeight() int {
	h := s.height - 3 // title bar, status line, help line
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the component.
func (s *TabStrip) View() string {
	var sb strings.Builder

	sb.WriteString(tui.RenderTitle(s.title, s.width, s.focused))
	sb.WriteString("\n")

	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("62"))
	pinnedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	end := s.offset + s.contentHeight()
	if end > len(s.rows) {
		end = len(s.rows)
	}
	for i := s.offset; i < end; i++ {
		line := s.renderRow(s.rows[i])
		line = tui.Truncate(line, s.width)
		switch {
		case i == s.cursor && s.focused:
			line = cursorStyle.Render(tui.PadRight(line, s.width))
		case s.rows[i].Pinned:
			line = pinnedStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	coll := s.delegate.Collection()
	status := fmt.Sprintf(" %d tabs, %d pinned", coll.TotalTabCount(), coll.PinnedCount())
	sb.WriteString(tui.PadRight(status, s.width))
	sb.WriteString("\n")
	sb.WriteString(tui.Truncate(" j/k move  o/O open  x close  p pin  h/l fold  q quit", s.width))

	return sb.String()
}

func (s *TabStrip) renderRow(row Row) string {
	indent := strings.Repeat("  ", row.Depth)
	marker := "- "
	switch {
	case row.Pinned:
		marker = "* "
	case row.IsAnchor && row.Collapsed:
		marker = "> "
	case row.IsAnchor:
		marker = "v "
	}
	return " " + indent + marker + row.Tab.Title()
}

// Title returns the component title.
func (s *TabStrip) Title() string {
	return s.title
}

// Focused returns true if focused.
func (s *TabStrip) Focused() bool {
	return s.focused
}

// Focus sets the component as focused.
func (s *TabStrip) Focus() {
	s.focused = true
}

// Blur removes focus.
func (s *TabStrip) Blur() {
	s.focused = false
}

// SetSize sets dimensions.
func (s *TabStrip) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the width.
func (s *TabStrip) Width() int {
	return s.width
}

// Height returns the height.
func (s *TabStrip) Height() int {
	return s.height
}
