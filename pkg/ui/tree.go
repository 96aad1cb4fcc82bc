package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/filetree/pkg/explorer"
	"github.com/vanderheijden86/filetree/pkg/export"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// TreeView renders the visible rows of an explorer.State into a fixed-size
// pane. It owns only scroll position; the cursor follows the primary
// selection unless the caller focuses another selected row.
type TreeView struct {
	theme Theme

	width  int
	height int

	rows           []tree.Row
	cursor         int // index into rows, -1 when nothing is selected
	viewportOffset int
}

// NewTreeView creates an empty tree pane.
func NewTreeView(theme Theme) TreeView {
	return TreeView{theme: theme, cursor: -1}
}

// SetSize sets the pane dimensions, header and indicator lines included.
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// Sync rebuilds the row list from s and moves the cursor to focus, or to
// the primary selection when focus is empty or hidden.
func (t *TreeView) Sync(s explorer.State, focus string) {
	t.rows = s.VisibleRows()
	t.cursor = -1
	primary, _ := s.Selection().Primary()
	at := -1
	for i, r := range t.rows {
		id := r.Node.ID()
		if focus != "" && id == focus {
			t.cursor = i
			break
		}
		if id == primary && at < 0 {
			at = i
		}
	}
	if t.cursor < 0 {
		t.cursor = at
	}
	t.ensureCursorVisible()
}

// Len returns the number of visible rows.
func (t *TreeView) Len() int { return len(t.rows) }

// Cursor returns the row index under the cursor, or -1.
func (t *TreeView) Cursor() int { return t.cursor }

// RowAt maps a line inside the pane (0 is the header) to a node.
func (t *TreeView) RowAt(y int) (tree.Node, bool) {
	if y < 1 {
		return nil, false
	}
	start, end := t.visibleRange()
	i := start + y - 1
	if i < start || i >= end {
		return nil, false
	}
	return t.rows[i].Node, true
}

// PageTarget returns the node a page up (dir < 0) or page down lands on.
func (t *TreeView) PageTarget(dir int) (tree.Node, bool) {
	if len(t.rows) == 0 {
		return nil, false
	}
	pageSize := t.effectiveVisibleCount()
	i := t.cursor
	if i < 0 {
		i = 0
	}
	i += dir * pageSize
	if i >= len(t.rows) {
		i = len(t.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	return t.rows[i].Node, true
}

// effectiveVisibleCount is the number of rows that fit under the header,
// leaving a line for the position indicator when the list scrolls.
func (t *TreeView) effectiveVisibleCount() int {
	n := t.height - 1
	if len(t.rows) > n {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (t *TreeView) visibleRange() (start, end int) {
	if len(t.rows) == 0 {
		return 0, 0
	}

	visibleCount := t.effectiveVisibleCount()

	start = t.viewportOffset
	if start < 0 {
		start = 0
	}
	end = start + visibleCount

	// Clamp and pull start back so the pane stays full.
	if end > len(t.rows) {
		end = len(t.rows)
		start = end - visibleCount
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func (t *TreeView) ensureCursorVisible() {
	if len(t.rows) == 0 || t.cursor < 0 {
		t.viewportOffset = 0
		return
	}

	visibleCount := t.effectiveVisibleCount()

	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+visibleCount {
		t.viewportOffset = t.cursor - visibleCount + 1
	}

	maxOffset := len(t.rows) - visibleCount
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.viewportOffset > maxOffset {
		t.viewportOffset = maxOffset
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

// View renders the pane. renameField replaces the name of the node being
// renamed when it is non-empty.
func (t *TreeView) View(s explorer.State, title, renameField string) string {
	var sb strings.Builder
	sb.WriteString(t.RenderHeader(s, title))
	sb.WriteString("\n")

	if len(t.rows) == 0 {
		sb.WriteString(t.renderEmptyState(s))
		return sb.String()
	}

	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		sb.WriteString(t.renderRow(s, t.rows[i], i == t.cursor, renameField))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(t.rows) > t.height-1 && t.height > 0 {
		sb.WriteString("\n")
		sb.WriteString(t.renderPositionIndicator(start, end))
	}
	return sb.String()
}

// renderPositionIndicator shows "Page X/Y (start-end of total)", 1-indexed.
func (t *TreeView) renderPositionIndicator(start, end int) string {
	currentPage, totalPages := t.pageInfo(t.effectiveVisibleCount())
	indicator := fmt.Sprintf(" Page %d/%d (%d-%d of %d)", currentPage, totalPages, start+1, end, len(t.rows))
	return t.theme.MutedText.Render(indicator)
}

func (t *TreeView) pageInfo(pageSize int) (currentPage, totalPages int) {
	total := len(t.rows)
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = (t.viewportOffset / pageSize) + 1
	if currentPage > totalPages {
		currentPage = totalPages
	}
	return currentPage, totalPages
}

func (t *TreeView) renderEmptyState(s explorer.State) string {
	titleStyle := t.theme.Renderer.NewStyle().
		Foreground(t.theme.Primary).
		Bold(true)

	var sb strings.Builder
	if s.Searching() {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("No matches for %q", s.Query())))
		sb.WriteString("\n\n")
		sb.WriteString(t.theme.MutedText.Render("Press esc to clear the search."))
		return sb.String()
	}
	sb.WriteString(titleStyle.Render("Nothing to show"))
	sb.WriteString("\n\n")
	sb.WriteString(t.theme.MutedText.Render("The tree is empty. Open a snapshot with:"))
	sb.WriteString("\n")
	sb.WriteString(t.theme.MutedText.Render("  ft --snapshot tree.yaml"))
	return sb.String()
}

// RenderHeader returns the title bar: the title on the left and the node
// and selection counts on the right.
func (t *TreeView) RenderHeader(s explorer.State, title string) string {
	width := t.width
	if width <= 0 {
		width = 80
	}
	headerStyle := t.theme.Renderer.NewStyle().
		Background(t.theme.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Width(width)

	right := fmt.Sprintf("%d items", tree.Size(s.Tree()))
	if n := s.Selection().Len(); n > 1 {
		right = fmt.Sprintf("%d selected · %s", n, right)
	}
	left := truncate(" "+title, width-runewidth.StringWidth(right)-2)
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right) - 1
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderRow lays out [marker][guides][expander][name][count].
func (t *TreeView) renderRow(s explorer.State, r tree.Row, isCursor bool, renameField string) string {
	n := r.Node
	id := n.ID()
	drag := s.Drag()

	marker := " "
	if s.Selection().Contains(id) && !isCursor {
		marker = t.theme.Marked.Render("▌")
	}

	guides := export.Prefix(r)

	expander := "  "
	if f, ok := n.(tree.Folder); ok {
		switch {
		case f.Len() == 0:
			expander = "▹ "
		case s.Searching() || s.Expanded().Has(id):
			expander = "▾ "
		default:
			expander = "▸ "
		}
	}

	suffix := ""
	if f, ok := n.(tree.Folder); ok && f.Len() > 0 && !s.Searching() && !s.Expanded().Has(id) {
		suffix = fmt.Sprintf(" %d", f.Len())
	}
	if drag.Dragging() && drag.Active == id {
		suffix += " ⇢"
	}

	// Selected style adds a border and padding on the left.
	avail := t.width - 3 - runewidth.StringWidth(guides) - runewidth.StringWidth(expander) - runewidth.StringWidth(suffix)
	if avail < 4 {
		avail = 4
	}

	var name string
	switch {
	case n.Renaming() && renameField != "":
		name = renameField
	default:
		name = t.renderName(s, n, truncate(n.Name(), avail))
	}

	line := marker + t.theme.MutedText.Render(guides) + t.theme.MutedText.Render(expander) + name + t.theme.MutedText.Render(suffix)
	if isCursor {
		return t.theme.Selected.Render(line)
	}
	return line
}

// renderName styles a (possibly truncated) name for its role: drop target,
// cut source, search match or plain file/folder.
func (t *TreeView) renderName(s explorer.State, n tree.Node, name string) string {
	id := n.ID()
	if s.Drag().Over == id {
		return t.theme.DropTarget.Render(name)
	}
	if c := s.Clipboard(); c.Present && c.Op == explorer.OpCut && c.SourceID == id {
		return t.theme.CutText.Render(name)
	}

	base := t.theme.FileText
	if tree.IsFolder(n) {
		base = t.theme.FolderText
	}
	if start, end := matchSpan(name, s.Query()); start >= 0 {
		return base.Render(name[:start]) + t.theme.MatchText.Render(name[start:end]) + base.Render(name[end:])
	}
	return base.Render(name)
}

// renderSearchBar renders "/query [n matches]" or "[no matches]".
func renderSearchBar(theme Theme, input string, s explorer.State) string {
	matchInfo := ""
	switch {
	case s.Searching() && s.MatchCount() > 0:
		matchInfo = fmt.Sprintf(" [%d matches]", s.MatchCount())
	case s.Searching():
		matchInfo = " [no matches]"
	}
	return theme.PrimaryBold.Render("/") + input + theme.MutedText.Render(matchInfo)
}
