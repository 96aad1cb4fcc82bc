// Package ui is the terminal front end: a bubbletea program that draws an
// explorer.State and turns keys and mouse gestures into intents.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/filetree/pkg/clock"
	"github.com/vanderheijden86/filetree/pkg/config"
	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/explorer"
	"github.com/vanderheijden86/filetree/pkg/metrics"
	"github.com/vanderheijden86/filetree/pkg/search"
	"github.com/vanderheijden86/filetree/pkg/tree"
	"github.com/vanderheijden86/filetree/pkg/watcher"
)

// SearchCommitMsg carries a debounced query into the update loop.
type SearchCommitMsg struct {
	Query string
}

// DismissMsg expires the notification numbered Seq.
type DismissMsg struct {
	Seq uint64
}

// SnapshotChangedMsg is sent when a watched snapshot file changes on disk.
type SnapshotChangedMsg struct{}

// SnapshotLoadedMsg carries the result of reloading the snapshot files.
type SnapshotLoadedMsg struct {
	Tree tree.Tree
	Err  error
}

// ReloadFunc loads the tree again after a change on disk.
type ReloadFunc func(ctx context.Context) (tree.Tree, error)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeRename
	modeConfirmDelete
)

// Option configures a Model.
type Option func(*Model)

// WithConfig applies user configuration.
func WithConfig(cfg config.Config) Option {
	return func(m *Model) {
		m.cfg = cfg
	}
}

// WithTitle sets the text of the title bar.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithClock replaces the wall clock used by the search debouncer.
func WithClock(c clock.Clock) Option {
	return func(m *Model) {
		m.clock = c
	}
}

// WithWatcher reloads the tree through reload whenever w reports a change.
func WithWatcher(w *watcher.Watcher, reload ReloadFunc) Option {
	return func(m *Model) {
		m.watcher = w
		m.reload = reload
	}
}

// WithSystemClipboard replaces the function that mirrors copied paths to
// the system clipboard.
func WithSystemClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.writeClipboard = write
	}
}

// WithPreviewStyle selects a glamour standard style ("dark", "light",
// "notty") instead of auto-detection.
func WithPreviewStyle(style string) Option {
	return func(m *Model) {
		m.previewStyle = style
	}
}

// Model is the bubbletea model. The explorer.State is the single source of
// truth; everything else here is presentation.
type Model struct {
	state explorer.State
	cfg   config.Config
	theme Theme
	title string

	tree         TreeView
	preview      PreviewModel
	previewStyle string
	showPreview  bool
	showHelp     bool

	width  int
	height int
	ready  bool

	mode        mode
	searchInput textinput.Model
	renameInput textinput.Model
	renameID    string
	confirmIDs  []string

	clock   clock.Clock
	search  *search.Debouncer
	queries chan string

	watcher *watcher.Watcher
	reload  ReloadFunc

	writeClipboard func(string) error

	// noticeSeq is the last notification a dismissal was scheduled for.
	noticeSeq uint64
	// pressID is the node under a held mouse button.
	pressID string
	// focusID is the moving end of a keyboard range selection.
	focusID string
}

// NewModel wraps s in a terminal UI.
func NewModel(s explorer.State, opts ...Option) Model {
	m := Model{
		state:          s,
		cfg:            config.DefaultConfig(),
		title:          "ft",
		clock:          clock.System(),
		writeClipboard: clipboard.WriteAll,
		queries:        make(chan string, 1),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.theme = DefaultTheme(lipgloss.DefaultRenderer())
	m.tree = NewTreeView(m.theme)
	m.preview = NewPreviewModel(m.theme, m.previewStyle)
	m.showPreview = m.cfg.UI.ShowPreview

	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = "search names"
	si.CharLimit = 200
	m.searchInput = si

	ri := textinput.New()
	ri.Prompt = ""
	ri.CharLimit = 255
	m.renameInput = ri

	queries := m.queries
	m.search = search.New(func(q string) { pushLatest(queries, q) },
		search.WithClock(m.clock),
		search.WithDelay(m.cfg.Search.Debounce))

	if m.state.Selection().Empty() {
		m.state = m.state.Navigate(explorer.First)
	}
	m.sync()
	return m
}

// pushLatest hands q to the update loop, replacing an unread older query.
func pushLatest(ch chan string, q string) {
	for {
		select {
		case ch <- q:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// State returns the current explorer state.
func (m Model) State() explorer.State { return m.state }

// waitForQuery blocks until the debouncer commits a query.
func waitForQuery(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-ch
		if !ok {
			return nil
		}
		return SearchCommitMsg{Query: q}
	}
}

// WatchSnapshotCmd waits for the watcher to report a change.
func WatchSnapshotCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return SnapshotChangedMsg{}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	reload := m.reload
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		t, err := reload(ctx)
		return SnapshotLoadedMsg{Tree: t, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForQuery(m.queries)}
	if m.watcher != nil && m.reload != nil {
		cmds = append(cmds, WatchSnapshotCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case SearchCommitMsg:
		m.state = m.state.SetSearchQuery(msg.Query)
		cmds = append(cmds, waitForQuery(m.queries))

	case DismissMsg:
		m.state = m.state.DismissNotification(msg.Seq)

	case SnapshotChangedMsg:
		debug.Log("ui: snapshot changed on disk")
		cmds = append(cmds, m.reloadCmd(), WatchSnapshotCmd(m.watcher))

	case SnapshotLoadedMsg:
		if msg.Err != nil {
			m.state = m.state.Notify(explorer.LevelError, fmt.Sprintf("Reload failed: %v", msg.Err))
		} else {
			m.state = m.state.Replace(msg.Tree)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.sync()
	if cmd := m.scheduleDismiss(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// sync brings the panes in line with the state after every update.
func (m *Model) sync() {
	treeWidth, previewWidth := m.paneWidths()
	bodyHeight := m.bodyHeight()

	if m.focusID != "" && !m.state.Selection().Contains(m.focusID) {
		m.focusID = ""
	}
	m.tree.SetSize(treeWidth, bodyHeight)
	m.tree.Sync(m.state, m.focusID)

	if m.mode == modeRename {
		if n, ok := m.state.Renaming(); !ok || n.ID() != m.renameID {
			m.endRename()
		}
	}

	if previewWidth > 0 {
		m.preview.SetSize(previewWidth, bodyHeight)
		if n, ok := m.state.Current(); ok {
			m.preview.SetNode(n, nodePath(m.state.Tree(), n.ID()))
		} else {
			m.preview.SetNode(nil, "")
		}
	}
}

func (m Model) scheduleDismissCmd(seq uint64) tea.Cmd {
	ttl := m.cfg.UI.NotificationTTL
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}

func (m *Model) scheduleDismiss() tea.Cmd {
	n, ok := m.state.Notification()
	if !ok || n.Seq == m.noticeSeq {
		return nil
	}
	m.noticeSeq = n.Seq
	return m.scheduleDismissCmd(n.Seq)
}

func (m Model) paneWidths() (treeWidth, previewWidth int) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if !m.showPreview || width < 60 {
		return width, 0
	}
	ratio := m.cfg.UI.SplitRatio
	if ratio <= 0 {
		ratio = 0.4
	}
	treeWidth = int(float64(width) * ratio)
	// One column goes to the divider.
	return treeWidth, width - treeWidth - 1
}

// bodyHeight leaves one line for the status bar.
func (m Model) bodyHeight() int {
	h := m.height
	if h <= 0 {
		h = 24
	}
	if h-1 < 2 {
		return 2
	}
	return h - 1
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeRename:
		return m.handleRenameKey(msg)
	case modeConfirmDelete:
		m.handleConfirmKey(msg)
		return nil
	}

	key := msg.String()
	if key != "shift+down" && key != "shift+up" {
		m.focusID = ""
	}
	switch key {
	case "q":
		return m.quit()

	case "up", "k":
		m.navigate(explorer.Up)
	case "down", "j":
		m.navigate(explorer.Down)
	case "right", "l":
		m.navigate(explorer.Expand)
	case "left", "h":
		m.collapseOrParent()
	case "g", "home":
		m.navigate(explorer.First)
	case "G", "end":
		m.navigate(explorer.Last)
	case "pgdown", "ctrl+d":
		m.page(1)
	case "pgup", "ctrl+u":
		m.page(-1)
	case "shift+down", "shift+up":
		m.extendSelection(key == "shift+down")

	case " ":
		if id, ok := m.currentID(); ok {
			m.state = m.state.Select(id, explorer.Modifiers{Toggle: true})
		}
	case "tab":
		if id, ok := m.currentID(); ok {
			m.state = m.state.ToggleExpand(id)
		}
	case "enter":
		m.activate()
	case "o":
		if id, ok := m.currentID(); ok {
			m.state = m.state.Open(id)
		}
	case "esc":
		m.escape()

	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.state.Query())
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case "r", "f2":
		if id, ok := m.currentID(); ok {
			next, err := m.state.StartRename(id)
			if err == nil {
				m.state = next
				return m.beginRename(id)
			}
		}
	case "a":
		return m.create(tree.KindFile)
	case "A":
		return m.create(tree.KindFolder)
	case "d", "delete":
		m.requestDelete()

	case "c", "y":
		m.stage(explorer.OpCopy)
	case "x":
		m.stage(explorer.OpCut)
	case "p":
		m.paste()

	case "m":
		if id, ok := m.currentID(); ok {
			m.state = m.state.DragStart(id)
		}

	case "E":
		m.state = m.state.ExpandAll()
	case "C":
		m.state = m.state.CollapseAll()
	case "P":
		m.showPreview = !m.showPreview
	case "J":
		m.preview.ScrollDown(3)
	case "K":
		m.preview.ScrollUp(3)
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close disarms the search debouncer. Call it once the program has exited,
// however it was stopped.
func (m Model) Close() {
	m.search.Stop()
}

func (m Model) currentID() (string, bool) {
	return m.state.Selection().Primary()
}

// navigate moves the cursor and, during a drag, offers the new row as the
// drop target.
func (m *Model) navigate(dir explorer.Direction) {
	if _, ok := m.currentID(); !ok && (dir == explorer.Up || dir == explorer.Down) {
		dir = explorer.First
	}
	m.state = m.state.Navigate(dir)
	m.hover()
}

func (m *Model) hover() {
	if !m.state.Drag().Dragging() {
		return
	}
	if id, ok := m.currentID(); ok {
		m.state = m.state.DragOver(id)
	}
}

// collapseOrParent collapses an open folder, or jumps to the parent.
func (m *Model) collapseOrParent() {
	id, ok := m.currentID()
	if !ok {
		return
	}
	if m.state.Expanded().Has(id) && !m.state.Searching() {
		m.state = m.state.Navigate(explorer.Collapse)
		return
	}
	if p, ok := tree.FindParent(m.state.Tree(), id); ok {
		m.state = m.state.Select(p.ID(), explorer.Modifiers{})
		m.hover()
	}
}

func (m *Model) page(dir int) {
	if n, ok := m.tree.PageTarget(dir); ok {
		m.state = m.state.Select(n.ID(), explorer.Modifiers{})
		m.hover()
	}
}

// extendSelection range-selects from the anchor to the next visible row.
func (m *Model) extendSelection(down bool) {
	visible := m.state.Visible()
	if len(visible) == 0 {
		return
	}
	i := m.tree.Cursor()
	switch {
	case i < 0:
		i = 0
	case down && i < len(visible)-1:
		i++
	case !down && i > 0:
		i--
	}
	m.state = m.state.Select(visible[i].ID(), explorer.Modifiers{Range: true})
	// The cursor stays on the row just reached, not the range's first id.
	m.focusID = visible[i].ID()
}

// activate drops a drag, toggles a folder or opens a file.
func (m *Model) activate() {
	if m.state.Drag().Dragging() {
		m.drop()
		return
	}
	n, ok := m.state.Current()
	if !ok {
		return
	}
	if tree.IsFolder(n) {
		m.state = m.state.ToggleExpand(n.ID())
		return
	}
	m.state = m.state.Open(n.ID())
}

func (m *Model) drop() {
	d := m.state.Drag()
	if d.Over == "" {
		m.state = m.state.DragCancel().Notify(explorer.LevelError, "Cannot move there")
		return
	}
	m.state = m.state.DragEnd()
}

func (m *Model) escape() {
	switch {
	case m.state.Drag().Dragging():
		m.state = m.state.DragCancel()
	case m.state.Searching():
		m.search.Flush("")
		m.state = m.state.SetSearchQuery("")
	case m.state.Clipboard().Present:
		m.state = m.state.ClearClipboard()
	default:
		m.state = m.state.ClearSelection()
	}
}

// targetFolder is where new and pasted nodes go: the current folder, or the
// folder holding the current file.
func (m Model) targetFolder() string {
	n, ok := m.state.Current()
	if !ok {
		return ""
	}
	if tree.IsFolder(n) {
		return n.ID()
	}
	if p, ok := tree.FindParent(m.state.Tree(), n.ID()); ok {
		return p.ID()
	}
	return ""
}

func (m *Model) create(kind tree.Kind) tea.Cmd {
	var (
		next explorer.State
		err  error
	)
	if kind == tree.KindFolder {
		next, err = m.state.NewFolder(m.targetFolder())
	} else {
		next, err = m.state.NewFile(m.targetFolder())
	}
	m.state = next
	if err != nil {
		return nil
	}
	if n, ok := m.state.Renaming(); ok {
		return m.beginRename(n.ID())
	}
	return nil
}

func (m *Model) stage(op explorer.Op) {
	id, ok := m.currentID()
	if !ok {
		return
	}
	var (
		next explorer.State
		err  error
	)
	if op == explorer.OpCut {
		next, err = m.state.Cut(id)
	} else {
		next, err = m.state.Copy(id)
	}
	if err != nil {
		return
	}
	m.state = next
	if err := m.writeClipboard(nodePath(m.state.Tree(), id)); err != nil {
		debug.Log("ui: system clipboard: %v", err)
	}
}

func (m *Model) paste() {
	if !m.state.Clipboard().Present {
		m.state = m.state.Notify(explorer.LevelInfo, "Clipboard is empty")
		return
	}
	next, err := m.state.Paste(m.targetFolder())
	if err != nil {
		if errors.Is(err, tree.ErrInvalidTarget) || errors.Is(err, tree.ErrNotFound) {
			m.state = m.state.Notify(explorer.LevelError, "Cannot paste here")
		}
		debug.Log("ui: paste: %v", err)
		return
	}
	m.state = next
}

func (m *Model) requestDelete() {
	ids := m.state.Selection().IDs()
	if len(ids) == 0 {
		return
	}
	if !m.cfg.UI.ConfirmDelete {
		m.deleteAll(ids)
		return
	}
	m.confirmIDs = ids
	m.mode = modeConfirmDelete
}

func (m *Model) deleteAll(ids []string) {
	for _, id := range ids {
		m.state = m.state.Delete(id)
	}
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) {
	ids := m.confirmIDs
	m.confirmIDs = nil
	m.mode = modeNormal
	switch msg.String() {
	case "y", "Y", "enter":
		m.deleteAll(ids)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.search.Flush("")
		m.state = m.state.SetSearchQuery("")
		return nil
	case "enter":
		m.mode = modeNormal
		m.searchInput.Blur()
		q := m.searchInput.Value()
		m.search.Flush(q)
		m.state = m.state.SetSearchQuery(q)
		if m.state.Selection().Empty() {
			m.state = m.state.Navigate(explorer.First)
		}
		return nil
	case "up", "down":
		if msg.String() == "up" {
			m.navigate(explorer.Up)
		} else {
			m.navigate(explorer.Down)
		}
		return nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.search.Input(after)
	}
	return cmd
}

func (m *Model) beginRename(id string) tea.Cmd {
	n, ok := m.state.Node(id)
	if !ok {
		return nil
	}
	m.mode = modeRename
	m.renameID = id
	m.renameInput.SetValue(n.Name())
	m.renameInput.CursorEnd()
	return m.renameInput.Focus()
}

func (m *Model) endRename() {
	m.mode = modeNormal
	m.renameID = ""
	m.renameInput.Blur()
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		id := m.renameID
		next, err := m.state.Rename(id, m.renameInput.Value())
		if err != nil {
			debug.Log("ui: rename %s: %v", id, err)
			m.state = m.state.CancelRename(id).Notify(explorer.LevelError, "Rename failed")
		} else {
			m.state = next
		}
		m.endRename()
		return nil
	case "esc":
		m.state = m.state.CancelRename(m.renameID)
		m.endRename()
		return nil
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return cmd
}

// handleMouse maps clicks to selection and press-move-release to drag and
// drop. Rows are counted from the top of the tree pane.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.mode != modeNormal {
		return
	}
	treeWidth, _ := m.paneWidths()
	if msg.X >= treeWidth {
		return
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.navigate(explorer.Up)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.navigate(explorer.Down)
		return
	}

	n, onRow := m.tree.RowAt(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onRow {
			return
		}
		m.pressID = n.ID()
		m.state = m.state.Select(n.ID(), explorer.Modifiers{Toggle: msg.Ctrl || msg.Alt, Range: msg.Shift})

	case tea.MouseActionMotion:
		if m.pressID == "" || !onRow {
			return
		}
		if !m.state.Drag().Dragging() {
			if n.ID() == m.pressID {
				return
			}
			m.state = m.state.DragStart(m.pressID)
		}
		m.state = m.state.DragOver(n.ID())

	case tea.MouseActionRelease:
		m.pressID = ""
		if m.state.Drag().Dragging() {
			m.state = m.state.DragEnd()
		}
	}
}

func (m Model) View() string {
	defer metrics.TimerWithCallback(metrics.UIRender, func(d time.Duration) {
		debug.LogTiming("ui render", d)
	})()

	if !m.ready {
		return "Loading..."
	}

	treeWidth, previewWidth := m.paneWidths()
	bodyHeight := m.bodyHeight()

	renameField := ""
	if m.mode == modeRename {
		renameField = m.renameInput.View()
	}
	treePane := m.theme.Renderer.NewStyle().
		Width(treeWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.tree.View(m.state, m.title, renameField))

	body := treePane
	if previewWidth > 0 {
		divider := m.theme.Renderer.NewStyle().
			Foreground(m.theme.Border).
			Render(strings.TrimRight(strings.Repeat("│\n", bodyHeight), "\n"))
		previewPane := m.theme.Renderer.NewStyle().
			Width(previewWidth).
			Height(bodyHeight).
			MaxHeight(bodyHeight).
			Render(m.preview.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, treePane, divider, previewPane)
	}
	if m.showHelp {
		body = m.renderHelp(bodyHeight)
	}

	return body + "\n" + m.renderStatusBar()
}

// renderStatusBar shows, by priority: the active prompt, the latest
// notification, the drag status, then key hints.
func (m Model) renderStatusBar() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	var line string
	switch {
	case m.mode == modeSearch:
		line = renderSearchBar(m.theme, m.searchInput.View(), m.state)
	case m.mode == modeConfirmDelete:
		line = m.theme.Renderer.NewStyle().Foreground(m.theme.Danger).Bold(true).
			Render(m.confirmPrompt()) + m.theme.MutedText.Render("  y/n")
	case m.mode == modeRename:
		line = RenderKeyHints(m.theme, [2]string{"enter", "rename"}, [2]string{"esc", "cancel"})
	default:
		if n, ok := m.state.Notification(); ok {
			line = RenderNotice(n, m.theme)
		} else if d := m.state.Drag(); d.Dragging() {
			line = m.dragStatus(d)
		} else if m.state.Searching() {
			line = renderSearchBar(m.theme, m.state.Query(), m.state)
		} else {
			line = RenderKeyHints(m.theme,
				[2]string{"/", "search"}, [2]string{"a/A", "new"}, [2]string{"r", "rename"},
				[2]string{"c/x/p", "clipboard"}, [2]string{"m", "move"}, [2]string{"?", "help"})
		}
	}
	if badge := RenderClipboardBadge(m.state.Clipboard(), m.theme); badge != "" {
		line = badge + " " + line
	}
	return truncateStyled(line, width)
}

func (m Model) confirmPrompt() string {
	if len(m.confirmIDs) == 1 {
		if n, ok := m.state.Node(m.confirmIDs[0]); ok {
			return fmt.Sprintf("Delete %s?", n.Name())
		}
	}
	return fmt.Sprintf("Delete %d items?", len(m.confirmIDs))
}

func (m Model) dragStatus(d explorer.Drag) string {
	name := d.Active
	if n, ok := m.state.Node(d.Active); ok {
		name = n.Name()
	}
	target := "pick a folder"
	if d.Over != "" {
		if n, ok := m.state.Node(d.Over); ok {
			target = "drop into " + n.Name()
		}
	}
	return m.theme.PrimaryBold.Render("Moving "+name) + m.theme.MutedText.Render(" · "+target+" · enter drop · esc cancel")
}

var helpRows = [][2]string{
	{"j/k ↑/↓", "Move"},
	{"h/l ←/→", "Collapse / expand"},
	{"g/G", "First / last"},
	{"space", "Toggle selection"},
	{"shift+↑/↓", "Extend selection"},
	{"enter", "Open file, toggle folder, drop"},
	{"/", "Search"},
	{"a / A", "New file / folder"},
	{"r", "Rename"},
	{"d", "Delete"},
	{"c x p", "Copy, cut, paste"},
	{"m", "Pick up for moving"},
	{"E / C", "Expand / collapse all"},
	{"P", "Toggle preview"},
	{"J / K", "Scroll preview"},
	{"esc", "Cancel, clear"},
	{"q", "Quit"},
}

func (m Model) renderHelp(height int) string {
	var sb strings.Builder
	sb.WriteString(m.theme.Header.Render("Keys"))
	sb.WriteString("\n\n")
	for _, r := range helpRows {
		sb.WriteString(m.theme.PrimaryBold.Render(padRight(r[0], 12)))
		sb.WriteString(m.theme.Base.Render(r[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.MutedText.Render("Press ? to close."))
	return m.theme.Renderer.NewStyle().Height(height).MaxHeight(height).Padding(0, 1).Render(sb.String())
}

// truncateStyled clips a styled line to width cells.
func truncateStyled(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
