package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/filetree/pkg/clock"
	"github.com/vanderheijden86/filetree/pkg/config"
	"github.com/vanderheijden86/filetree/pkg/explorer"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// sampleTree:
//
//	src (1)
//	├── app (2)
//	│   ├── page.tsx (3)
//	│   └── layout.tsx (4)
//	└── utils.ts (5)
//	README.md (6)
func sampleTree() tree.Tree {
	return tree.New(
		tree.NewFolder("1", "src",
			tree.NewFolder("2", "app",
				tree.NewFile("3", "page.tsx", "export default function Page() {}"),
				tree.NewFile("4", "layout.tsx", ""),
			),
			tree.NewFile("5", "utils.ts", "export const x = 1"),
		),
		tree.NewFile("6", "README.md", "# Demo"),
	)
}

type harness struct {
	clock  *clock.Fake
	copied []string
}

func newTestModel(t *testing.T, edit func(*config.Config)) (Model, *harness) {
	t.Helper()
	h := &harness{clock: clock.NewFake(time.Unix(0, 0))}
	cfg := config.DefaultConfig()
	cfg.UI.ShowPreview = false
	cfg.UI.ConfirmDelete = false
	if edit != nil {
		edit(&cfg)
	}
	m := NewModel(explorer.New(sampleTree()),
		WithConfig(cfg),
		WithClock(h.clock),
		WithPreviewStyle("notty"),
		WithSystemClipboard(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
	)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, h
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "shift+up":
		return tea.KeyMsg{Type: tea.KeyShiftUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func primary(m Model) string {
	id, _ := m.State().Selection().Primary()
	return id
}

func notice(m Model) string {
	n, _ := m.State().Notification()
	return n.Message
}

func children(t *testing.T, m Model, id string) []string {
	t.Helper()
	n, ok := m.State().Node(id)
	if !ok {
		t.Fatalf("node %s missing", id)
	}
	f, ok := n.(tree.Folder)
	if !ok {
		t.Fatalf("node %s is not a folder", id)
	}
	var names []string
	for _, c := range f.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestNewModelSelectsFirstRow(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if got := primary(m); got != "1" {
		t.Fatalf("primary = %q, want 1", got)
	}
	if m.tree.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.tree.Cursor())
	}
}

func TestNavigationKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)

	steps := []struct {
		key  string
		want string
	}{
		{"j", "6"},
		{"k", "1"},
		{"l", "1"}, // expands src
		{"j", "2"},
		{"h", "1"}, // app is collapsed: jump to parent
		{"G", "6"},
		{"g", "1"},
		{"down", "2"},
		{"up", "1"},
	}
	for i, s := range steps {
		m = press(t, m, s.key)
		if got := primary(m); got != s.want {
			t.Fatalf("step %d (%s): primary = %q, want %q", i, s.key, got, s.want)
		}
	}

	if !m.State().Expanded().Has("1") {
		t.Fatal("src should be expanded")
	}
	m = press(t, m, "h")
	if m.State().Expanded().Has("1") {
		t.Error("h on an open folder should collapse it")
	}
}

func TestEnterTogglesFolderAndOpensFile(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "enter")
	if !m.State().Expanded().Has("1") {
		t.Fatal("enter on a folder should expand it")
	}
	m = press(t, m, "G", "enter")
	if got := notice(m); got != "Opened README.md" {
		t.Errorf("notice = %q", got)
	}
}

func TestShiftExtendsSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "shift+down")
	if got := m.State().Selection().IDs(); !equalIDs(got, []string{"1", "2"}) {
		t.Fatalf("selection = %v", got)
	}
	if m.tree.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", m.tree.Cursor())
	}
	m = press(t, m, "shift+down")
	if got := m.State().Selection().IDs(); !equalIDs(got, []string{"1", "2", "5"}) {
		t.Fatalf("selection = %v", got)
	}
	m = press(t, m, "esc")
	if !m.State().Selection().Empty() {
		t.Error("esc should clear the selection")
	}
}

func equalIDs(a, b []string) bool {
	return strings.Join(a, ",") == strings.Join(b, ",")
}

func TestSearchIsDebounced(t *testing.T) {
	m, h := newTestModel(t, nil)
	m = press(t, m, "/")
	m = typeText(t, m, "page")
	if m.State().Searching() {
		t.Fatal("query committed before the debounce delay")
	}

	h.clock.Advance(299 * time.Millisecond)
	select {
	case q := <-m.queries:
		t.Fatalf("early commit %q", q)
	default:
	}

	h.clock.Advance(time.Millisecond)
	select {
	case q := <-m.queries:
		m = update(t, m, SearchCommitMsg{Query: q})
	case <-time.After(time.Second):
		t.Fatal("no query committed")
	}

	if m.State().Query() != "page" {
		t.Fatalf("query = %q", m.State().Query())
	}
	if m.State().MatchCount() != 1 {
		t.Errorf("matches = %d, want 1", m.State().MatchCount())
	}
	if !strings.Contains(m.View(), "[1 matches]") {
		t.Error("search bar should show the match count")
	}

	m = press(t, m, "esc")
	if m.State().Searching() || m.mode != modeNormal {
		t.Error("esc should clear the search and leave search mode")
	}
	if m.State().Expanded().Len() != 0 {
		t.Error("clearing the search should collapse everything")
	}
}

func TestSearchEnterCommitsImmediately(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "/")
	m = typeText(t, m, "UTILS")
	m = press(t, m, "enter")
	if m.State().Query() != "UTILS" || m.State().MatchCount() != 1 {
		t.Fatalf("query %q, matches %d", m.State().Query(), m.State().MatchCount())
	}
	if m.mode != modeNormal {
		t.Error("enter should leave search mode")
	}
}

func TestSearchWithoutMatches(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "enter")
	if len(m.State().Visible()) != 0 {
		t.Fatal("nothing should be visible")
	}
	if !strings.Contains(m.View(), `No matches for "zzz"`) {
		t.Error("empty state should name the query")
	}
}

func TestRename(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "r")
	if m.mode != modeRename || m.renameInput.Value() != "src" {
		t.Fatalf("mode %v, value %q", m.mode, m.renameInput.Value())
	}
	m = press(t, m, "backspace", "backspace", "backspace")
	m = typeText(t, m, "lib")
	m = press(t, m, "enter")

	n, _ := m.State().Node("1")
	if n.Name() != "lib" || n.Renaming() {
		t.Fatalf("name %q, renaming %v", n.Name(), n.Renaming())
	}
	if got := notice(m); got != "Renamed to lib" {
		t.Errorf("notice = %q", got)
	}
}

func TestRenameEscapeKeepsName(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "r")
	m = typeText(t, m, "xyz")
	m = press(t, m, "esc")
	n, _ := m.State().Node("1")
	if n.Name() != "src" || n.Renaming() {
		t.Fatalf("name %q, renaming %v", n.Name(), n.Renaming())
	}
	if m.mode != modeNormal {
		t.Error("esc should leave rename mode")
	}
}

func TestNewFileStartsRename(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "a")
	if m.mode != modeRename {
		t.Fatal("a new file should open for renaming")
	}
	id := primary(m)
	if p, ok := tree.FindParent(m.State().Tree(), id); !ok || p.ID() != "1" {
		t.Fatalf("new file %s should live in src", id)
	}
	if !m.State().Expanded().Has("1") {
		t.Error("parent should be expanded")
	}
	m = typeText(t, m, "x")
	m = press(t, m, "enter")
	n, _ := m.State().Node(id)
	if n.Renaming() || m.mode != modeNormal {
		t.Error("enter should end the rename")
	}
}

func TestNewFolderNextToFile(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "j", "j") // utils.ts
	m = press(t, m, "A")
	id := primary(m)
	n, _ := m.State().Node(id)
	if !tree.IsFolder(n) {
		t.Fatal("A should create a folder")
	}
	if p, _ := tree.FindParent(m.State().Tree(), id); p.ID() != "1" {
		t.Errorf("folder should be created in the file's parent, got %s", p.ID())
	}
}

func TestNewFileAtRootFileFails(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "G", "a")
	if m.mode != modeNormal {
		t.Fatal("no rename should start")
	}
	if tree.Size(m.State().Tree()) != 6 {
		t.Error("tree should be unchanged")
	}
	if got := notice(m); got != "Cannot create a file here" {
		t.Errorf("notice = %q", got)
	}
}

func TestCopyPaste(t *testing.T) {
	m, h := newTestModel(t, nil)
	m = press(t, m, "l", "j", "j") // utils.ts
	m = press(t, m, "c")
	if len(h.copied) != 1 || h.copied[0] != "src/utils.ts" {
		t.Fatalf("system clipboard got %v", h.copied)
	}
	if c := m.State().Clipboard(); !c.Present || c.Op != explorer.OpCopy {
		t.Fatalf("clipboard = %+v", c)
	}

	m = press(t, m, "k", "p") // into app
	if got := children(t, m, "2"); !equalIDs(got, []string{"page.tsx", "layout.tsx", "utils.ts"}) {
		t.Fatalf("app = %v", got)
	}
	if !m.State().Clipboard().Present {
		t.Error("a copy stays on the clipboard")
	}
	if got := notice(m); got != "utils.ts pasted to app" {
		t.Errorf("notice = %q", got)
	}
}

func TestCutPaste(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "j", "j", "x")
	if !strings.Contains(m.View(), "CUT") {
		t.Error("status bar should show the cut badge")
	}
	m = press(t, m, "k", "p")
	if got := children(t, m, "1"); !equalIDs(got, []string{"app"}) {
		t.Fatalf("src = %v", got)
	}
	if got := children(t, m, "2"); len(got) != 3 {
		t.Fatalf("app = %v", got)
	}
	if m.State().Clipboard().Present {
		t.Error("a cut is consumed by pasting")
	}
}

func TestPasteWithEmptyClipboard(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "p")
	if got := notice(m); got != "Clipboard is empty" {
		t.Errorf("notice = %q", got)
	}
}

func TestPasteIntoOwnSubtree(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "x", "l", "j", "p") // cut src, paste into app
	if got := notice(m); got != "Cannot paste here" {
		t.Errorf("notice = %q", got)
	}
	if tree.Size(m.State().Tree()) != 6 {
		t.Error("tree should be unchanged")
	}
}

func TestDeleteConfirm(t *testing.T) {
	m, _ := newTestModel(t, func(c *config.Config) { c.UI.ConfirmDelete = true })
	m = press(t, m, "G", "d")
	if m.mode != modeConfirmDelete {
		t.Fatal("d should ask for confirmation")
	}
	if !strings.Contains(m.View(), "Delete README.md?") {
		t.Error("prompt should name the node")
	}
	m = press(t, m, "n")
	if _, ok := m.State().Node("6"); !ok {
		t.Fatal("n should keep the node")
	}

	m = press(t, m, "d", "y")
	if _, ok := m.State().Node("6"); ok {
		t.Fatal("y should delete the node")
	}
	if got := notice(m); got != "README.md deleted" {
		t.Errorf("notice = %q", got)
	}
}

func TestDeleteSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "j", "shift+down", "d") // app and utils.ts
	if got := children(t, m, "1"); len(got) != 0 {
		t.Fatalf("src = %v", got)
	}
	if !m.State().Selection().Empty() {
		t.Error("deleted ids should leave the selection")
	}
}

func TestKeyboardMove(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "j", "j", "m") // pick up utils.ts
	if !m.State().Drag().Dragging() {
		t.Fatal("m should start a drag")
	}
	m = press(t, m, "k")
	if m.State().Drag().Over != "2" {
		t.Fatalf("over = %q, want 2", m.State().Drag().Over)
	}
	if !strings.Contains(m.View(), "drop into app") {
		t.Error("status bar should name the drop target")
	}
	m = press(t, m, "enter")
	if m.State().Drag().Dragging() {
		t.Fatal("enter should end the drag")
	}
	if p, _ := tree.FindParent(m.State().Tree(), "5"); p.ID() != "2" {
		t.Errorf("utils.ts parent = %s, want 2", p.ID())
	}
}

func TestKeyboardMoveIntoOwnSubtreeIsRejected(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l", "m", "j")
	if m.State().Drag().Over != "" {
		t.Fatal("a folder cannot be dropped into its own child")
	}
	m = press(t, m, "enter")
	if got := notice(m); got != "Cannot move there" {
		t.Errorf("notice = %q", got)
	}
	if tree.IsDescendant(m.State().Tree(), "2", "1") {
		t.Error("tree should be unchanged")
	}

	m = press(t, m, "m", "esc")
	if m.State().Drag().Dragging() {
		t.Error("esc should cancel the drag")
	}
}

func TestMouseDragAndDrop(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l") // rows: src, app, utils.ts, README.md

	m = update(t, m, tea.MouseMsg{X: 4, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := primary(m); got != "5" {
		t.Fatalf("click should select utils.ts, got %q", got)
	}
	m = update(t, m, tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if d := m.State().Drag(); !d.Dragging() || d.Over != "2" {
		t.Fatalf("drag = %+v", d)
	}
	m = update(t, m, tea.MouseMsg{X: 4, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if p, _ := tree.FindParent(m.State().Tree(), "5"); p.ID() != "2" {
		t.Errorf("utils.ts parent = %s, want 2", p.ID())
	}
}

func TestMouseCtrlClickToggles(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Ctrl: true})
	m = update(t, m, tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := m.State().Selection().IDs(); !equalIDs(got, []string{"1", "6"}) {
		t.Fatalf("selection = %v", got)
	}
}

func TestNotificationIsDismissed(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, cmd := m.Update(keyMsg("o"))
	m = next.(Model)
	n, ok := m.State().Notification()
	if !ok {
		t.Fatal("open should post a notice")
	}
	if cmd == nil {
		t.Fatal("a dismissal should be scheduled")
	}
	m = update(t, m, DismissMsg{Seq: n.Seq - 1})
	if _, ok := m.State().Notification(); !ok {
		t.Fatal("a stale dismissal must not clear a newer notice")
	}
	m = update(t, m, DismissMsg{Seq: n.Seq})
	if _, ok := m.State().Notification(); ok {
		t.Error("notice should be dismissed")
	}
}

func TestSnapshotReload(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "G") // README.md
	smaller := tree.New(tree.NewFolder("1", "src"))
	m = update(t, m, SnapshotLoadedMsg{Tree: smaller})
	if tree.Size(m.State().Tree()) != 1 {
		t.Fatal("tree should be replaced")
	}
	if !m.State().Selection().Empty() {
		t.Error("selection of a vanished node should be pruned")
	}
	if got := notice(m); got != "Tree reloaded" {
		t.Errorf("notice = %q", got)
	}

	m = update(t, m, SnapshotLoadedMsg{Err: errors.New("boom")})
	if got := notice(m); got != "Reload failed: boom" {
		t.Errorf("notice = %q", got)
	}
}

func TestViewShowsRowsAndHeader(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "l")
	out := m.View()
	for _, want := range []string{"ft", "6 items", "src", "app", "utils.ts", "README.md", "├── ", "└── "} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "page.tsx") {
		t.Error("collapsed children should be hidden")
	}
}

func TestViewWithPreview(t *testing.T) {
	m, _ := newTestModel(t, func(c *config.Config) { c.UI.ShowPreview = true })
	m = press(t, m, "l", "j", "j")
	out := m.View()
	if !strings.Contains(out, "utils.ts") {
		t.Error("view should show the tree")
	}
	if m.preview.key == "" {
		t.Error("preview should render the selected node")
	}

	m = press(t, m, "P")
	if _, w := m.paneWidths(); w != 0 {
		t.Error("P should hide the preview")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, "?")
	if !strings.Contains(m.View(), "Pick up for moving") {
		t.Error("help should list the keys")
	}
	m = press(t, m, "?")
	if m.showHelp {
		t.Error("? should close the help")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCloseDropsPendingSearch(t *testing.T) {
	m, h := newTestModel(t, nil)
	m = press(t, m, "/")
	m = typeText(t, m, "page")

	m.Close()
	h.clock.Advance(time.Second)
	select {
	case q := <-m.queries:
		t.Fatalf("query %q committed after Close", q)
	default:
	}
	if h.clock.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", h.clock.Pending())
	}
}
