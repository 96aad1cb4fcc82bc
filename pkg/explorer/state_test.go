package explorer

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// sampleTree is the demo project trimmed to what the tests need:
//
//	app/            (1)
//	  layout.tsx    (2)
//	  page.tsx      (3)
//	  blog/         (4)
//	    page.tsx    (5)
//	    [slug]/     (7)
//	      page.tsx  (8)
//	lib/            (29)
//	  utils.ts      (30)
//	package.json    (37)
func sampleTree() tree.Tree {
	return tree.New(
		tree.NewFolder("1", "app",
			tree.NewFile("2", "layout.tsx", ""),
			tree.NewFile("3", "page.tsx", "export default function Home() {}"),
			tree.NewFolder("4", "blog",
				tree.NewFile("5", "page.tsx", ""),
				tree.NewFolder("7", "[slug]",
					tree.NewFile("8", "page.tsx", ""),
				),
			),
		),
		tree.NewFolder("29", "lib",
			tree.NewFile("30", "utils.ts", ""),
		),
		tree.NewFile("37", "package.json", "{}"),
	)
}

func nodeIDs(nodes []tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func childIDs(t *testing.T, s State, folderID string) []string {
	t.Helper()
	n, ok := s.Node(folderID)
	if !ok {
		t.Fatalf("folder %s not found", folderID)
	}
	f, ok := n.(tree.Folder)
	if !ok {
		t.Fatalf("%s is not a folder", folderID)
	}
	return nodeIDs(f.Children())
}

func noticeText(s State) string {
	n, _ := s.Notification()
	return n.Message
}

func TestNewPrunesInitialExpansion(t *testing.T) {
	s := New(sampleTree(), WithExpanded("1", "2", "missing"))
	if got := s.Expanded().IDs(); !equalStrings(got, []string{"1"}) {
		t.Errorf("expanded = %v, want [1]", got)
	}
}

func TestSelect(t *testing.T) {
	s := New(sampleTree(), WithExpanded("1", "4"))

	s = s.Select("2", Modifiers{})
	if got := s.Selection().IDs(); !equalStrings(got, []string{"2"}) {
		t.Fatalf("plain select = %v", got)
	}

	s = s.Select("5", Modifiers{Range: true})
	if got := s.Selection().IDs(); !equalStrings(got, []string{"2", "3", "4", "5"}) {
		t.Errorf("range select = %v, want [2 3 4 5]", got)
	}

	s = s.Select("3", Modifiers{})
	s = s.Select("37", Modifiers{Toggle: true})
	if got := s.Selection().IDs(); !equalStrings(got, []string{"3", "37"}) {
		t.Errorf("toggle add = %v", got)
	}
	s = s.Select("3", Modifiers{Toggle: true})
	if got := s.Selection().IDs(); !equalStrings(got, []string{"37"}) {
		t.Errorf("toggle remove = %v", got)
	}

	before := s.Selection().IDs()
	s = s.Select("nope", Modifiers{})
	if got := s.Selection().IDs(); !equalStrings(got, before) {
		t.Errorf("unknown id changed selection to %v", got)
	}
}

func TestRangeSelectWithoutAnchorSelectsTarget(t *testing.T) {
	s := New(sampleTree()).Select("29", Modifiers{Range: true})
	if got := s.Selection().IDs(); !equalStrings(got, []string{"29"}) {
		t.Errorf("selection = %v, want [29]", got)
	}
}

func TestDeletePrunesSelectionAndExpansion(t *testing.T) {
	s := New(sampleTree(), WithExpanded("1", "4", "29"))
	s = s.Select("4", Modifiers{})
	s = s.Select("30", Modifiers{Toggle: true})

	s = s.Delete("1")
	if _, ok := s.Node("5"); ok {
		t.Fatal("descendant 5 survived deleting its ancestor")
	}
	if got := s.Selection().IDs(); !equalStrings(got, []string{"30"}) {
		t.Errorf("selection = %v, want [30]", got)
	}
	if got := s.Expanded().IDs(); !equalStrings(got, []string{"29"}) {
		t.Errorf("expanded = %v, want [29]", got)
	}
	if got := noticeText(s); got != "app deleted" {
		t.Errorf("notice = %q", got)
	}

	again := s.Delete("1")
	if !tree.Equal(again.Tree(), s.Tree()) {
		t.Error("deleting an absent id changed the tree")
	}
}

func TestDeleteLastSelectedLeavesEmptySelection(t *testing.T) {
	s := New(sampleTree()).Select("37", Modifiers{}).Delete("37")
	if !s.Selection().Empty() {
		t.Errorf("selection = %v, want empty", s.Selection().IDs())
	}
}

func TestCutPaste(t *testing.T) {
	s := New(sampleTree())
	s, err := s.Cut("3")
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if st := s.Clipboard(); !st.Present || st.Op != OpCut || st.SourceID != "3" {
		t.Fatalf("clipboard = %+v", st)
	}
	if got := noticeText(s); got != "page.tsx cut to clipboard" {
		t.Errorf("notice = %q", got)
	}

	s, err = s.Paste("29")
	if err != nil {
		t.Fatalf("paste: %v", err)
	}
	if _, ok := s.Node("3"); ok {
		t.Error("cut source still present after paste")
	}
	kids := childIDs(t, s, "29")
	if len(kids) != 2 || kids[0] != "30" {
		t.Fatalf("lib children = %v", kids)
	}
	clone, _ := s.Node(kids[1])
	f, ok := clone.(tree.File)
	if !ok || f.Name() != "page.tsx" || f.Content() != "export default function Home() {}" {
		t.Errorf("pasted node = %#v", clone)
	}
	if s.Clipboard().Present {
		t.Error("clipboard not cleared after pasting a cut")
	}
	if !s.Expanded().Has("29") {
		t.Error("paste target not expanded")
	}
	if got := noticeText(s); got != "page.tsx pasted to lib" {
		t.Errorf("notice = %q", got)
	}
}

func TestCopyPasteTwiceYieldsFreshIDs(t *testing.T) {
	s, err := New(sampleTree()).Copy("4")
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.Paste("29")
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.Paste("29")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Node("4"); !ok {
		t.Error("copy source removed")
	}
	if st := s.Clipboard(); !st.Present || st.Op != OpCopy {
		t.Errorf("clipboard = %+v, want copy entry kept", st)
	}
	kids := childIDs(t, s, "29")
	if len(kids) != 3 || kids[1] == kids[2] || kids[1] == "4" {
		t.Errorf("lib children = %v", kids)
	}
	if err := tree.Validate(s.Tree()); err != nil {
		t.Error(err)
	}
}

func TestPasteRejections(t *testing.T) {
	base := New(sampleTree())
	copied, _ := base.Copy("3")
	cutApp, _ := base.Cut("1")

	tests := []struct {
		name   string
		state  State
		target string
	}{
		{"empty clipboard", base, "29"},
		{"file target", copied, "30"},
		{"cut into own subtree", cutApp, "4"},
		{"cut into itself", cutApp, "1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.state.Paste(tc.target)
			if !errors.Is(err, tree.ErrInvalidTarget) {
				t.Fatalf("err = %v, want ErrInvalidTarget", err)
			}
			if !tree.Equal(out.Tree(), tc.state.Tree()) {
				t.Error("rejected paste changed the tree")
			}
		})
	}
}

func TestPasteIntoVanishedTarget(t *testing.T) {
	s, _ := New(sampleTree()).Copy("3")
	s = s.Delete("29")

	out, err := s.Paste("29")
	if !errors.Is(err, tree.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !tree.Equal(out.Tree(), s.Tree()) {
		t.Error("rejected paste changed the tree")
	}
	if _, err := s.Paste("nope"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("unknown target: %v", err)
	}
}

func TestCopyUnknownID(t *testing.T) {
	_, err := New(sampleTree()).Copy("nope")
	if !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchExpandsAndClearCollapses(t *testing.T) {
	s := New(sampleTree(), WithExpanded("29"))
	s = s.SetSearchQuery("page")

	if !s.Searching() || s.MatchCount() != 3 {
		t.Fatalf("searching=%v matches=%d", s.Searching(), s.MatchCount())
	}
	for _, id := range []string{"1", "4", "7", "29"} {
		if !s.Expanded().Has(id) {
			t.Errorf("%s not expanded during search", id)
		}
	}
	if got := nodeIDs(s.Visible()); !equalStrings(got, []string{"1", "3", "4", "5", "7", "8"}) {
		t.Errorf("visible = %v", got)
	}

	s = s.SetSearchQuery("")
	if s.Expanded().Len() != 0 {
		t.Errorf("expanded after clear = %v", s.Expanded().IDs())
	}
	if s.MatchCount() != 0 || s.Searching() {
		t.Error("search still active after clear")
	}
	if got := nodeIDs(s.Visible()); !equalStrings(got, []string{"1", "29", "37"}) {
		t.Errorf("visible after clear = %v", got)
	}
}

func TestSearchNoMatch(t *testing.T) {
	s := New(sampleTree()).SetSearchQuery("zzz")
	if len(s.Visible()) != 0 || s.MatchCount() != 0 {
		t.Errorf("visible=%d matches=%d", len(s.Visible()), s.MatchCount())
	}
	if tree.Size(s.Tree()) != tree.Size(sampleTree()) {
		t.Error("search mutated the tree")
	}
}

func TestRenameBlankEndsRenameOnly(t *testing.T) {
	s, err := New(sampleTree()).StartRename("3")
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := s.Renaming(); !ok || n.ID() != "3" {
		t.Fatalf("renaming = %v, %v", n, ok)
	}
	s, err = s.Rename("3", "   ")
	if err != nil {
		t.Fatalf("blank rename returned %v", err)
	}
	if !tree.Equal(s.Tree(), sampleTree()) {
		t.Error("blank rename changed the tree")
	}
	if _, ok := s.Renaming(); ok {
		t.Error("renaming flag still set")
	}
}

func TestRename(t *testing.T) {
	s, _ := New(sampleTree()).StartRename("3")
	s, err := s.Rename("3", "home.tsx")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := s.Node("3")
	if n.Name() != "home.tsx" || n.Renaming() {
		t.Errorf("node = %q renaming=%v", n.Name(), n.Renaming())
	}
	if got := noticeText(s); got != "Renamed to home.tsx" {
		t.Errorf("notice = %q", got)
	}
	if _, err := s.Rename("nope", "x"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("rename unknown: %v", err)
	}
}

func TestStartRenameEndsPreviousRename(t *testing.T) {
	s, _ := New(sampleTree()).StartRename("3")
	s, _ = s.StartRename("30")
	n, _ := s.Node("3")
	if n.Renaming() {
		t.Error("previous rename still active")
	}
	if cur, ok := s.Renaming(); !ok || cur.ID() != "30" {
		t.Errorf("renaming = %v", cur)
	}
	s = s.CancelRename("30")
	if _, ok := s.Renaming(); ok {
		t.Error("cancel left rename active")
	}
}

func TestNewFileAndFolder(t *testing.T) {
	s, err := New(sampleTree()).NewFile("29")
	if err != nil {
		t.Fatal(err)
	}
	cur, ok := s.Current()
	if !ok || cur.Name() != tree.DefaultFileName || !cur.Renaming() || cur.Kind() != tree.KindFile {
		t.Fatalf("current = %#v", cur)
	}
	if !s.Expanded().Has("29") {
		t.Error("parent not expanded")
	}

	s, err = s.NewFolder("1")
	if err != nil {
		t.Fatal(err)
	}
	cur, _ = s.Current()
	f, ok := cur.(tree.Folder)
	if !ok || f.Name() != tree.DefaultFolderName || f.Len() != 0 {
		t.Errorf("new folder = %#v", cur)
	}
	if r, _ := s.Renaming(); r.ID() != f.ID() {
		t.Error("only the newest node should be renaming")
	}

	out, err := s.NewFile("30")
	if !errors.Is(err, tree.ErrInvalidTarget) {
		t.Errorf("new file in a file: %v", err)
	}
	if n, _ := out.Notification(); n.Level != LevelError {
		t.Errorf("notice level = %v, want error", n.Level)
	}
}

func TestMove(t *testing.T) {
	s, err := New(sampleTree()).Move("3", "29")
	if err != nil {
		t.Fatal(err)
	}
	if got := childIDs(t, s, "29"); !equalStrings(got, []string{"30", "3"}) {
		t.Errorf("lib children = %v", got)
	}
	if got := noticeText(s); got != "Moved page.tsx to lib" {
		t.Errorf("notice = %q", got)
	}

	out, err := s.Move("1", "7")
	if !errors.Is(err, tree.ErrInvalidTarget) {
		t.Fatalf("move into descendant: %v", err)
	}
	if !tree.Equal(out.Tree(), s.Tree()) {
		t.Error("rejected move changed the tree")
	}
}

func TestDragAndDrop(t *testing.T) {
	s := New(sampleTree())

	s = s.DragStart("3")
	if d := s.Drag(); d.Phase != DragDragging || d.Active != "3" {
		t.Fatalf("drag = %+v", d)
	}
	s = s.DragOver("30")
	if d := s.Drag(); d.Phase != DragHovering || d.Over != "" {
		t.Errorf("over a file: %+v", d)
	}
	s = s.DragOver("29")
	if d := s.Drag(); d.Over != "29" {
		t.Errorf("over a folder: %+v", d)
	}
	s = s.DragEnd()
	if s.Drag().Dragging() {
		t.Error("drag not idle after drop")
	}
	if got := childIDs(t, s, "29"); !equalStrings(got, []string{"30", "3"}) {
		t.Errorf("lib children = %v", got)
	}
	if !s.Expanded().Has("29") {
		t.Error("drop target not expanded")
	}
}

func TestDragRejections(t *testing.T) {
	s := New(sampleTree())

	if s.DragStart("nope").Drag().Dragging() {
		t.Error("unknown id started a drag")
	}

	d := s.DragStart("1").DragOver("7")
	if d.Drag().Over != "" {
		t.Errorf("descendant accepted as target: %+v", d.Drag())
	}
	if out := d.DragEnd(); !tree.Equal(out.Tree(), s.Tree()) || out.Drag().Dragging() {
		t.Error("drop without target should be an idle no-op")
	}

	d = s.DragStart("3").DragOver("29").DragCancel()
	if d.Drag().Dragging() || !tree.Equal(d.Tree(), s.Tree()) {
		t.Error("cancel should return to idle without moving")
	}

	if s.DragOver("29").Drag().Dragging() {
		t.Error("drag over without a start left idle")
	}
}

func TestNavigate(t *testing.T) {
	s := New(sampleTree())
	if got := s.Navigate(Down); !got.Selection().Empty() {
		t.Error("navigating with no selection should do nothing")
	}

	s = s.Select("1", Modifiers{})
	steps := []struct {
		dir  Direction
		want string
	}{
		{Down, "29"},
		{Down, "37"},
		{Down, "37"},
		{Up, "29"},
		{Up, "1"},
		{Up, "1"},
		{Expand, "1"},
		{Down, "2"},
		{Last, "37"},
		{First, "1"},
	}
	for i, st := range steps {
		s = s.Navigate(st.dir)
		if id, _ := s.Selection().Primary(); id != st.want {
			t.Fatalf("step %d: selected %s, want %s", i, id, st.want)
		}
	}
	s = s.Navigate(Collapse)
	if s.Expanded().Has("1") {
		t.Error("collapse left folder expanded")
	}
}

func TestExpandCollapseAll(t *testing.T) {
	s := New(sampleTree()).ExpandAll()
	if got := len(s.Visible()); got != tree.Size(sampleTree()) {
		t.Errorf("visible = %d after expand all", got)
	}
	if s.CollapseAll().Expanded().Len() != 0 {
		t.Error("collapse all left folders expanded")
	}
	if s.ToggleExpand("37").Expanded().Has("37") {
		t.Error("a file became expanded")
	}
}

func TestOpenSelectsOnlyTheOpenedNode(t *testing.T) {
	s := New(sampleTree()).
		Select("2", Modifiers{}).
		Select("30", Modifiers{Toggle: true})
	if got := s.Selection().IDs(); len(got) != 2 {
		t.Fatalf("selection = %v, want two ids", got)
	}

	s = s.Open("3")
	if got := s.Selection().IDs(); !equalStrings(got, []string{"3"}) {
		t.Errorf("selection = %v, want [3]", got)
	}
	s = s.Select("30", Modifiers{Range: true})
	if !s.Selection().Contains("3") || !s.Selection().Contains("30") {
		t.Errorf("range after open should start at 3, got %v", s.Selection().IDs())
	}

	before := s.Selection().IDs()
	if got := s.Open("nope").Selection().IDs(); !equalStrings(got, before) {
		t.Errorf("opening an unknown id changed the selection to %v", got)
	}
}

func TestDismissNotification(t *testing.T) {
	s := New(sampleTree()).Open("3")
	first, _ := s.Notification()
	s = s.Open("37")
	second, _ := s.Notification()

	s = s.DismissNotification(first.Seq)
	if _, ok := s.Notification(); !ok {
		t.Fatal("stale dismissal cleared a newer notice")
	}
	s = s.DismissNotification(second.Seq)
	if _, ok := s.Notification(); ok {
		t.Error("notice not dismissed")
	}
}

func TestReplacePrunes(t *testing.T) {
	s := New(sampleTree(), WithExpanded("1", "29")).Select("30", Modifiers{}).DragStart("30")
	s = s.Replace(tree.New(tree.NewFolder("1", "app")))

	if !s.Selection().Empty() || s.Drag().Dragging() {
		t.Error("selection or drag refer to vanished ids")
	}
	if got := s.Expanded().IDs(); !equalStrings(got, []string{"1"}) {
		t.Errorf("expanded = %v", got)
	}
}

func TestIntentsLeaveReceiverUntouched(t *testing.T) {
	s := New(sampleTree())
	_ = s.Delete("1")
	_, _ = s.Move("3", "29")
	_ = s.SetSearchQuery("page")
	if !tree.Equal(s.Tree(), sampleTree()) || s.Searching() {
		t.Error("intent mutated its receiver")
	}
}
