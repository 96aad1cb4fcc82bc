// Package explorer holds the session state of the file explorer widget and
// the intents that move it forward.
//
// State is a value. Every intent method returns the next State and leaves
// the receiver untouched, so the surrounding event loop (the bubbletea
// Update function in pkg/ui) owns the current value and applies one intent
// at a time. After each tree change the selection and expansion sets are
// pruned of ids that no longer exist, so the three never disagree.
package explorer

import (
	"fmt"

	"github.com/vanderheijden86/filetree/pkg/tree"
)

// Option configures a new State.
type Option func(*State)

// WithIDGenerator sets the generator used for new and pasted nodes.
func WithIDGenerator(gen tree.IDGenerator) Option {
	return func(s *State) {
		s.ids = gen
	}
}

// WithExpanded starts the session with the given folders expanded.
func WithExpanded(ids ...string) Option {
	return func(s *State) {
		s.expanded = s.expanded.Add(ids...)
	}
}

// State is one immutable snapshot of the widget session.
type State struct {
	tree       tree.Tree
	view       tree.Tree // tree filtered by query; equals tree when not searching
	selection  Selection
	anchor     string // last plainly selected id, start of range selection
	expanded   Expansion
	clipboard  *ClipboardEntry
	query      string
	matchCount int
	drag       Drag
	notice     Notification
	noticeSeq  uint64
	ids        tree.IDGenerator
}

// New starts a session over t.
func New(t tree.Tree, opts ...Option) State {
	s := State{
		tree: t,
		view: t,
		ids:  tree.NewSequence("ft"),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s.prune()
}

// Tree returns the full, unfiltered tree.
func (s State) Tree() tree.Tree { return s.tree }

// View returns the tree as displayed: filtered while a query is active.
func (s State) View() tree.Tree { return s.view }

// Selection returns the selected ids.
func (s State) Selection() Selection { return s.selection }

// Expanded returns the expanded folder ids.
func (s State) Expanded() Expansion { return s.expanded }

// Query returns the committed search query.
func (s State) Query() string { return s.query }

// Searching reports whether a non-empty query is active.
func (s State) Searching() bool { return s.query != "" }

// MatchCount returns how many nodes of the full tree match the query.
func (s State) MatchCount() int { return s.matchCount }

// Drag returns the drag-and-drop state.
func (s State) Drag() Drag { return s.drag }

// Notification returns the most recent user-facing notice, if any.
func (s State) Notification() (Notification, bool) {
	return s.notice, s.notice.Message != ""
}

// Visible returns the visible nodes in display order.
func (s State) Visible() []tree.Node {
	return tree.Flatten(s.view, s.expanded.Has, s.Searching())
}

// VisibleRows is Visible with layout data for rendering.
func (s State) VisibleRows() []tree.Row {
	return tree.FlattenRows(s.view, s.expanded.Has, s.Searching())
}

// Current returns the primary selected node.
func (s State) Current() (tree.Node, bool) {
	id, ok := s.selection.Primary()
	if !ok {
		return nil, false
	}
	return tree.FindByID(s.tree, id)
}

// Node looks up id in the full tree.
func (s State) Node(id string) (tree.Node, bool) {
	return tree.FindByID(s.tree, id)
}

// Renaming returns the node currently in inline-rename mode, if any.
func (s State) Renaming() (tree.Node, bool) {
	var found tree.Node
	tree.Walk(s.tree, func(n tree.Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Renaming() {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Replace swaps in a new tree, for example after the snapshot file was
// reloaded. Selection, expansion and drag state are pruned against it.
func (s State) Replace(t tree.Tree) State {
	s = s.withTree(t)
	return s.notify(LevelInfo, "Tree reloaded")
}

// withTree installs t, recomputes the search view and prunes every id set.
func (s State) withTree(t tree.Tree) State {
	s.tree = t
	return s.prune()
}

func (s State) prune() State {
	s.view = tree.FilterTree(s.tree, s.query)
	s.matchCount = tree.CountMatches(s.tree, s.query)

	present := tree.IDs(s.tree)
	exists := func(id string) bool {
		_, ok := present[id]
		return ok
	}
	s.selection = s.selection.Prune(exists)
	folders := make(map[string]struct{})
	for _, id := range tree.FolderIDs(s.tree) {
		folders[id] = struct{}{}
	}
	s.expanded = s.expanded.Prune(func(id string) bool {
		_, ok := folders[id]
		return ok
	})
	if s.anchor != "" && !exists(s.anchor) {
		s.anchor = ""
	}
	if s.drag.Phase != DragIdle && !exists(s.drag.Active) {
		s.drag = Drag{}
	} else if s.drag.Over != "" && !exists(s.drag.Over) {
		s.drag.Over = ""
		s.drag.Phase = DragDragging
	}
	return s
}

func (s State) notify(level Level, format string, args ...any) State {
	s.noticeSeq++
	s.notice = Notification{
		Message: fmt.Sprintf(format, args...),
		Level:   level,
		Seq:     s.noticeSeq,
	}
	return s
}

// Notify posts a notice that did not come from an intent, such as a failed
// reload.
func (s State) Notify(level Level, message string) State {
	return s.notify(level, "%s", message)
}

// DismissNotification clears the notice if it is still the one numbered
// seq. Later notices are left alone.
func (s State) DismissNotification(seq uint64) State {
	if s.notice.Seq == seq {
		s.notice = Notification{}
	}
	return s
}
