package explorer

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// Direction is a keyboard navigation step.
type Direction int

const (
	Up Direction = iota
	Down
	Expand
	Collapse
	First
	Last
)

// fail attaches an error notice to the unchanged state and passes err on.
func (s State) fail(err error, format string, args ...any) (State, error) {
	debug.Log("explorer: %v", err)
	return s.notify(LevelError, format, args...), err
}

// Select applies a click on id. Unknown ids are ignored.
func (s State) Select(id string, mods Modifiers) State {
	if _, ok := tree.FindByID(s.tree, id); !ok {
		return s
	}
	switch {
	case mods.Range && s.anchor != "":
		s.selection = NewSelection(s.span(s.anchor, id)...)
	case mods.Toggle:
		s.selection = s.selection.Toggle(id)
		s.anchor = id
	default:
		s.selection = s.selection.Only(id)
		s.anchor = id
	}
	return s
}

// span lists ids from a to b in display order, falling back to the full
// tree when one end is hidden. The result always contains b.
func (s State) span(a, b string) []string {
	visible := s.Visible()
	ai, bi := -1, -1
	for i, n := range visible {
		switch n.ID() {
		case a:
			ai = i
		case b:
			bi = i
		}
	}
	var nodes []tree.Node
	if ai >= 0 && bi >= 0 {
		if ai > bi {
			ai, bi = bi, ai
		}
		nodes = visible[ai : bi+1]
	} else {
		nodes = tree.Between(s.tree, a, b)
	}
	if len(nodes) == 0 {
		return []string{b}
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

// ClearSelection deselects everything.
func (s State) ClearSelection() State {
	s.selection = Selection{}
	s.anchor = ""
	return s
}

// ToggleExpand flips the expansion of a folder.
func (s State) ToggleExpand(id string) State {
	n, ok := tree.FindByID(s.tree, id)
	if !ok || !tree.IsFolder(n) {
		return s
	}
	s.expanded = s.expanded.Toggle(id)
	return s
}

// ExpandAll expands every folder of the tree.
func (s State) ExpandAll() State {
	s.expanded = s.expanded.Add(tree.FolderIDs(s.tree)...)
	return s
}

// CollapseAll collapses every folder.
func (s State) CollapseAll() State {
	s.expanded = Expansion{}
	return s
}

// StartRename puts id into inline-rename mode, ending any other rename.
func (s State) StartRename(id string) (State, error) {
	if _, ok := tree.FindByID(s.tree, id); !ok {
		return s, fmt.Errorf("start rename %q: %w", id, tree.ErrNotFound)
	}
	t := s.tree
	if cur, ok := s.Renaming(); ok && cur.ID() != id {
		t, _ = tree.SetRenaming(t, cur.ID(), false)
	}
	t, err := tree.SetRenaming(t, id, true)
	if err != nil {
		return s, err
	}
	return s.withTree(t), nil
}

// CancelRename leaves inline-rename mode without renaming.
func (s State) CancelRename(id string) State {
	t, err := tree.SetRenaming(s.tree, id, false)
	if err != nil {
		return s
	}
	return s.withTree(t)
}

// Rename commits a new name. A blank or unchanged name only ends the
// rename, silently.
func (s State) Rename(id, name string) (State, error) {
	t, err := tree.RenameNode(s.tree, id, name)
	switch {
	case errors.Is(err, tree.ErrEmptyInput):
		return s.withTree(t), nil
	case err != nil:
		return s, err
	}
	debug.Log("explorer: renamed %s to %q", id, name)
	return s.withTree(t).notify(LevelSuccess, "Renamed to %s", name), nil
}

// Delete removes id and its subtree. Deleting an absent id changes nothing.
func (s State) Delete(id string) State {
	n, ok := tree.FindByID(s.tree, id)
	if !ok {
		return s
	}
	t, removed := tree.DeleteNodeIDs(s.tree, id)
	debug.Log("explorer: deleted %s (%d nodes)", id, len(removed))
	return s.withTree(t).notify(LevelSuccess, "%s deleted", n.Name())
}

// NewFile adds an empty file under parentID, selects it and opens it for
// renaming.
func (s State) NewFile(parentID string) (State, error) {
	return s.create(parentID, tree.KindFile)
}

// NewFolder adds an empty folder under parentID, selects it and opens it
// for renaming.
func (s State) NewFolder(parentID string) (State, error) {
	return s.create(parentID, tree.KindFolder)
}

func (s State) create(parentID string, kind tree.Kind) (State, error) {
	parent, ok := tree.FindByID(s.tree, parentID)
	if !ok || !tree.IsFolder(parent) {
		return s.fail(fmt.Errorf("new %s in %q: %w", kind, parentID, tree.ErrInvalidTarget),
			"Cannot create a %s here", kind)
	}
	n := tree.NewNode(kind, tree.Avoiding(s.ids, s.tree))
	t := s.tree
	if cur, ok := s.Renaming(); ok {
		t, _ = tree.SetRenaming(t, cur.ID(), false)
	}
	t, err := tree.InsertChild(t, parentID, n)
	if err != nil {
		return s, err
	}
	s = s.withTree(t)
	s.expanded = s.expanded.Add(parentID)
	s.selection = s.selection.Only(n.ID())
	s.anchor = n.ID()
	return s, nil
}

// Move makes id the last child of targetID and expands the target.
func (s State) Move(id, targetID string) (State, error) {
	t, err := tree.MoveNode(s.tree, id, targetID)
	if err != nil {
		return s.fail(err, "Cannot move there")
	}
	n, _ := tree.FindByID(t, id)
	target, _ := tree.FindByID(t, targetID)
	s = s.withTree(t)
	s.expanded = s.expanded.Add(targetID)
	return s.notify(LevelSuccess, "Moved %s to %s", n.Name(), target.Name()), nil
}

// Open selects exactly id and reports that the user opened it.
func (s State) Open(id string) State {
	n, ok := tree.FindByID(s.tree, id)
	if !ok {
		return s
	}
	s.selection = s.selection.Only(id)
	s.anchor = id
	return s.notify(LevelInfo, "Opened %s", n.Name())
}

// SetSearchQuery commits a search query. Starting or changing a search
// expands every folder left in the filtered tree. Clearing it collapses
// everything.
func (s State) SetSearchQuery(q string) State {
	if q == s.query {
		return s
	}
	prev := s.query
	s.query = q
	s = s.prune()
	switch {
	case q != "":
		s.expanded = s.expanded.Add(tree.FolderIDs(s.view)...)
	case prev != "":
		s.expanded = Expansion{}
	}
	debug.Log("explorer: query %q, %d matches", q, s.matchCount)
	return s
}

// Navigate moves or unfolds the primary selection.
func (s State) Navigate(dir Direction) State {
	visible := s.Visible()
	if len(visible) == 0 {
		return s
	}
	switch dir {
	case First:
		return s.Select(visible[0].ID(), Modifiers{})
	case Last:
		return s.Select(visible[len(visible)-1].ID(), Modifiers{})
	}

	id, ok := s.selection.Primary()
	if !ok {
		return s
	}
	switch dir {
	case Expand:
		if n, ok := tree.FindByID(s.tree, id); ok && tree.IsFolder(n) {
			s.expanded = s.expanded.Add(id)
		}
		return s
	case Collapse:
		s.expanded = s.expanded.Remove(id)
		return s
	}

	idx := -1
	for i, n := range visible {
		if n.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	switch dir {
	case Up:
		idx--
	case Down:
		idx++
	}
	if idx < 0 || idx >= len(visible) {
		return s
	}
	return s.Select(visible[idx].ID(), Modifiers{})
}
