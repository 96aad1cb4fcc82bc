package tree

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/filetree/pkg/metrics"
)

// Default names given to freshly created nodes.
const (
	DefaultFileName   = "new-file.tsx"
	DefaultFolderName = "new-folder"
)

// replace rebuilds nodes with fn applied to the node whose id matches.
// Only the path from the root to the match is copied; everything else is
// shared. The bool result reports whether id was found.
func replace(nodes []Node, id string, fn func(Node) Node) ([]Node, bool) {
	for i, n := range nodes {
		if n.ID() == id {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i] = fn(n)
			return out, true
		}
		f, ok := n.(Folder)
		if !ok {
			continue
		}
		if children, ok := replace(f.children, id, fn); ok {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i] = f.withChildren(children)
			return out, true
		}
	}
	return nodes, false
}

// detach removes the node with the given id from wherever it lives and
// returns the new list together with the removed subtree.
func detach(nodes []Node, id string) ([]Node, Node, bool) {
	for i, n := range nodes {
		if n.ID() == id {
			out := make([]Node, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out, n, true
		}
		f, ok := n.(Folder)
		if !ok {
			continue
		}
		if children, removed, ok := detach(f.children, id); ok {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i] = f.withChildren(children)
			return out, removed, true
		}
	}
	return nodes, nil, false
}

func appendChild(f Folder, n Node) Folder {
	children := make([]Node, len(f.children), len(f.children)+1)
	copy(children, f.children)
	return f.withChildren(append(children, n))
}

// InsertChild appends n to the children of parentID. It fails with
// ErrNotFound when parentID does not resolve to a folder. Inserting a
// subtree whose ids collide with existing ones is a programming error and
// panics.
func InsertChild(t Tree, parentID string, n Node) (Tree, error) {
	parent, ok := FindByID(t, parentID)
	if !ok || !IsFolder(parent) {
		return t, fmt.Errorf("insert into %q: %w", parentID, ErrNotFound)
	}
	existing := IDs(t)
	for _, id := range SubtreeIDs(n) {
		if _, dup := existing[id]; dup {
			panic(fmt.Sprintf("tree: insert would duplicate id %q", id))
		}
	}
	roots, _ := replace(t.roots, parentID, func(p Node) Node {
		return appendChild(p.(Folder), n)
	})
	return Tree{roots: roots}, nil
}

// DeleteNode removes id and its subtree. Deleting an absent id returns t
// unchanged.
func DeleteNode(t Tree, id string) Tree {
	out, _ := DeleteNodeIDs(t, id)
	return out
}

// DeleteNodeIDs is DeleteNode that also reports every removed id, so the
// caller can prune selection and expansion.
func DeleteNodeIDs(t Tree, id string) (Tree, []string) {
	roots, removed, ok := detach(t.roots, id)
	if !ok {
		return t, nil
	}
	return Tree{roots: roots}, SubtreeIDs(removed)
}

// RenameNode gives id a new name and ends inline renaming. A blank name or
// the current name yields ErrEmptyInput; the name is kept and only the
// renaming flag is cleared in that case.
func RenameNode(t Tree, id, newName string) (Tree, error) {
	n, ok := FindByID(t, id)
	if !ok {
		return t, fmt.Errorf("rename %q: %w", id, ErrNotFound)
	}
	if strings.TrimSpace(newName) == "" || newName == n.Name() {
		if n.Renaming() {
			t, _ = SetRenaming(t, id, false)
		}
		return t, ErrEmptyInput
	}
	roots, _ := replace(t.roots, id, func(n Node) Node {
		return n.withName(newName).withRenaming(false)
	})
	return Tree{roots: roots}, nil
}

// SetRenaming toggles the transient inline-rename flag.
func SetRenaming(t Tree, id string, on bool) (Tree, error) {
	n, ok := FindByID(t, id)
	if !ok {
		return t, fmt.Errorf("set renaming %q: %w", id, ErrNotFound)
	}
	if n.Renaming() == on {
		return t, nil
	}
	roots, _ := replace(t.roots, id, func(n Node) Node {
		return n.withRenaming(on)
	})
	return Tree{roots: roots}, nil
}

// CanMove reports whether nodeID may be moved into newParentID.
func CanMove(t Tree, nodeID, newParentID string) error {
	if _, ok := FindByID(t, nodeID); !ok {
		return fmt.Errorf("move %q: %w", nodeID, ErrNotFound)
	}
	target, ok := FindByID(t, newParentID)
	if !ok {
		return fmt.Errorf("move into %q: %w", newParentID, ErrNotFound)
	}
	switch {
	case !IsFolder(target):
		return fmt.Errorf("move into file %q: %w", newParentID, ErrInvalidTarget)
	case nodeID == newParentID:
		return fmt.Errorf("move %q into itself: %w", nodeID, ErrInvalidTarget)
	case IsDescendant(t, nodeID, newParentID):
		return fmt.Errorf("move %q into its descendant %q: %w", nodeID, newParentID, ErrInvalidTarget)
	}
	return nil
}

// MoveNode detaches the subtree rooted at nodeID and appends it as the last
// child of newParentID. Moving a node into its current parent moves it to
// the end of that parent's children.
func MoveNode(t Tree, nodeID, newParentID string) (Tree, error) {
	defer metrics.Timer(metrics.Move)()

	if err := CanMove(t, nodeID, newParentID); err != nil {
		return t, err
	}
	roots, moved, _ := detach(t.roots, nodeID)
	roots, _ = replace(roots, newParentID, func(p Node) Node {
		return appendChild(p.(Folder), moved)
	})
	return Tree{roots: roots}, nil
}

// CloneForPaste deep-copies n, giving it and every descendant a fresh id
// from gen. Names, kinds and contents are kept; renaming flags are cleared.
func CloneForPaste(n Node, gen IDGenerator) Node {
	defer metrics.Timer(metrics.Clone)()
	return cloneNode(n, gen)
}

func cloneNode(n Node, gen IDGenerator) Node {
	switch x := n.(type) {
	case File:
		return File{id: gen.NewID("file"), name: x.name, content: x.content}
	case Folder:
		children := make([]Node, len(x.children))
		for i, c := range x.children {
			children[i] = cloneNode(c, gen)
		}
		return Folder{id: gen.NewID("folder"), name: x.name, children: children}
	default:
		panic(fmt.Sprintf("tree: unknown node type %T", n))
	}
}

// NewNode creates an empty node of the given kind with a default name and
// the renaming flag set, ready for inline rename.
func NewNode(kind Kind, gen IDGenerator) Node {
	if kind == KindFolder {
		return Folder{id: gen.NewID("folder"), name: DefaultFolderName, children: []Node{}, renaming: true}
	}
	return File{id: gen.NewID("file"), name: DefaultFileName, renaming: true}
}
