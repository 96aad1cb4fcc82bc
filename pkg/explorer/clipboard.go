package explorer

import (
	"fmt"

	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// Op is the pending clipboard operation.
type Op int

const (
	OpCopy Op = iota
	OpCut
)

func (o Op) String() string {
	if o == OpCut {
		return "cut"
	}
	return "copy"
}

// ClipboardEntry is the single clipboard slot: a snapshot of the staged
// subtree taken when it was copied or cut.
type ClipboardEntry struct {
	Op   Op
	Node tree.Node
}

// ClipboardStatus is what the outside sees of the clipboard. The staged
// content itself stays private.
type ClipboardStatus struct {
	Present bool
	Op      Op
	// SourceID is the id the entry was taken from, so a renderer can dim
	// a node waiting to be cut.
	SourceID string
}

// Clipboard reports the clipboard state.
func (s State) Clipboard() ClipboardStatus {
	if s.clipboard == nil {
		return ClipboardStatus{}
	}
	return ClipboardStatus{Present: true, Op: s.clipboard.Op, SourceID: s.clipboard.Node.ID()}
}

// Copy stages id for pasting. The entry stays until replaced.
func (s State) Copy(id string) (State, error) {
	return s.stage(id, OpCopy)
}

// Cut stages id for a move-by-paste. The original is removed on paste.
func (s State) Cut(id string) (State, error) {
	return s.stage(id, OpCut)
}

func (s State) stage(id string, op Op) (State, error) {
	n, ok := tree.FindByID(s.tree, id)
	if !ok {
		return s, fmt.Errorf("%s %q: %w", op, id, tree.ErrNotFound)
	}
	s.clipboard = &ClipboardEntry{Op: op, Node: n}
	debug.Log("clipboard: %s %s (%s)", op, n.Name(), id)
	return s.notify(LevelSuccess, "%s %s to clipboard", n.Name(), pastTense(op)), nil
}

func pastTense(op Op) string {
	if op == OpCut {
		return "cut"
	}
	return "copied"
}

// Paste inserts a fresh-id clone of the clipboard entry into targetID and
// expands the target. A cut entry also deletes its source and empties the
// clipboard; a copied entry can be pasted again.
func (s State) Paste(targetID string) (State, error) {
	if s.clipboard == nil {
		return s, fmt.Errorf("paste: empty clipboard: %w", tree.ErrInvalidTarget)
	}
	target, ok := tree.FindByID(s.tree, targetID)
	if !ok {
		return s, fmt.Errorf("paste into %q: %w", targetID, tree.ErrNotFound)
	}
	if !tree.IsFolder(target) {
		return s, fmt.Errorf("paste into %q: %w", targetID, tree.ErrInvalidTarget)
	}
	entry := *s.clipboard
	sourceID := entry.Node.ID()
	if entry.Op == OpCut && (sourceID == targetID || tree.IsDescendant(s.tree, sourceID, targetID)) {
		return s, fmt.Errorf("paste %q into its own subtree: %w", sourceID, tree.ErrInvalidTarget)
	}

	clone := tree.CloneForPaste(entry.Node, tree.Avoiding(s.ids, s.tree))
	t, err := tree.InsertChild(s.tree, targetID, clone)
	if err != nil {
		return s, err
	}
	if entry.Op == OpCut {
		t = tree.DeleteNode(t, sourceID)
		s.clipboard = nil
	}
	s = s.withTree(t)
	s.expanded = s.expanded.Add(targetID)
	debug.Log("clipboard: pasted %s as %s into %s", sourceID, clone.ID(), targetID)
	return s.notify(LevelSuccess, "%s pasted to %s", entry.Node.Name(), target.Name()), nil
}

// ClearClipboard empties the clipboard slot.
func (s State) ClearClipboard() State {
	s.clipboard = nil
	return s
}
