package tree

import (
	"fmt"

	"github.com/vanderheijden86/filetree/pkg/metrics"
)

// Walk visits every node in pre-order (parent before children, children in
// order). Returning false from fn skips the node's children.
func Walk(t Tree, fn func(n Node, depth int) bool) {
	walkNodes(t.roots, 0, fn)
}

func walkNodes(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if !fn(n, depth) {
			continue
		}
		if f, ok := n.(Folder); ok {
			walkNodes(f.children, depth+1, fn)
		}
	}
}

// WalkNode visits n and its descendants in pre-order.
func WalkNode(n Node, fn func(n Node, depth int) bool) {
	walkNodes([]Node{n}, 0, fn)
}

// FindByID returns the node with the given id.
func FindByID(t Tree, id string) (Node, bool) {
	return findIn(t.roots, id)
}

func findIn(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID() == id {
			return n, true
		}
		if f, ok := n.(Folder); ok {
			if found, ok := findIn(f.children, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// FindParent returns the folder whose direct children contain id. The
// second result is false when id is a root or is not in the tree.
func FindParent(t Tree, id string) (Folder, bool) {
	return parentIn(t.roots, id)
}

func parentIn(nodes []Node, id string) (Folder, bool) {
	for _, n := range nodes {
		f, ok := n.(Folder)
		if !ok {
			continue
		}
		for _, c := range f.children {
			if c.ID() == id {
				return f, true
			}
		}
		if p, ok := parentIn(f.children, id); ok {
			return p, true
		}
	}
	return Folder{}, false
}

// Path returns the chain of nodes from a root down to id, inclusive.
func Path(t Tree, id string) ([]Node, bool) {
	var path []Node
	var search func(nodes []Node) bool
	search = func(nodes []Node) bool {
		for _, n := range nodes {
			path = append(path, n)
			if n.ID() == id {
				return true
			}
			if f, ok := n.(Folder); ok && search(f.children) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if !search(t.roots) {
		return nil, false
	}
	return path, true
}

// IsDescendant reports whether id lies strictly below ancestorID.
func IsDescendant(t Tree, ancestorID, id string) bool {
	anc, ok := FindByID(t, ancestorID)
	if !ok {
		return false
	}
	f, ok := anc.(Folder)
	if !ok {
		return false
	}
	_, found := findIn(f.children, id)
	return found
}

// IDs returns the set of every id in the tree.
func IDs(t Tree) map[string]struct{} {
	ids := make(map[string]struct{})
	Walk(t, func(n Node, _ int) bool {
		ids[n.ID()] = struct{}{}
		return true
	})
	return ids
}

// SubtreeIDs returns n's id followed by its descendants' ids in pre-order.
func SubtreeIDs(n Node) []string {
	var ids []string
	WalkNode(n, func(c Node, _ int) bool {
		ids = append(ids, c.ID())
		return true
	})
	return ids
}

// Size returns the total number of nodes.
func Size(t Tree) int {
	count := 0
	Walk(t, func(Node, int) bool {
		count++
		return true
	})
	return count
}

// All returns every node in pre-order regardless of expansion.
func All(t Tree) []Node {
	var out []Node
	Walk(t, func(n Node, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Between returns the nodes from a to b inclusive, in full pre-order. The
// order of a and b does not matter. Nil if either is missing.
func Between(t Tree, a, b string) []Node {
	all := All(t)
	ai, bi := -1, -1
	for i, n := range all {
		if n.ID() == a {
			ai = i
		}
		if n.ID() == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return nil
	}
	if ai > bi {
		ai, bi = bi, ai
	}
	return all[ai : bi+1]
}

// Validate checks the id uniqueness invariant.
func Validate(t Tree) error {
	seen := make(map[string]struct{})
	var err error
	Walk(t, func(n Node, _ int) bool {
		if err != nil {
			return false
		}
		if _, dup := seen[n.ID()]; dup {
			err = fmt.Errorf("%w: %q", ErrDuplicateID, n.ID())
			return false
		}
		seen[n.ID()] = struct{}{}
		return true
	})
	return err
}

// Row is one visible line of a flattened tree.
type Row struct {
	Node  Node
	Depth int
	// Last is true when the node is the last of its siblings.
	Last bool
	// Guides holds, per ancestor level above the node, whether that ancestor
	// has siblings below it. len(Guides) == Depth.
	Guides []bool
}

// Flatten lists the visible nodes in pre-order. A folder's children are
// included when expanded reports its id, or unconditionally while
// searching. The result defines next/previous for keyboard navigation.
func Flatten(t Tree, expanded func(id string) bool, searching bool) []Node {
	rows := FlattenRows(t, expanded, searching)
	out := make([]Node, len(rows))
	for i, r := range rows {
		out[i] = r.Node
	}
	return out
}

// FlattenRows is Flatten with the layout data a renderer needs.
func FlattenRows(t Tree, expanded func(id string) bool, searching bool) []Row {
	defer metrics.Timer(metrics.Flatten)()

	var rows []Row
	var visit func(nodes []Node, depth int, guides []bool)
	visit = func(nodes []Node, depth int, guides []bool) {
		for i, n := range nodes {
			last := i == len(nodes)-1
			rows = append(rows, Row{Node: n, Depth: depth, Last: last, Guides: guides})
			f, ok := n.(Folder)
			if !ok {
				continue
			}
			if searching || (expanded != nil && expanded(f.id)) {
				next := make([]bool, len(guides)+1)
				copy(next, guides)
				next[len(guides)] = !last
				visit(f.children, depth+1, next)
			}
		}
	}
	visit(t.roots, 0, nil)
	return rows
}
