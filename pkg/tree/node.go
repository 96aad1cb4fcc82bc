// Package tree is the state engine behind the file explorer widget.
//
// A Tree is an immutable, ordered forest of nodes. Every node is either a
// File or a Folder; only folders carry children. Nodes keep no pointer to
// their parent, so parent lookup is always a query (FindParent) and a tree
// value can never contain a cycle by construction.
//
// All operations in this package are pure: they take a Tree and return a new
// Tree (or an error) without touching the argument. Untouched subtrees are
// shared between the input and the result.
package tree

import "strings"

// Kind distinguishes files from folders.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// String returns the lower-case kind name used in snapshots.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Matching is case-insensitive.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile, true
	case "folder", "dir", "directory":
		return KindFolder, true
	default:
		return KindFile, false
	}
}

// Node is implemented by File and Folder only.
type Node interface {
	ID() string
	Name() string
	Kind() Kind
	// Renaming reports whether inline rename is in progress for the node.
	Renaming() bool

	withName(name string) Node
	withRenaming(on bool) Node
	sealed()
}

// File is a leaf node with an optional text payload.
type File struct {
	id       string
	name     string
	content  string
	renaming bool
}

// NewFile returns a file node.
func NewFile(id, name, content string) File {
	return File{id: id, name: name, content: content}
}

func (f File) ID() string      { return f.id }
func (f File) Name() string    { return f.name }
func (f File) Kind() Kind      { return KindFile }
func (f File) Renaming() bool  { return f.renaming }
func (f File) Content() string { return f.content }

func (f File) withName(name string) Node {
	f.name = name
	return f
}

func (f File) withRenaming(on bool) Node {
	f.renaming = on
	return f
}

func (File) sealed() {}

// Folder owns an ordered, possibly empty, list of children.
type Folder struct {
	id       string
	name     string
	children []Node
	renaming bool
}

// NewFolder returns a folder node. The children slice is copied.
func NewFolder(id, name string, children ...Node) Folder {
	c := make([]Node, len(children))
	copy(c, children)
	return Folder{id: id, name: name, children: c}
}

func (f Folder) ID() string     { return f.id }
func (f Folder) Name() string   { return f.name }
func (f Folder) Kind() Kind     { return KindFolder }
func (f Folder) Renaming() bool { return f.renaming }

// Children returns a copy of the folder's children. It is never nil.
func (f Folder) Children() []Node {
	c := make([]Node, len(f.children))
	copy(c, f.children)
	return c
}

// Len returns the number of direct children.
func (f Folder) Len() int { return len(f.children) }

// Child returns the i-th direct child.
func (f Folder) Child(i int) Node { return f.children[i] }

func (f Folder) withName(name string) Node {
	f.name = name
	return f
}

func (f Folder) withRenaming(on bool) Node {
	f.renaming = on
	return f
}

// withChildren installs c as the new children list. c must not be shared
// with any other folder that may later be modified in place.
func (f Folder) withChildren(c []Node) Folder {
	if c == nil {
		c = []Node{}
	}
	f.children = c
	return f
}

func (Folder) sealed() {}

// IsFolder reports whether n is a folder.
func IsFolder(n Node) bool {
	_, ok := n.(Folder)
	return ok
}

// Tree is an ordered sequence of root nodes.
type Tree struct {
	roots []Node
}

// New builds a tree from root nodes. The slice is copied.
func New(roots ...Node) Tree {
	r := make([]Node, len(roots))
	copy(r, roots)
	return Tree{roots: r}
}

// Roots returns a copy of the top-level nodes.
func (t Tree) Roots() []Node {
	r := make([]Node, len(t.roots))
	copy(r, t.roots)
	return r
}

// Len returns the number of top-level nodes.
func (t Tree) Len() int { return len(t.roots) }

// Empty reports whether the tree has no nodes at all.
func (t Tree) Empty() bool { return len(t.roots) == 0 }

// Equal reports whether a and b have the same shape, ids, names, kinds,
// contents and renaming flags.
func Equal(a, b Tree) bool {
	return equalNodes(a.roots, b.roots)
}

func equalNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualNode compares two subtrees, ids included.
func EqualNode(a, b Node) bool {
	switch x := a.(type) {
	case File:
		y, ok := b.(File)
		return ok && x == y
	case Folder:
		y, ok := b.(Folder)
		if !ok {
			return false
		}
		return x.id == y.id && x.name == y.name && x.renaming == y.renaming &&
			equalNodes(x.children, y.children)
	default:
		return false
	}
}
