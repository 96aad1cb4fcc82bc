package tree

import (
	"strings"

	"github.com/vanderheijden86/filetree/pkg/metrics"
)

// NameMatches is the case-insensitive substring test applied to one name.
func NameMatches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// Matches reports whether n's own name or any descendant's name contains
// query, ignoring case.
func Matches(n Node, query string) bool {
	return matchesLower(n, strings.ToLower(query))
}

func matchesLower(n Node, q string) bool {
	if strings.Contains(strings.ToLower(n.Name()), q) {
		return true
	}
	if f, ok := n.(Folder); ok {
		for _, c := range f.children {
			if matchesLower(c, q) {
				return true
			}
		}
	}
	return false
}

// FilterTree keeps exactly the nodes that match query together with the
// folders leading to them. Survivors keep their relative order. A folder
// that matches by name but has no matching descendants is kept with an
// empty child list. An empty query returns t itself.
func FilterTree(t Tree, query string) Tree {
	if query == "" {
		return t
	}
	defer metrics.Timer(metrics.Filter)()
	return Tree{roots: filterNodes(t.roots, strings.ToLower(query))}
}

func filterNodes(nodes []Node, q string) []Node {
	out := []Node{}
	for _, n := range nodes {
		if !matchesLower(n, q) {
			continue
		}
		if f, ok := n.(Folder); ok {
			out = append(out, f.withChildren(filterNodes(f.children, q)))
			continue
		}
		out = append(out, n)
	}
	return out
}

// FolderIDs returns every folder id in pre-order.
func FolderIDs(t Tree) []string {
	var ids []string
	Walk(t, func(n Node, _ int) bool {
		if IsFolder(n) {
			ids = append(ids, n.ID())
		}
		return true
	})
	return ids
}

// CountMatches counts the nodes, folders included, whose own name contains
// query. Zero for an empty query.
func CountMatches(t Tree, query string) int {
	if query == "" {
		return 0
	}
	q := strings.ToLower(query)
	count := 0
	Walk(t, func(n Node, _ int) bool {
		if strings.Contains(strings.ToLower(n.Name()), q) {
			count++
		}
		return true
	})
	return count
}
