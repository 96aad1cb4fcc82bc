package explorer

// Modifiers carries the modifier keys held during a select intent.
type Modifiers struct {
	// Toggle flips membership of the clicked node (ctrl/cmd click).
	Toggle bool
	// Range extends from the anchor to the clicked node (shift click). It
	// always selects at least the clicked node.
	Range bool
}

// Selection is an immutable ordered set of node ids.
type Selection struct {
	ids []string
}

// NewSelection builds a selection, dropping duplicates.
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// IDs returns the selected ids in selection order.
func (s Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected ids.
func (s Selection) Len() int { return len(s.ids) }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s.ids) == 0 }

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	for _, x := range s.ids {
		if x == id {
			return true
		}
	}
	return false
}

// Primary is the first selected id, the one keyboard navigation and
// inline rename act on.
func (s Selection) Primary() (string, bool) {
	if len(s.ids) == 0 {
		return "", false
	}
	return s.ids[0], true
}

// Only returns a selection holding exactly id.
func (s Selection) Only(id string) Selection {
	return Selection{ids: []string{id}}
}

// With returns s plus id (appended if new).
func (s Selection) With(id string) Selection {
	if s.Contains(id) {
		return s
	}
	out := make([]string, len(s.ids), len(s.ids)+1)
	copy(out, s.ids)
	return Selection{ids: append(out, id)}
}

// Without returns s minus id.
func (s Selection) Without(id string) Selection {
	return s.Prune(func(x string) bool { return x != id })
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id string) Selection {
	if s.Contains(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Prune keeps only ids for which keep returns true.
func (s Selection) Prune(keep func(id string) bool) Selection {
	var out []string
	for _, id := range s.ids {
		if keep(id) {
			out = append(out, id)
		}
	}
	if len(out) == len(s.ids) {
		return s
	}
	return Selection{ids: out}
}
