package explorer

import "sort"

// Expansion is an immutable set of expanded folder ids.
type Expansion struct {
	set map[string]struct{}
}

// NewExpansion builds an expansion set.
func NewExpansion(ids ...string) Expansion {
	return Expansion{}.Add(ids...)
}

// Has reports whether id is expanded.
func (e Expansion) Has(id string) bool {
	_, ok := e.set[id]
	return ok
}

// Len returns the number of expanded folders.
func (e Expansion) Len() int { return len(e.set) }

// IDs returns the expanded ids sorted for stable output.
func (e Expansion) IDs() []string {
	out := make([]string, 0, len(e.set))
	for id := range e.set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (e Expansion) clone(extra int) map[string]struct{} {
	m := make(map[string]struct{}, len(e.set)+extra)
	for id := range e.set {
		m[id] = struct{}{}
	}
	return m
}

// Add expands ids without collapsing anything else.
func (e Expansion) Add(ids ...string) Expansion {
	missing := false
	for _, id := range ids {
		if !e.Has(id) {
			missing = true
			break
		}
	}
	if !missing {
		return e
	}
	m := e.clone(len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Expansion{set: m}
}

// Remove collapses id.
func (e Expansion) Remove(id string) Expansion {
	if !e.Has(id) {
		return e
	}
	m := e.clone(0)
	delete(m, id)
	return Expansion{set: m}
}

// Toggle flips membership of id.
func (e Expansion) Toggle(id string) Expansion {
	if e.Has(id) {
		return e.Remove(id)
	}
	return e.Add(id)
}

// Prune keeps only ids for which keep returns true.
func (e Expansion) Prune(keep func(id string) bool) Expansion {
	var drop []string
	for id := range e.set {
		if !keep(id) {
			drop = append(drop, id)
		}
	}
	if len(drop) == 0 {
		return e
	}
	m := e.clone(0)
	for _, id := range drop {
		delete(m, id)
	}
	return Expansion{set: m}
}
