package tree

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out node ids. Implementations must never return the
// same id twice.
type IDGenerator interface {
	NewID(prefix string) string
}

// Sequence generates ids of the form "<namespace>-<prefix>-<n>-<rand>",
// combining a monotonic counter with a random suffix.
type Sequence struct {
	namespace string
	counter   atomic.Uint64
	random    func() string
}

// NewSequence returns a generator whose ids start with namespace.
func NewSequence(namespace string) *Sequence {
	if namespace == "" {
		namespace = "ft"
	}
	return &Sequence{
		namespace: namespace,
		random: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
	}
}

// NewID implements IDGenerator.
func (s *Sequence) NewID(prefix string) string {
	n := s.counter.Add(1)
	if prefix == "" {
		prefix = "node"
	}
	return fmt.Sprintf("%s-%s-%d-%s", s.namespace, prefix, n, s.random())
}

// avoiding wraps a generator and skips ids already taken.
type avoiding struct {
	gen   IDGenerator
	taken map[string]struct{}
}

// Avoiding returns a generator that never yields an id present in t, nor one
// it already yielded.
func Avoiding(gen IDGenerator, t Tree) IDGenerator {
	return &avoiding{gen: gen, taken: IDs(t)}
}

func (a *avoiding) NewID(prefix string) string {
	for {
		id := a.gen.NewID(prefix)
		if _, dup := a.taken[id]; dup {
			continue
		}
		a.taken[id] = struct{}{}
		return id
	}
}
