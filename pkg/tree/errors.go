package tree

import "errors"

var (
	// ErrNotFound indicates that an operation referenced an id absent from the tree.
	ErrNotFound = errors.New("node not found")

	// ErrInvalidTarget indicates a move or paste target that is not a folder,
	// is the node itself, or lies inside the node being moved.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrEmptyInput indicates a rename to a blank or unchanged name. Callers
	// treat it as a silent no-op.
	ErrEmptyInput = errors.New("empty or unchanged input")

	// ErrDuplicateID indicates a snapshot in which two nodes share an id.
	ErrDuplicateID = errors.New("duplicate node id")
)
