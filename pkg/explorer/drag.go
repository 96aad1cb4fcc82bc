package explorer

import (
	"github.com/vanderheijden86/filetree/pkg/debug"
	"github.com/vanderheijden86/filetree/pkg/tree"
)

// DragPhase is the stage of a drag gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
	DragHovering
)

func (p DragPhase) String() string {
	switch p {
	case DragDragging:
		return "dragging"
	case DragHovering:
		return "hovering"
	default:
		return "idle"
	}
}

// Drag is the drag-and-drop state. Over is empty unless the pointer rests
// on a valid drop target.
type Drag struct {
	Phase  DragPhase
	Active string
	Over   string
}

// Dragging reports whether a gesture is in progress.
func (d Drag) Dragging() bool { return d.Phase != DragIdle }

// DragStart picks up id. An unknown id leaves the state idle.
func (s State) DragStart(id string) State {
	if _, ok := tree.FindByID(s.tree, id); !ok {
		return s
	}
	s.drag = Drag{Phase: DragDragging, Active: id}
	return s
}

// DragOver records the node under the pointer. It becomes the drop
// candidate only when it is a folder outside the dragged subtree.
func (s State) DragOver(id string) State {
	if !s.drag.Dragging() {
		return s
	}
	s.drag.Phase = DragHovering
	s.drag.Over = ""
	if tree.CanMove(s.tree, s.drag.Active, id) == nil {
		s.drag.Over = id
	}
	return s
}

// DragEnd drops onto the current candidate, if any, and returns to idle.
// Dropping without a valid target does nothing.
func (s State) DragEnd() State {
	d := s.drag
	s.drag = Drag{}
	if d.Over == "" {
		return s
	}
	next, err := s.Move(d.Active, d.Over)
	if err != nil {
		debug.Log("drag: drop %s on %s rejected: %v", d.Active, d.Over, err)
		return s
	}
	return next
}

// DragCancel abandons the gesture.
func (s State) DragCancel() State {
	s.drag = Drag{}
	return s
}
