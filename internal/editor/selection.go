package editor

import (
	"yolo-labeler/internal/label"
	"yolo-labeler/pkg/geometry"
)

// Selection tracks the primary selected box and a multi-selection set, by
// reference identity. Every member must currently belong to the active
// collection; deletions, undo, and image switches clear the selection
// because those operations discard box identities wholesale.
type Selection struct {
	primary *label.Box
	set     map[*label.Box]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{set: make(map[*label.Box]struct{})}
}

// Primary returns the primary selected box, or nil.
func (s *Selection) Primary() *label.Box {
	return s.primary
}

// Contains reports whether the box is a member of the selection set.
func (s *Selection) Contains(b *label.Box) bool {
	_, ok := s.set[b]
	return ok
}

// Len returns the size of the selection set.
func (s *Selection) Len() int {
	return len(s.set)
}

// Boxes returns the members of the selection set in arbitrary order.
func (s *Selection) Boxes() []*label.Box {
	out := make([]*label.Box, 0, len(s.set))
	for b := range s.set {
		out = append(out, b)
	}
	return out
}

// Active returns the boxes a gesture should act on: the selection set, or
// the primary alone when the set is empty, or nothing.
func (s *Selection) Active() []*label.Box {
	if len(s.set) > 0 {
		return s.Boxes()
	}
	if s.primary != nil {
		return []*label.Box{s.primary}
	}
	return nil
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.primary = nil
	s.set = make(map[*label.Box]struct{})
}

// SelectOnly makes the box the sole member and primary.
func (s *Selection) SelectOnly(b *label.Box) {
	s.Clear()
	s.set[b] = struct{}{}
	s.primary = b
}

// Toggle flips the box's membership in the set. Adding makes it primary;
// removing re-assigns primary to an arbitrary remaining member, or nil.
func (s *Selection) Toggle(b *label.Box) {
	if _, ok := s.set[b]; ok {
		delete(s.set, b)
		if s.primary == b {
			s.primary = nil
			for m := range s.set {
				s.primary = m
				break
			}
		}
		return
	}
	s.set[b] = struct{}{}
	s.primary = b
}

// SelectAll selects every box in the collection, keeping z-topmost as
// primary.
func (s *Selection) SelectAll(c *label.Collection) {
	s.Clear()
	boxes := c.Boxes()
	for _, b := range boxes {
		s.set[b] = struct{}{}
	}
	if len(boxes) > 0 {
		s.primary = boxes[len(boxes)-1]
	}
}

// HitTest returns the topmost box containing the image-space point, walking
// the collection in reverse insertion order. Returns nil on a miss.
func HitTest(c *label.Collection, p geometry.Point2D) *label.Box {
	boxes := c.Boxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].Rect().Contains(p) {
			return boxes[i]
		}
	}
	return nil
}
