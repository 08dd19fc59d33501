package label

import "sync"

// Collection is the ordered set of boxes for one image. Insertion order is
// the render and hit-test z-order: the last box is topmost.
//
// Boxes of the active image are mutated in place on the UI thread only; the
// auto-label worker appends through the locked methods and never touches
// existing boxes.
type Collection struct {
	mu    sync.Mutex
	boxes []*Box
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Append adds a box on top of the z-order.
func (c *Collection) Append(boxes ...*Box) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boxes = append(c.boxes, boxes...)
}

// Remove deletes a box by identity. Removing a box that is not a member is
// a no-op.
func (c *Collection) Remove(b *Box) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, have := range c.boxes {
		if have == b {
			c.boxes = append(c.boxes[:i], c.boxes[i+1:]...)
			return
		}
	}
}

// Contains reports whether the box is a member, by identity.
func (c *Collection) Contains(b *Box) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.boxes {
		if have == b {
			return true
		}
	}
	return false
}

// Boxes returns a copy of the box slice in z-order (bottom first). The
// pointed-to boxes are shared, not copied.
func (c *Collection) Boxes() []*Box {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Box, len(c.boxes))
	copy(out, c.boxes)
	return out
}

// Len returns the number of boxes.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.boxes)
}

// Snapshot returns an independent deep copy of the collection contents,
// suitable for the undo journal.
func (c *Collection) Snapshot() []Box {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Box, len(c.boxes))
	for i, b := range c.boxes {
		out[i] = *b
	}
	return out
}

// Restore replaces the collection contents with fresh boxes copied from a
// snapshot. Existing box identities are discarded.
func (c *Collection) Restore(snapshot []Box) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boxes = make([]*Box, len(snapshot))
	for i := range snapshot {
		b := snapshot[i]
		c.boxes[i] = &b
	}
}
