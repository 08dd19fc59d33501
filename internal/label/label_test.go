package label

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yolo-labeler/pkg/geometry"
)

func TestBoxClone(t *testing.T) {
	orig := &Box{Name: "car", X: 10, Y: 20, Width: 30, Height: 40, Machine: true}
	c := orig.Clone()

	require.NotSame(t, orig, c)
	assert.Equal(t, *orig, *c)

	c.Name = "truck"
	c.Translate(5, 5)
	assert.Equal(t, "car", orig.Name)
	assert.Equal(t, 10.0, orig.X)
	assert.Equal(t, 20.0, orig.Y)
}

func TestBoxRectRoundTrip(t *testing.T) {
	b := &Box{}
	r := geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	b.SetRect(r)
	assert.Equal(t, r, b.Rect())
}

func TestCollectionRemoveByIdentity(t *testing.T) {
	// Two boxes share a name; removal must target the exact pointer.
	first := &Box{Name: "Label 1", X: 0}
	twin := &Box{Name: "Label 1", X: 100}
	c := NewCollection()
	c.Append(first, twin)

	c.Remove(first)

	require.Equal(t, 1, c.Len())
	boxes := c.Boxes()
	assert.Same(t, twin, boxes[0])
	assert.False(t, c.Contains(first))
	assert.True(t, c.Contains(twin))
}

func TestCollectionRemoveNonMember(t *testing.T) {
	c := NewCollection()
	c.Append(&Box{Name: "a"})
	c.Remove(&Box{Name: "a"}) // equal fields, different identity
	assert.Equal(t, 1, c.Len())
}

func TestCollectionZOrder(t *testing.T) {
	c := NewCollection()
	bottom := &Box{Name: "bottom"}
	top := &Box{Name: "top"}
	c.Append(bottom)
	c.Append(top)

	boxes := c.Boxes()
	require.Len(t, boxes, 2)
	assert.Same(t, bottom, boxes[0])
	assert.Same(t, top, boxes[1])
}

func TestCollectionSnapshotRestore(t *testing.T) {
	c := NewCollection()
	b := &Box{Name: "a", X: 1, Y: 2, Width: 20, Height: 20}
	c.Append(b)

	snap := c.Snapshot()
	b.X = 99 // snapshot must not see later mutations
	assert.Equal(t, 1.0, snap[0].X)

	c.Restore(snap)
	restored := c.Boxes()
	require.Len(t, restored, 1)
	assert.Equal(t, 1.0, restored[0].X)
	assert.NotSame(t, b, restored[0], "restore discards old identities")
}

func TestStoreCollectionLazy(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.Keys())

	c := s.Collection("img/a.png")
	require.NotNil(t, c)
	assert.Same(t, c, s.Collection("img/a.png"))
	assert.NotSame(t, c, s.Collection("img/b.png"))
	assert.ElementsMatch(t, []string{"img/a.png", "img/b.png"}, s.Keys())
}

func TestStoreNextName(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 3; i++ {
		assert.Equal(t, fmt.Sprintf("Label %d", i), s.NextName())
	}
}

func TestClipboardValueCopies(t *testing.T) {
	cb := NewClipboard()
	assert.True(t, cb.Empty())

	src := &Box{Name: "a", X: 5}
	cb.Set([]*Box{src})
	assert.False(t, cb.Empty())

	src.X = 50 // clipboard keeps the value at copy time
	items := cb.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5.0, items[0].X)

	items[0].X = 77 // mutating the returned slice does not leak back
	assert.Equal(t, 5.0, cb.Items()[0].X)
}
