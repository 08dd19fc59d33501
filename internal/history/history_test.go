package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yolo-labeler/internal/label"
)

func mutate(c *label.Collection, h *History, name string) {
	h.Snapshot()
	c.Append(&label.Box{Name: name, Width: 20, Height: 20})
}

func names(c *label.Collection) []string {
	boxes := c.Boxes()
	out := make([]string, len(boxes))
	for i, b := range boxes {
		out[i] = b.Name
	}
	return out
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c := label.NewCollection()
	h := New(c)

	mutate(c, h, "a")
	mutate(c, h, "b")
	require.Equal(t, []string{"a", "b"}, names(c))

	require.True(t, h.Undo())
	assert.Equal(t, []string{"a"}, names(c))

	require.True(t, h.Redo())
	assert.Equal(t, []string{"a", "b"}, names(c))
}

func TestUndoEmpty(t *testing.T) {
	h := New(label.NewCollection())
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestRedoClearedByNewMutation(t *testing.T) {
	c := label.NewCollection()
	h := New(c)

	mutate(c, h, "a")
	mutate(c, h, "b")
	require.True(t, h.Undo())
	require.True(t, h.CanRedo())

	mutate(c, h, "c")
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, []string{"a", "c"}, names(c))
}

func TestUndoCapEvictsOldest(t *testing.T) {
	c := label.NewCollection()
	h := New(c)

	for i := 1; i <= MaxUndo+5; i++ {
		mutate(c, h, fmt.Sprintf("m%d", i))
	}
	require.Equal(t, MaxUndo+5, c.Len())

	steps := 0
	for h.Undo() {
		steps++
	}
	assert.Equal(t, MaxUndo, steps)

	// The oldest 5 snapshots were evicted, so the deepest reachable state
	// is the one captured before mutation 6.
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5"}, names(c))
}

func TestGesturePushOneStep(t *testing.T) {
	c := label.NewCollection()
	h := New(c)
	b := &label.Box{Name: "a", X: 0, Y: 0, Width: 20, Height: 20}
	c.Append(b)

	// Drag: capture once at pointer down, mutate incrementally, push on release.
	pre := c.Snapshot()
	b.Translate(3, 0)
	b.Translate(3, 0)
	b.Translate(4, 0)
	h.Push(pre)

	require.True(t, h.Undo())
	assert.Equal(t, 0.0, c.Boxes()[0].X)
	assert.False(t, h.CanUndo())

	require.True(t, h.Redo())
	assert.Equal(t, 10.0, c.Boxes()[0].X)
}
