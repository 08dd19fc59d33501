package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yolo-labeler/internal/detect"
	"yolo-labeler/internal/label"
	"yolo-labeler/pkg/geometry"
)

// newEditor returns an editor with one active image and an identity view
// transform, so screen and image coordinates coincide.
func newEditor() *Editor {
	e := New(label.NewStore(), label.NewClipboard())
	e.SetActiveImage("img.png")
	return e
}

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func drawBox(e *Editor, x1, y1, x2, y2 float64) {
	e.PointerDown(pt(x1, y1), false)
	e.PointerMove(pt(x2, y2))
	e.PointerUp(pt(x2, y2))
}

func TestDrawCommit(t *testing.T) {
	e := newEditor()
	e.PointerDown(pt(10, 10), false)
	e.PointerMove(pt(40, 30))

	draft := e.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, geometry.Rect{X: 10, Y: 10, Width: 30, Height: 20}, draft.Rect())
	assert.Equal(t, 0, e.Collection().Len(), "draft is not in the collection")

	e.PointerUp(pt(40, 30))
	require.Equal(t, 1, e.Collection().Len())
	b := e.Collection().Boxes()[0]
	assert.Equal(t, "Label 1", b.Name)
	assert.False(t, b.Machine)
	assert.Same(t, b, e.Selection().Primary())
	assert.Nil(t, e.Draft())
}

func TestDrawDiscardTiny(t *testing.T) {
	tests := []struct {
		name         string
		x2, y2       float64
		want         int
		wantW, wantH float64
	}{
		{name: "both dims at threshold", x2: 15, y2: 15, want: 0},
		{name: "one dim too small", x2: 100, y2: 14, want: 0},
		{name: "just over threshold clamps to min size", x2: 16, y2: 16, want: 1, wantW: label.MinSize, wantH: label.MinSize},
		{name: "large enough unchanged", x2: 60, y2: 40, want: 1, wantW: 50, wantH: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor()
			drawBox(e, 10, 10, tt.x2, tt.y2)
			require.Equal(t, tt.want, e.Collection().Len())
			if tt.want == 1 {
				b := e.Collection().Boxes()[0]
				assert.Equal(t, tt.wantW, b.Width)
				assert.Equal(t, tt.wantH, b.Height)
			}
		})
	}
}

func TestDrawReversedCorners(t *testing.T) {
	e := newEditor()
	drawBox(e, 80, 60, 20, 20)
	require.Equal(t, 1, e.Collection().Len())
	assert.Equal(t, geometry.Rect{X: 20, Y: 20, Width: 60, Height: 40}, e.Collection().Boxes()[0].Rect())
}

func TestDragAndUndo(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 100, 50)
	b := e.Collection().Boxes()[0]

	// Click inside and drag in two steps.
	e.PointerDown(pt(50, 25), false)
	e.PointerMove(pt(60, 30))
	e.PointerMove(pt(70, 45))
	e.PointerUp(pt(70, 45))
	assert.Equal(t, geometry.Rect{X: 20, Y: 20, Width: 100, Height: 50}, b.Rect())

	// One gesture, one undo step back to the pre-drag state.
	e.Undo()
	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 100, Height: 50}, e.Collection().Boxes()[0].Rect())

	// A second undo removes the drawn box itself.
	e.Undo()
	assert.Equal(t, 0, e.Collection().Len())
}

func TestClickWithoutMoveNoHistory(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 100, 50)
	b := e.Collection().Boxes()[0]

	e.PointerDown(pt(50, 25), false)
	e.PointerUp(pt(50, 25))
	assert.Same(t, b, e.Selection().Primary())

	// Undo skips the stationary click and reverts the draw.
	e.Undo()
	assert.Equal(t, 0, e.Collection().Len())
}

func TestResizeHandles(t *testing.T) {
	tests := []struct {
		name    string
		grab    geometry.Point2D
		release geometry.Point2D
		want    geometry.Rect
	}{
		{
			name:    "bottom-right grows",
			grab:    pt(100, 50),
			release: pt(150, 80),
			want:    geometry.Rect{X: 0, Y: 0, Width: 150, Height: 80},
		},
		{
			name:    "top-left shrinks",
			grab:    pt(0, 0),
			release: pt(20, 10),
			want:    geometry.Rect{X: 20, Y: 10, Width: 80, Height: 40},
		},
		{
			name:    "right edge clamps at min width",
			grab:    pt(100, 25),
			release: pt(2, 25),
			want:    geometry.Rect{X: 0, Y: 0, Width: label.MinSize, Height: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor()
			drawBox(e, 0, 0, 100, 50)
			b := e.Collection().Boxes()[0]

			e.PointerDown(tt.grab, false)
			e.PointerMove(tt.release)
			e.PointerUp(tt.release)
			assert.Equal(t, tt.want, b.Rect())
		})
	}
}

func TestMultiSelectToggle(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 50, 50)
	drawBox(e, 100, 0, 150, 50)
	a := e.Collection().Boxes()[0]
	b := e.Collection().Boxes()[1]

	e.PointerDown(pt(25, 25), false)
	e.PointerUp(pt(25, 25))
	e.PointerDown(pt(125, 25), true)
	e.PointerUp(pt(125, 25))
	assert.ElementsMatch(t, []*label.Box{a, b}, e.Selection().Active())

	// Toggling an already-selected box removes it.
	e.PointerDown(pt(25, 25), true)
	e.PointerUp(pt(25, 25))
	assert.Equal(t, []*label.Box{b}, e.Selection().Active())
}

func TestDeleteSelection(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 50, 50)
	drawBox(e, 100, 0, 150, 50)
	e.SelectAll()

	e.DeleteSelection()
	assert.Equal(t, 0, e.Collection().Len())
	assert.Equal(t, 0, e.Selection().Len())

	e.Undo()
	assert.Equal(t, 2, e.Collection().Len())
}

func TestNudge(t *testing.T) {
	e := newEditor()
	drawBox(e, 10, 10, 60, 60)
	b := e.Collection().Boxes()[0]

	e.Nudge(1, 0)
	e.Nudge(0, -1)
	assert.Equal(t, 11.0, b.X)
	assert.Equal(t, 9.0, b.Y)

	// Each nudge is its own undo step.
	e.Undo()
	assert.Equal(t, 10.0, e.Collection().Boxes()[0].Y)
}

func TestNudgeWithoutSelection(t *testing.T) {
	e := newEditor()
	drawBox(e, 10, 10, 60, 60)
	e.Selection().Clear()
	e.Nudge(5, 5)
	assert.Equal(t, 10.0, e.Collection().Boxes()[0].X)
}

func TestCopyPaste(t *testing.T) {
	e := newEditor()
	drawBox(e, 5, 5, 25, 25)
	e.Copy()
	e.Paste()

	require.Equal(t, 2, e.Collection().Len())
	pasted := e.Collection().Boxes()[1]
	assert.Equal(t, geometry.Rect{X: 25, Y: 25, Width: 20, Height: 20}, pasted.Rect())
	assert.Equal(t, "Label 2", pasted.Name, "pasted boxes get fresh names")
	assert.Equal(t, []*label.Box{pasted}, e.Selection().Active())
}

func TestPasteAcrossImages(t *testing.T) {
	e := newEditor()
	drawBox(e, 5, 5, 25, 25)
	e.Copy()

	e.SetActiveImage("other.png")
	e.Paste()
	require.Equal(t, 1, e.Collection().Len())
	assert.Equal(t, 25.0, e.Collection().Boxes()[0].X)
}

func TestPerImageHistory(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 50, 50)

	e.SetActiveImage("other.png")
	e.Undo() // no history for this image yet
	assert.Equal(t, 0, e.Collection().Len())

	e.SetActiveImage("img.png")
	require.Equal(t, 1, e.Collection().Len())
	e.Undo()
	assert.Equal(t, 0, e.Collection().Len())
}

func TestApplyDetections(t *testing.T) {
	e := newEditor()
	candidates := []detect.Candidate{
		{Rect: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}, Confidence: 0.9},
		{Rect: geometry.Rect{X: 5, Y: 5, Width: 100, Height: 100}, Confidence: 0.6}, // heavy overlap, suppressed
		{Rect: geometry.Rect{X: 300, Y: 300, Width: 50, Height: 50}, Confidence: 0.4},
	}

	n := e.ApplyDetections("other.png", candidates)
	assert.Equal(t, 2, n)

	boxes := e.store.Collection("other.png").Boxes()
	require.Len(t, boxes, 2)
	for _, b := range boxes {
		assert.True(t, b.Machine)
		assert.Equal(t, MachineName, b.Name)
	}
	assert.Equal(t, 0, e.Collection().Len(), "active image untouched")
}

func TestRename(t *testing.T) {
	e := newEditor()
	n := e.ApplyDetections("img.png", []detect.Candidate{
		{Rect: geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Confidence: 0.8},
	})
	require.Equal(t, 1, n)
	b := e.Collection().Boxes()[0]

	e.Rename(b, "person")
	assert.Equal(t, "person", b.Name)
	assert.False(t, b.Machine, "renaming clears the machine flag")

	e.Rename(b, "")
	assert.Equal(t, "person", b.Name)

	stranger := &label.Box{Name: "x"}
	e.Rename(stranger, "y")
	assert.Equal(t, "x", stranger.Name)
}

func TestViewTransformHitTest(t *testing.T) {
	e := newEditor()
	drawBox(e, 0, 0, 100, 50)
	b := e.Collection().Boxes()[0]
	e.Selection().Clear()

	// At 2x zoom the box occupies (0,0)-(200,100) on screen.
	e.View().SetScale(2)
	e.PointerDown(pt(150, 75), false)
	e.PointerUp(pt(150, 75))
	assert.Same(t, b, e.Selection().Primary())
}
