package editor

import (
	"yolo-labeler/internal/detect"
	"yolo-labeler/internal/history"
	"yolo-labeler/internal/label"
	"yolo-labeler/pkg/geometry"
)

// MachineName is the display name given to every machine-generated box.
// Names are allowed to collide; boxes are identified by reference.
const MachineName = "AI Label"

// minDrawSize is the drawing commit threshold: a drawn rectangle is
// discarded when either dimension is this small or smaller.
const minDrawSize = 5.0

// mode is the gesture state. Exactly one is active at a time; every pointer
// release returns to modeIdle.
type mode int

const (
	modeIdle mode = iota
	modeDrawing
	modeDragging
	modeResizing
)

// Editor is the gesture state machine driving selection, label collections,
// and undo history from pointer and keyboard events. All methods run on the
// UI thread; invalid gestures are no-ops, never errors.
type Editor struct {
	store     *label.Store
	clipboard *label.Clipboard
	view      *ViewTransform
	selection *Selection

	histories map[string]*history.History
	activeKey string

	mode   mode
	handle Handle

	draft       *label.Box       // in-progress rectangle while drawing
	drawStart   geometry.Point2D // fixed corner of the draft
	lastPoint   geometry.Point2D // previous pointer position while dragging
	resizeBox   *label.Box
	resizeStart geometry.Rect // box shape at resize gesture start
	preGesture  []label.Box   // collection snapshot at drag/resize start
	moved       bool

	onLabelsChanged func()
}

// New creates an editor over the given store and clipboard session.
func New(store *label.Store, clipboard *label.Clipboard) *Editor {
	return &Editor{
		store:     store,
		clipboard: clipboard,
		view:      NewViewTransform(),
		selection: NewSelection(),
		histories: make(map[string]*history.History),
	}
}

// View returns the editor's view transform.
func (e *Editor) View() *ViewTransform { return e.view }

// Selection returns the editor's selection state.
func (e *Editor) Selection() *Selection { return e.selection }

// Draft returns the in-progress rectangle while a drawing gesture is active,
// or nil. The draft is not part of the collection until commit.
func (e *Editor) Draft() *label.Box {
	if e.mode != modeDrawing {
		return nil
	}
	return e.draft
}

// OnLabelsChanged registers the notification fired after every committed
// mutation.
func (e *Editor) OnLabelsChanged(fn func()) {
	e.onLabelsChanged = fn
}

func (e *Editor) notify() {
	if e.onLabelsChanged != nil {
		e.onLabelsChanged()
	}
}

// ActiveKey returns the key of the image being edited.
func (e *Editor) ActiveKey() string { return e.activeKey }

// Collection returns the active image's collection, or nil when no image is
// active.
func (e *Editor) Collection() *label.Collection {
	if e.activeKey == "" {
		return nil
	}
	return e.store.Collection(e.activeKey)
}

func (e *Editor) history() *history.History {
	h, ok := e.histories[e.activeKey]
	if !ok {
		h = history.New(e.Collection())
		e.histories[e.activeKey] = h
	}
	return h
}

// SetActiveImage switches editing to another image. The previous collection
// stays in the store; selection is cleared, any gesture is abandoned, and
// the view transform resets to identity.
func (e *Editor) SetActiveImage(key string) {
	e.activeKey = key
	e.mode = modeIdle
	e.draft = nil
	e.resizeBox = nil
	e.selection.Clear()
	e.view.Reset()
}

// PointerDown starts a gesture at the given screen point. Hit priority:
// resize handles of the primary selection, then boxes topmost-first, then a
// fresh drawing gesture on empty space.
func (e *Editor) PointerDown(screen geometry.Point2D, multiSelect bool) {
	if e.activeKey == "" || e.mode != modeIdle {
		return
	}
	c := e.Collection()
	p := e.view.ToImage(screen)

	if primary := e.selection.Primary(); primary != nil {
		if h := hitHandle(primary.Rect(), p); h >= 0 {
			e.mode = modeResizing
			e.handle = h
			e.resizeBox = primary
			e.resizeStart = primary.Rect()
			e.preGesture = c.Snapshot()
			e.moved = false
			return
		}
	}

	if hit := HitTest(c, p); hit != nil {
		if multiSelect {
			e.selection.Toggle(hit)
		} else if !e.selection.Contains(hit) {
			e.selection.SelectOnly(hit)
		}
		e.mode = modeDragging
		e.lastPoint = p
		e.preGesture = c.Snapshot()
		e.moved = false
		return
	}

	e.selection.Clear()
	e.mode = modeDrawing
	e.drawStart = p
	e.draft = &label.Box{X: p.X, Y: p.Y}
}

// PointerMove advances the active gesture.
func (e *Editor) PointerMove(screen geometry.Point2D) {
	p := e.view.ToImage(screen)

	switch e.mode {
	case modeDrawing:
		e.draft.SetRect(geometry.RectFromCorners(e.drawStart, p))

	case modeDragging:
		dx := p.X - e.lastPoint.X
		dy := p.Y - e.lastPoint.Y
		// The delta accumulates per move event, not from gesture start,
		// so repeated moves cannot drift.
		e.lastPoint = p
		if dx == 0 && dy == 0 {
			return
		}
		for _, b := range e.selection.Active() {
			b.Translate(dx, dy)
		}
		e.moved = true

	case modeResizing:
		next := resizeTo(e.resizeStart, e.handle, p, label.MinSize)
		if next != e.resizeBox.Rect() {
			e.resizeBox.SetRect(next)
			e.moved = true
		}
	}
}

// PointerUp finishes the active gesture and returns to the idle state.
func (e *Editor) PointerUp(screen geometry.Point2D) {
	e.PointerMove(screen)

	switch e.mode {
	case modeDrawing:
		draft := e.draft
		e.draft = nil
		e.mode = modeIdle
		if draft.Width <= minDrawSize || draft.Height <= minDrawSize {
			return
		}
		// Committed boxes always satisfy the minimum size.
		if draft.Width < label.MinSize {
			draft.Width = label.MinSize
		}
		if draft.Height < label.MinSize {
			draft.Height = label.MinSize
		}
		draft.Name = e.store.NextName()
		e.history().Snapshot()
		e.Collection().Append(draft)
		e.selection.SelectOnly(draft)
		e.notify()

	case modeDragging, modeResizing:
		pre := e.preGesture
		e.preGesture = nil
		e.resizeBox = nil
		e.mode = modeIdle
		if e.moved {
			e.history().Push(pre)
			e.notify()
		}
	}
}

// Nudge moves the selection by the given image-space delta, one history
// snapshot per call. A no-op without a selection.
func (e *Editor) Nudge(dx, dy float64) {
	if e.activeKey == "" {
		return
	}
	boxes := e.selection.Active()
	if len(boxes) == 0 {
		return
	}
	e.history().Snapshot()
	for _, b := range boxes {
		b.Translate(dx, dy)
	}
	e.notify()
}

// DeleteSelection removes the selected boxes from the collection.
func (e *Editor) DeleteSelection() {
	if e.activeKey == "" {
		return
	}
	boxes := e.selection.Active()
	if len(boxes) == 0 {
		return
	}
	e.history().Snapshot()
	c := e.Collection()
	for _, b := range boxes {
		c.Remove(b)
	}
	e.selection.Clear()
	e.notify()
}

// SelectAll selects every box in the active collection.
func (e *Editor) SelectAll() {
	if e.activeKey == "" {
		return
	}
	e.selection.SelectAll(e.Collection())
}

// Undo reverts the most recent committed mutation of the active image.
func (e *Editor) Undo() {
	if e.activeKey == "" {
		return
	}
	if e.history().Undo() {
		e.selection.Clear()
		e.notify()
	}
}

// Redo reverses the most recent Undo on the active image.
func (e *Editor) Redo() {
	if e.activeKey == "" {
		return
	}
	if e.history().Redo() {
		e.selection.Clear()
		e.notify()
	}
}

// Rename changes a box's display name. Renaming a machine-generated box
// clears its machine flag, since a human has vouched for it.
func (e *Editor) Rename(b *label.Box, name string) {
	if e.activeKey == "" || name == "" || name == b.Name {
		return
	}
	if !e.Collection().Contains(b) {
		return
	}
	e.history().Snapshot()
	b.Name = name
	b.Machine = false
	e.notify()
}

// ApplyDetections suppresses overlapping candidates and appends the
// survivors as machine-generated boxes into the given image's collection.
// The target need not be the active image; detection runs are not part of
// that image's undo history. Returns the number of boxes appended.
//
// Unlike the gesture methods this is safe off the UI thread: it only
// appends through the collection's lock. The change notification may
// arrive on the calling goroutine.
func (e *Editor) ApplyDetections(imageKey string, candidates []detect.Candidate) int {
	kept := detect.NonMaxSuppress(candidates, detect.DefaultIoUThreshold)
	if len(kept) == 0 {
		return 0
	}
	c := e.store.Collection(imageKey)
	for _, cand := range kept {
		b := &label.Box{Name: MachineName, Machine: true}
		b.SetRect(cand.Rect)
		c.Append(b)
	}
	e.notify()
	return len(kept)
}

// Copy replaces the clipboard with deep copies of the selection. A no-op
// without a selection.
func (e *Editor) Copy() {
	boxes := e.selection.Active()
	if len(boxes) == 0 {
		return
	}
	e.clipboard.Set(boxes)
}

// Paste inserts offset copies of the clipboard contents with fresh names
// and selects them. A no-op when the clipboard is empty.
func (e *Editor) Paste() {
	if e.activeKey == "" || e.clipboard.Empty() {
		return
	}
	e.history().Snapshot()
	c := e.Collection()
	e.selection.Clear()
	for _, item := range e.clipboard.Items() {
		b := item.Clone()
		b.Translate(label.PasteOffset, label.PasteOffset)
		b.Name = e.store.NextName()
		c.Append(b)
		e.selection.Toggle(b)
	}
	e.notify()
}
