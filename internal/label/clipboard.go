package label

// PasteOffset is the image-space displacement applied to pasted boxes so
// they do not land exactly on their source.
const PasteOffset = 20.0

// Clipboard buffers deep copies of boxes for copy/paste across images. It is
// an explicit session object passed to the editor rather than a package
// global, and it is only touched from the UI thread.
type Clipboard struct {
	boxes []Box
}

// NewClipboard creates an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Set replaces the buffer with value copies of the given boxes.
func (c *Clipboard) Set(boxes []*Box) {
	c.boxes = make([]Box, len(boxes))
	for i, b := range boxes {
		c.boxes[i] = *b
	}
}

// Items returns value copies of the buffered boxes.
func (c *Clipboard) Items() []Box {
	out := make([]Box, len(c.boxes))
	copy(out, c.boxes)
	return out
}

// Empty reports whether the buffer holds no boxes.
func (c *Clipboard) Empty() bool {
	return len(c.boxes) == 0
}
