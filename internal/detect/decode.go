// Package detect converts raw detector output tensors into label-ready
// boxes: coordinate decoding, output-layout detection, and greedy
// non-maximum suppression.
package detect

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"yolo-labeler/pkg/geometry"
)

// ErrUnsupportedModelFormat is returned when a model's declared output shape
// matches no known layout. The check runs once at model load, before any
// inference.
var ErrUnsupportedModelFormat = errors.New("unsupported model output format")

// Layout identifies how a model lays out its output tensor.
type Layout int

const (
	// LayoutV5 is the [1, 25200, 6] row-per-detection layout: each row is
	// cx, cy, w, h, objectness, class confidence, normalized to image size.
	LayoutV5 Layout = iota + 1
	// LayoutV8 is the [1, 5, 8400] channel-major layout: the same five
	// values transposed, with channel 4 holding the class score directly.
	LayoutV8
)

const (
	v5Rows    = 25200
	v5Stride  = 6
	v8Chans   = 5
	v8Columns = 8400
)

func (l Layout) String() string {
	switch l {
	case LayoutV5:
		return "v5"
	case LayoutV8:
		return "v8"
	default:
		return "unknown"
	}
}

// DetectLayout matches a declared output shape against the known layouts.
// Anything else is a hard failure: the heuristic is deliberately an exact
// allowlist, never speculative inference from unfamiliar shapes.
func DetectLayout(shape []int64) (Layout, error) {
	if len(shape) == 3 && shape[0] == 1 {
		if shape[1] == v5Rows && shape[2] == v5Stride {
			return LayoutV5, nil
		}
		if shape[1] == v8Chans && shape[2] == v8Columns {
			return LayoutV8, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedModelFormat, "output shape %v", shape)
}

// Candidate is an unfiltered detection: a rectangle in image-space pixels
// plus its confidence. Candidates only live inside the decode->NMS pipeline.
type Candidate struct {
	Rect       geometry.Rect
	Confidence float32
}

// Decode converts a raw output tensor into candidates for an image of the
// given pixel dimensions. Rows below the confidence threshold and boxes
// extending outside [0,width] x [0,height] are rejected.
func Decode(data []float32, layout Layout, width, height float64, confThreshold float32) ([]Candidate, error) {
	switch layout {
	case LayoutV5:
		if len(data) < v5Rows*v5Stride {
			return nil, errors.Errorf("tensor holds %d floats, layout v5 needs %d", len(data), v5Rows*v5Stride)
		}
		var out []Candidate
		for i := 0; i < v5Rows; i++ {
			row := data[i*v5Stride : (i+1)*v5Stride]
			conf := row[4] * row[5]
			if c, ok := decodeOne(row[0], row[1], row[2], row[3], conf, width, height, confThreshold); ok {
				out = append(out, c)
			}
		}
		return out, nil

	case LayoutV8:
		if len(data) < v8Chans*v8Columns {
			return nil, errors.Errorf("tensor holds %d floats, layout v8 needs %d", len(data), v8Chans*v8Columns)
		}
		at := func(ch, col int) float32 { return data[ch*v8Columns+col] }
		var out []Candidate
		for col := 0; col < v8Columns; col++ {
			conf := at(4, col)
			if c, ok := decodeOne(at(0, col), at(1, col), at(2, col), at(3, col), conf, width, height, confThreshold); ok {
				out = append(out, c)
			}
		}
		return out, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedModelFormat, "layout %d", layout)
	}
}

// decodeOne filters one center+size detection and converts it to a corner
// rectangle in image pixels.
func decodeOne(cx, cy, w, h, conf float32, width, height float64, threshold float32) (Candidate, bool) {
	if math32.IsNaN(conf) || conf < threshold {
		return Candidate{}, false
	}
	x1 := float64(cx-w/2) * width
	y1 := float64(cy-h/2) * height
	x2 := float64(cx+w/2) * width
	y2 := float64(cy+h/2) * height
	if x1 < 0 || y1 < 0 || x2 > width || y2 > height || x2 <= x1 || y2 <= y1 {
		return Candidate{}, false
	}
	return Candidate{
		Rect:       geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1},
		Confidence: conf,
	}, true
}
