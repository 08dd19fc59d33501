// Package autolabel runs a detection model over a batch of images and feeds
// the results into the label store as machine-generated boxes.
package autolabel

import (
	"log"
	"sync/atomic"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"yolo-labeler/internal/detect"
	"yolo-labeler/internal/editor"
	"yolo-labeler/internal/imageio"
	"yolo-labeler/internal/inference"
)

// DefaultConfidence is the decode confidence threshold used when the caller
// does not override it.
const DefaultConfidence = 0.25

// Progress reports the state of a batch run after each image.
type Progress struct {
	Index      int // zero-based index of the image just finished
	Total      int
	Image      string
	Detections int
	Err        error // per-image failure; the run continues
}

// Stats summarizes a finished batch run.
type Stats struct {
	Images   int // images processed, including failures
	Failures int
	Boxes    int // boxes appended across all images
	// MeanConfidence and StdDevConfidence are computed over the kept
	// (post-suppression) detections of the whole run.
	MeanConfidence   float64
	StdDevConfidence float64
}

// Runner drives batch auto-labeling. A single run executes on one worker
// goroutine; Cancel is safe from any goroutine and takes effect between
// images.
type Runner struct {
	runtime   *inference.Runtime
	editor    *editor.Editor
	threshold float32

	running atomic.Bool
	cancel  atomic.Bool
}

// NewRunner creates a runner over an open inference runtime. A threshold of
// zero selects DefaultConfidence.
func NewRunner(rt *inference.Runtime, ed *editor.Editor, threshold float32) *Runner {
	if threshold <= 0 {
		threshold = DefaultConfidence
	}
	return &Runner{runtime: rt, editor: ed, threshold: threshold}
}

// Running reports whether a batch run is in flight.
func (r *Runner) Running() bool { return r.running.Load() }

// Cancel requests a cooperative stop. The image currently being processed
// finishes; no further images start.
func (r *Runner) Cancel() { r.cancel.Store(true) }

// Run processes each image in order, appending surviving detections to that
// image's collection. Per-image failures are counted and reported through
// onProgress but do not stop the run. Run blocks; callers wanting a
// background run start it on their own goroutine.
func (r *Runner) Run(images []string, onProgress func(Progress)) (Stats, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Stats{}, errors.New("auto-label run already in progress")
	}
	defer r.running.Store(false)
	r.cancel.Store(false)

	var stats Stats
	var confidences []float64

	for i, path := range images {
		if r.cancel.Load() {
			log.Printf("autolabel: cancelled after %d/%d images", i, len(images))
			break
		}

		kept, err := r.processImage(path)
		stats.Images++
		if err != nil {
			stats.Failures++
			log.Printf("autolabel: %s: %v", path, err)
		}
		stats.Boxes += len(kept)
		for _, c := range kept {
			confidences = append(confidences, float64(c.Confidence))
		}

		if onProgress != nil {
			onProgress(Progress{
				Index:      i,
				Total:      len(images),
				Image:      path,
				Detections: len(kept),
				Err:        err,
			})
		}
	}

	if len(confidences) > 0 {
		stats.MeanConfidence = stat.Mean(confidences, nil)
		stats.StdDevConfidence = stat.StdDev(confidences, nil)
	}
	if stats.Failures == stats.Images && stats.Images > 0 {
		return stats, errors.Errorf("all %d images failed", stats.Images)
	}
	return stats, nil
}

// processImage runs the full pipeline for one image: decode pixels, fill the
// input tensor, infer, decode the output, suppress, append.
func (r *Runner) processImage(path string) ([]detect.Candidate, error) {
	img, err := imageio.Pixels(path)
	if err != nil {
		return nil, errors.Wrap(err, "load image")
	}
	bounds := img.Bounds()

	if err := inference.PrepareInput(img, r.runtime.InputData()); err != nil {
		return nil, errors.Wrap(err, "prepare input")
	}
	output, err := r.runtime.Run()
	if err != nil {
		return nil, errors.Wrap(err, "inference")
	}

	candidates, err := detect.Decode(output, r.runtime.Layout(),
		float64(bounds.Dx()), float64(bounds.Dy()), r.threshold)
	if err != nil {
		return nil, errors.Wrap(err, "decode output")
	}

	kept := detect.NonMaxSuppress(candidates, detect.DefaultIoUThreshold)
	if len(kept) > 0 {
		r.editor.ApplyDetections(path, kept)
	}
	return kept, nil
}
