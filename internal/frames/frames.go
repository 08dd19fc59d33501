// Package frames extracts still frames from video files for annotation.
package frames

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
	"yolo-labeler/internal/imageio"
)

// Options controls frame extraction.
type Options struct {
	// Step extracts every Step-th frame. Values below 1 are treated as 1.
	Step int
	// MaxFrames stops extraction after this many frames are written.
	// Zero means no limit.
	MaxFrames int
}

// Result reports what an extraction run produced.
type Result struct {
	FramesRead    int
	FramesWritten int
	OutputDir     string
}

// Extract reads a video and writes every Nth frame as a PNG into outDir,
// named <video base>_NNNNNN.png after the source frame index. The output
// directory is created if needed.
func Extract(videoPath, outDir string, opts Options) (*Result, error) {
	step := opts.Step
	if step < 1 {
		step = 1
	}

	cap, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", videoPath, err)
	}
	defer cap.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	frame := gocv.NewMat()
	defer frame.Close()

	res := &Result{OutputDir: outDir}
	for {
		if !cap.Read(&frame) || frame.Empty() {
			break
		}
		idx := res.FramesRead
		res.FramesRead++
		if idx%step != 0 {
			continue
		}

		img, err := frame.ToImage()
		if err != nil {
			return res, fmt.Errorf("failed to convert frame %d: %w", idx, err)
		}
		out := filepath.Join(outDir, fmt.Sprintf("%s_%06d.png", base, idx))
		if err := imageio.SavePNG(img, out); err != nil {
			return res, fmt.Errorf("failed to write frame %d: %w", idx, err)
		}
		res.FramesWritten++

		if opts.MaxFrames > 0 && res.FramesWritten >= opts.MaxFrames {
			break
		}
	}

	if res.FramesRead == 0 {
		return res, fmt.Errorf("no frames decoded from %s", videoPath)
	}
	return res, nil
}
