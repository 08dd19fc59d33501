// Command vid2frames extracts still frames from a video for annotation.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yolo-labeler/internal/frames"
)

func main() {
	video := flag.String("video", "", "Path to video file")
	out := flag.String("out", "", "Output directory (default: <video name>_frames)")
	step := flag.Int("step", 30, "Extract every Nth frame")
	max := flag.Int("max", 0, "Stop after this many frames (0 = all)")
	flag.Parse()

	if *video == "" {
		fmt.Println("Usage: vid2frames -video <path> [-out dir] [-step 30] [-max 0]")
		os.Exit(1)
	}

	outDir := *out
	if outDir == "" {
		base := strings.TrimSuffix(*video, filepath.Ext(*video))
		outDir = base + "_frames"
	}

	res, err := frames.Extract(*video, outDir, frames.Options{
		Step:      *step,
		MaxFrames: *max,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d of %d frames to %s\n",
		res.FramesWritten, res.FramesRead, res.OutputDir)
}
