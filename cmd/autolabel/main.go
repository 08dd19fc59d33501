// Command autolabel runs a detection model over a directory of images and
// writes YOLO-format label files, without the GUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"yolo-labeler/internal/autolabel"
	"yolo-labeler/internal/editor"
	"yolo-labeler/internal/imageio"
	"yolo-labeler/internal/inference"
	"yolo-labeler/internal/label"
	"yolo-labeler/internal/yoloio"
)

func main() {
	modelPath := flag.String("model", "", "Path to ONNX detection model")
	dir := flag.String("dir", "", "Image directory")
	conf := flag.Float64("conf", autolabel.DefaultConfidence, "Confidence threshold")
	overwrite := flag.Bool("overwrite", false, "Replace existing label files")
	flag.Parse()

	if *modelPath == "" || *dir == "" {
		fmt.Println("Usage: autolabel -model <model.onnx> -dir <images> [-conf 0.25] [-overwrite]")
		os.Exit(1)
	}

	rt, err := inference.Open(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load model: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()
	fmt.Printf("Model: %s (output layout %s)\n", filepath.Base(*modelPath), rt.Layout())

	images := imageio.ListImages(*dir)
	if len(images) == 0 {
		fmt.Fprintf(os.Stderr, "No images found in %s\n", *dir)
		os.Exit(1)
	}
	if !*overwrite {
		images = withoutLabeled(images)
	}
	fmt.Printf("Processing %d images\n", len(images))

	store := label.NewStore()
	ed := editor.New(store, label.NewClipboard())
	runner := autolabel.NewRunner(rt, ed, float32(*conf))

	stats, err := runner.Run(images, func(p autolabel.Progress) {
		status := fmt.Sprintf("%d boxes", p.Detections)
		if p.Err != nil {
			status = "FAILED: " + p.Err.Error()
		}
		fmt.Printf("  [%d/%d] %s: %s\n", p.Index+1, p.Total, filepath.Base(p.Image), status)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}

	written := 0
	for _, img := range images {
		boxes := store.Collection(img).Snapshot()
		if len(boxes) == 0 {
			continue
		}
		w, h, err := imageio.Dimensions(img)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Dimensions of %s: %v\n", img, err)
			continue
		}
		if err := yoloio.WriteFile(yoloio.LabelPath(img), boxes, float64(w), float64(h)); err != nil {
			fmt.Fprintf(os.Stderr, "Write labels for %s: %v\n", img, err)
			continue
		}
		written++
	}

	fmt.Printf("\nDone: %d boxes over %d images (%d failures), %d label files written\n",
		stats.Boxes, stats.Images, stats.Failures, written)
	fmt.Printf("Confidence: mean %.3f, stddev %.3f\n",
		stats.MeanConfidence, stats.StdDevConfidence)
}

// withoutLabeled filters out images that already have a label file.
func withoutLabeled(images []string) []string {
	var out []string
	for _, img := range images {
		if _, err := os.Stat(yoloio.LabelPath(img)); os.IsNotExist(err) {
			out = append(out, img)
		}
	}
	return out
}
