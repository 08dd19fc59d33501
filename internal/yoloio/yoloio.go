// Package yoloio reads and writes YOLO text label files: one line per box,
// "<class-id> <xc> <yc> <w> <h>" with geometry normalized by the image
// dimensions.
package yoloio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"yolo-labeler/internal/label"
)

// classID is the class written for every box. Class mapping is handled by
// the training pipeline, not this tool.
const classID = 0

// LabelPath returns the label file path for an image: same directory, same
// base name, ".txt" extension.
func LabelPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return imagePath[:len(imagePath)-len(ext)] + ".txt"
}

// Write emits one normalized line per box, all four geometry values to six
// decimal places.
func Write(w io.Writer, boxes []label.Box, imgWidth, imgHeight float64) error {
	if imgWidth <= 0 || imgHeight <= 0 {
		return fmt.Errorf("invalid image dimensions %gx%g", imgWidth, imgHeight)
	}
	for _, b := range boxes {
		xc := (b.X + b.Width/2) / imgWidth
		yc := (b.Y + b.Height/2) / imgHeight
		nw := b.Width / imgWidth
		nh := b.Height / imgHeight
		if _, err := fmt.Fprintf(w, "%d %.6f %.6f %.6f %.6f\n", classID, xc, yc, nw, nh); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the label file for an image, replacing any existing one.
// An empty box list still produces an (empty) file so stale labels are not
// left behind.
func WriteFile(path string, boxes []label.Box, imgWidth, imgHeight float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, boxes, imgWidth, imgHeight); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses label lines and denormalizes them against the image
// dimensions. Lines without exactly five numeric tokens are skipped; the
// skip count is returned so callers can report aggregate totals.
func Read(r io.Reader, imgWidth, imgHeight float64) (boxes []label.Box, skipped int) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			skipped++
			continue
		}

		vals := make([]float64, 4)
		bad := false
		if _, err := strconv.Atoi(fields[0]); err != nil {
			bad = true
		}
		for i := 0; i < 4 && !bad; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				bad = true
				break
			}
			vals[i] = v
		}
		if bad {
			skipped++
			continue
		}

		w := vals[2] * imgWidth
		h := vals[3] * imgHeight
		boxes = append(boxes, label.Box{
			X:      vals[0]*imgWidth - w/2,
			Y:      vals[1]*imgHeight - h/2,
			Width:  w,
			Height: h,
		})
	}
	return boxes, skipped
}

// ReadFile loads the label file for an image. A missing file is not an
// error; it simply yields no boxes.
func ReadFile(path string, imgWidth, imgHeight float64) (boxes []label.Box, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer f.Close()
	boxes, skipped = Read(f, imgWidth, imgHeight)
	return boxes, skipped, nil
}
