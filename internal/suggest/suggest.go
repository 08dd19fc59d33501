// Package suggest proposes label names by running OCR over a box region,
// for images where the objects of interest carry readable text (signs,
// packaging, part markings).
package suggest

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	"github.com/otiai10/gosseract/v2"
	"yolo-labeler/pkg/geometry"
)

// minOCRHeight is the minimum region height fed to Tesseract; smaller
// crops are upscaled first.
const minOCRHeight = 96

// Engine wraps a Tesseract client for name suggestion.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a suggestion engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Suggest runs OCR over the given region of the image and returns a
// cleaned-up single-line name. An empty string means nothing readable was
// found; that is not an error.
func (e *Engine) Suggest(img image.Image, region geometry.Rect) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	bounds := img.Bounds()
	crop := image.Rect(int(region.X), int(region.Y),
		int(region.X+region.Width), int(region.Y+region.Height)).Intersect(bounds)
	if crop.Dx() <= 0 || crop.Dy() <= 0 {
		return "", fmt.Errorf("region outside image")
	}

	prepared := prepare(img, crop)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.Join(strings.Fields(text), " "), nil
}

// prepare crops the region, converts to grayscale and upscales small crops
// so Tesseract has enough pixels to work with.
func prepare(img image.Image, crop image.Rectangle) image.Image {
	cropped := transform.Crop(img, crop)
	gray := effect.Grayscale(cropped)

	if h := gray.Bounds().Dy(); h > 0 && h < minOCRHeight {
		scale := float64(minOCRHeight) / float64(h)
		w := int(float64(gray.Bounds().Dx()) * scale)
		return transform.Resize(gray, w, minOCRHeight, transform.Linear)
	}
	return gray
}
