// Package colorutil provides shared color utilities for the labeler UI.
package colorutil

import (
	"hash/fnv"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Common overlay colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Accent = color.RGBA{R: 30, G: 136, B: 229, A: 255}
)

// goldenAngle spaces consecutive hues far apart so similar names still get
// distinguishable colors.
const goldenAngle = 137.5

// ForName returns a stable, saturated color derived from a box name. Boxes
// sharing a name share a color.
func ForName(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := math.Mod(float64(h.Sum32())*goldenAngle, 360)

	c := colorful.Hsv(hue, 0.85, 0.95)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
