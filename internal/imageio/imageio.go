// Package imageio provides the image decode service: dimensions, pixels,
// and directory scanning for annotatable images.
package imageio

import (
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Extensions lists the image file extensions the tool annotates.
var Extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}

// Dimensions returns an image's pixel width and height without decoding the
// full bitmap.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// Pixels decodes the full bitmap, honoring EXIF orientation.
func Pixels(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// SavePNG writes an image as PNG.
func SavePNG(img image.Image, path string) error {
	return imaging.Save(img, path)
}

// ListImages returns the sorted image file paths directly inside dir.
// Unreadable entries and non-image files are skipped silently.
func ListImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !Extensions[ext] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths
}
