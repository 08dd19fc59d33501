package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	require.NoError(t, SavePNG(img, path))
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 320, 200)

	w, h, err := Dimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestDimensionsErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Dimensions(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, _, err = Dimensions(garbage)
	assert.Error(t, err)
}

func TestPixels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 16, 8)

	img, err := Pixels(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "a.PNG"), 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "labels.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.onnx"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.png"), 0755))

	got := ListImages(dir)
	want := []string{
		filepath.Join(dir, "a.PNG"),
		filepath.Join(dir, "b.png"),
	}
	assert.Equal(t, want, got)
}

func TestListImagesMissingDir(t *testing.T) {
	assert.Nil(t, ListImages(filepath.Join(t.TempDir(), "nope")))
}
