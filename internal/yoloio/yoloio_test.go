package yoloio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"yolo-labeler/internal/label"
)

func TestLabelPath(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{name: "png", image: "frames/shot_000001.png", want: "frames/shot_000001.txt"},
		{name: "jpeg", image: "/data/img.jpeg", want: "/data/img.txt"},
		{name: "no extension", image: "/data/img", want: "/data/img.txt"},
		{name: "dotted directory", image: "run.v2/img.png", want: "run.v2/img.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), LabelPath(filepath.FromSlash(tt.image)))
		})
	}
}

func TestWriteFormat(t *testing.T) {
	boxes := []label.Box{
		{Name: "Label 1", X: 160, Y: 120, Width: 320, Height: 240},
		{Name: "AI Label", X: 0, Y: 0, Width: 64, Height: 48, Machine: true},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, boxes, 640, 480))

	want := "0 0.500000 0.500000 0.500000 0.500000\n" +
		"0 0.050000 0.050000 0.100000 0.100000\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteInvalidDimensions(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, 0, 480))
	assert.Error(t, Write(&buf, nil, 640, -1))
}

func TestReadRoundTrip(t *testing.T) {
	in := []label.Box{
		{X: 100, Y: 50, Width: 200, Height: 150},
		{X: 0, Y: 0, Width: 32, Height: 32},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, 640, 480))

	out, skipped := Read(&buf, 640, 480)
	require.Len(t, out, 2)
	assert.Equal(t, 0, skipped)
	for i := range in {
		assert.InDelta(t, in[i].X, out[i].X, 0.01)
		assert.InDelta(t, in[i].Y, out[i].Y, 0.01)
		assert.InDelta(t, in[i].Width, out[i].Width, 0.01)
		assert.InDelta(t, in[i].Height, out[i].Height, 0.01)
	}
}

func TestReadSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		"0 0.5 0.5 0.25 0.25",
		"",
		"0 0.5 0.5 0.25", // four tokens
		"0 0.5 0.5 0.25 0.25 extra",
		"x 0.5 0.5 0.25 0.25",  // non-numeric class
		"0 0.5 oops 0.25 0.25", // non-numeric coordinate
		"  0 0.1 0.1 0.2 0.2  ",
	}, "\n")

	boxes, skipped := Read(strings.NewReader(input), 100, 100)
	assert.Len(t, boxes, 2)
	assert.Equal(t, 4, skipped)
}

func TestReadDenormalizes(t *testing.T) {
	boxes, skipped := Read(strings.NewReader("0 0.5 0.5 0.5 0.5\n"), 200, 100)
	require.Len(t, boxes, 1)
	assert.Equal(t, 0, skipped)
	assert.InDelta(t, 50, boxes[0].X, 1e-9)
	assert.InDelta(t, 25, boxes[0].Y, 1e-9)
	assert.InDelta(t, 100, boxes[0].Width, 1e-9)
	assert.InDelta(t, 50, boxes[0].Height, 1e-9)
}

func TestWriteFileEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.txt")
	require.NoError(t, WriteFile(path, nil, 640, 480))

	boxes, skipped, err := ReadFile(path, 640, 480)
	require.NoError(t, err)
	assert.Empty(t, boxes)
	assert.Equal(t, 0, skipped)
}

func TestReadFileMissing(t *testing.T) {
	boxes, skipped, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), 640, 480)
	require.NoError(t, err)
	assert.Nil(t, boxes)
	assert.Equal(t, 0, skipped)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.txt")
	in := []label.Box{{X: 10, Y: 20, Width: 30, Height: 40}}
	require.NoError(t, WriteFile(path, in, 640, 480))

	out, skipped, err := ReadFile(path, 640, 480)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, out, 1)
	assert.InDelta(t, 10, out[0].X, 0.01)
	assert.InDelta(t, 40, out[0].Height, 0.01)
}
