package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.lblproj")

	p := New("highway cams")
	p.Description = "dashcam batch 3"
	p.ActiveImage = "frame_000042.png"
	p.Settings.Confidence = 0.4
	p.SetImageDir(path, filepath.Join(dir, "frames"))
	p.SetModelPath(path, filepath.Join(dir, "models", "yolov8n.onnx"))
	require.NoError(t, p.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "highway cams", got.Name)
	assert.Equal(t, "dashcam batch 3", got.Description)
	assert.Equal(t, "frame_000042.png", got.ActiveImage)
	assert.Equal(t, float32(0.4), got.Settings.Confidence)
	assert.True(t, got.Settings.AutosaveLabels)

	assert.Equal(t, filepath.Join(dir, "frames"), got.GetImageDir(path))
	assert.Equal(t, filepath.Join(dir, "models", "yolov8n.onnx"), got.GetModelPath(path))
}

func TestRelativePaths(t *testing.T) {
	p := New("test")
	path := filepath.FromSlash("/projects/run1/run.lblproj")

	p.SetImageDir(path, filepath.FromSlash("/projects/run1/images"))
	assert.Equal(t, "images", p.ImageDir)

	p.SetModelPath(path, filepath.FromSlash("/projects/models/best.onnx"))
	assert.Equal(t, filepath.FromSlash("../models/best.onnx"), p.ModelPath)
	assert.Equal(t, filepath.FromSlash("/projects/models/best.onnx"), p.GetModelPath(path))
}

func TestEmptyPaths(t *testing.T) {
	p := New("test")
	assert.Empty(t, p.GetImageDir("/tmp/a.lblproj"))
	assert.Empty(t, p.GetModelPath("/tmp/a.lblproj"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.lblproj"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lblproj")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
