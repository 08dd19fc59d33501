// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// File represents a labeling project file (.lblproj).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Image directory (relative to project file)
	ImageDir string `json:"image_dir,omitempty"`

	// Image shown when the project was last saved (relative to ImageDir)
	ActiveImage string `json:"active_image,omitempty"`

	// Detection model path (relative to project file)
	ModelPath string `json:"model,omitempty"`

	// User settings
	Settings Settings `json:"settings,omitempty"`
}

// Settings holds user preferences for the project.
type Settings struct {
	// Confidence is the detection decode threshold; 0 means the default.
	Confidence float32 `json:"confidence,omitempty"`
	// AutosaveLabels writes label files on every image switch.
	AutosaveLabels bool `json:"autosave_labels"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: Settings{
			AutosaveLabels: true,
		},
	}
}

// Load loads a project from a .lblproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetImageDir sets the image directory (relative to project).
func (p *File) SetImageDir(projectPath, dir string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), dir)
	if err != nil {
		p.ImageDir = dir
	} else {
		p.ImageDir = rel
	}
	p.Modified = time.Now()
}

// GetImageDir returns the absolute path to the image directory.
func (p *File) GetImageDir(projectPath string) string {
	if p.ImageDir == "" {
		return ""
	}
	if filepath.IsAbs(p.ImageDir) {
		return p.ImageDir
	}
	return filepath.Join(filepath.Dir(projectPath), p.ImageDir)
}

// SetModelPath sets the detection model path (relative to project).
func (p *File) SetModelPath(projectPath, modelPath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), modelPath)
	if err != nil {
		p.ModelPath = modelPath
	} else {
		p.ModelPath = rel
	}
	p.Modified = time.Now()
}

// GetModelPath returns the absolute path to the detection model.
func (p *File) GetModelPath(projectPath string) string {
	if p.ModelPath == "" {
		return ""
	}
	if filepath.IsAbs(p.ModelPath) {
		return p.ModelPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ModelPath)
}
