// Package app provides application lifecycle management, configuration, and events.
package app

import (
	goimage "image"
	"log"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"yolo-labeler/internal/autolabel"
	"yolo-labeler/internal/editor"
	"yolo-labeler/internal/imageio"
	"yolo-labeler/internal/inference"
	"yolo-labeler/internal/label"
	"yolo-labeler/internal/project"
	"yolo-labeler/internal/yoloio"
)

// State holds the application state: the open project, the image list, the
// label store, and the editing and detection machinery built on top of them.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Project     *project.File
	Modified    bool

	// Images
	ImageDir    string
	Images      []string // absolute paths, sorted
	ActiveImage string
	activePix   goimage.Image
	dims        map[string]imageSize

	// Labels and editing
	Store     *label.Store
	Clipboard *label.Clipboard
	Editor    *editor.Editor

	// Detection
	ModelPath string
	runtime   *inference.Runtime
	runner    *autolabel.Runner

	// Event listeners
	listeners map[EventType][]EventListener
}

type imageSize struct {
	W, H int
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventImageListChanged
	EventImageLoaded
	EventLabelsChanged
	EventModified
	EventModelLoaded
	EventAutoLabelProgress
	EventAutoLabelDone
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// ErrNoModel is returned when auto-labeling is requested before a detection
// model has been loaded.
var ErrNoModel = errors.New("no detection model loaded")

// NewState creates a new application state.
func NewState() *State {
	s := &State{
		Store:     label.NewStore(),
		Clipboard: label.NewClipboard(),
		dims:      make(map[string]imageSize),
		listeners: make(map[EventType][]EventListener),
	}
	s.Editor = editor.New(s.Store, s.Clipboard)
	s.Editor.OnLabelsChanged(func() {
		s.SetModified(true)
		s.Emit(EventLabelsChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// OpenImageDir scans a directory for images, loads any existing label files
// alongside them, and makes the first image active.
func (s *State) OpenImageDir(dir string) error {
	images := imageio.ListImages(dir)

	s.mu.Lock()
	s.ImageDir = dir
	s.Images = images
	s.mu.Unlock()

	skippedTotal := 0
	for _, img := range images {
		n, err := s.loadLabels(img)
		if err != nil {
			log.Printf("labels for %s: %v", filepath.Base(img), err)
			continue
		}
		skippedTotal += n
	}
	if skippedTotal > 0 {
		log.Printf("skipped %d malformed label lines under %s", skippedTotal, dir)
	}

	s.Emit(EventImageListChanged, images)
	if len(images) > 0 {
		return s.SetActiveImage(images[0])
	}
	return nil
}

// loadLabels reads the YOLO label file next to an image into the store,
// replacing whatever the collection held. Returns the count of malformed
// lines skipped.
func (s *State) loadLabels(imagePath string) (int, error) {
	w, h, err := s.dimensions(imagePath)
	if err != nil {
		return 0, err
	}
	boxes, skipped, err := yoloio.ReadFile(yoloio.LabelPath(imagePath), float64(w), float64(h))
	if err != nil {
		return 0, err
	}
	for i := range boxes {
		boxes[i].Name = s.Store.NextName()
	}
	s.Store.Collection(imagePath).Restore(boxes)
	return skipped, nil
}

// dimensions returns an image's pixel size, cached after the first read.
func (s *State) dimensions(imagePath string) (int, int, error) {
	s.mu.RLock()
	d, ok := s.dims[imagePath]
	s.mu.RUnlock()
	if ok {
		return d.W, d.H, nil
	}

	w, h, err := imageio.Dimensions(imagePath)
	if err != nil {
		return 0, 0, err
	}
	s.mu.Lock()
	s.dims[imagePath] = imageSize{W: w, H: h}
	s.mu.Unlock()
	return w, h, nil
}

// SetActiveImage switches editing to the given image. The outgoing image's
// labels are written to disk first when autosave is on.
func (s *State) SetActiveImage(path string) error {
	s.mu.RLock()
	prev := s.ActiveImage
	autosave := s.Project == nil || s.Project.Settings.AutosaveLabels
	s.mu.RUnlock()

	if prev != "" && prev != path && autosave {
		if err := s.SaveLabels(prev); err != nil {
			log.Printf("autosave %s: %v", filepath.Base(prev), err)
		}
	}

	pix, err := imageio.Pixels(path)
	if err != nil {
		return err
	}
	bounds := pix.Bounds()

	s.mu.Lock()
	s.ActiveImage = path
	s.activePix = pix
	s.dims[path] = imageSize{W: bounds.Dx(), H: bounds.Dy()}
	s.mu.Unlock()

	s.Editor.SetActiveImage(path)
	s.Emit(EventImageLoaded, path)
	return nil
}

// ActivePixels returns the decoded pixels of the active image, or nil.
func (s *State) ActivePixels() goimage.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePix
}

// ImageList returns the current image paths.
func (s *State) ImageList() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.Images))
	copy(out, s.Images)
	return out
}

// SaveLabels writes one image's label file.
func (s *State) SaveLabels(imagePath string) error {
	w, h, err := s.dimensions(imagePath)
	if err != nil {
		return err
	}
	boxes := s.Store.Collection(imagePath).Snapshot()
	return yoloio.WriteFile(yoloio.LabelPath(imagePath), boxes, float64(w), float64(h))
}

// SaveAllLabels writes label files for every image that has a collection.
// The first error aborts the walk.
func (s *State) SaveAllLabels() error {
	for _, key := range s.Store.Keys() {
		if err := s.SaveLabels(key); err != nil {
			return err
		}
	}
	s.SetModified(false)
	return nil
}

// LoadProject loads a .lblproj file: image directory, labels, the active
// image, and the detection model when one is configured.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Project = proj
	s.Modified = false
	s.mu.Unlock()

	if dir := proj.GetImageDir(path); dir != "" {
		if err := s.OpenImageDir(dir); err != nil {
			return err
		}
		if proj.ActiveImage != "" {
			active := filepath.Join(dir, proj.ActiveImage)
			if err := s.SetActiveImage(active); err != nil {
				log.Printf("restore active image: %v", err)
			}
		}
	}

	if model := proj.GetModelPath(path); model != "" {
		if err := s.LoadModel(model); err != nil {
			// A missing model must not block opening the labels.
			log.Printf("load model: %v", err)
		}
	}

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject writes the project file and all label files.
func (s *State) SaveProject(path string) error {
	s.mu.Lock()
	if s.Project == nil {
		name := filepath.Base(path)
		s.Project = project.New(name[:len(name)-len(filepath.Ext(name))])
	}
	proj := s.Project
	if s.ImageDir != "" {
		proj.SetImageDir(path, s.ImageDir)
	}
	if s.ModelPath != "" {
		proj.SetModelPath(path, s.ModelPath)
	}
	if s.ActiveImage != "" && s.ImageDir != "" {
		if rel, err := filepath.Rel(s.ImageDir, s.ActiveImage); err == nil {
			proj.ActiveImage = rel
		}
	}
	s.mu.Unlock()

	if err := proj.Save(path); err != nil {
		return err
	}
	if err := s.SaveAllLabels(); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// LoadModel opens a detection model and prepares the auto-label runner.
// Fails outright on an unsupported output shape.
func (s *State) LoadModel(path string) error {
	rt, err := inference.Open(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.runtime != nil {
		s.runtime.Close()
	}
	s.runtime = rt
	s.ModelPath = path
	var conf float32
	if s.Project != nil {
		conf = s.Project.Settings.Confidence
	}
	s.runner = autolabel.NewRunner(rt, s.Editor, conf)
	s.mu.Unlock()

	log.Printf("model %s loaded, output layout %s", filepath.Base(path), rt.Layout())
	s.Emit(EventModelLoaded, path)
	return nil
}

// ModelLoaded reports whether a detection model is ready.
func (s *State) ModelLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runner != nil
}

// AutoLabelRunning reports whether a batch run is in flight.
func (s *State) AutoLabelRunning() bool {
	s.mu.RLock()
	r := s.runner
	s.mu.RUnlock()
	return r != nil && r.Running()
}

// AutoLabel starts a background run over the given images (all images when
// nil). Progress and completion are delivered through EventAutoLabelProgress
// and EventAutoLabelDone on the worker goroutine.
func (s *State) AutoLabel(images []string) error {
	s.mu.RLock()
	r := s.runner
	s.mu.RUnlock()
	if r == nil {
		return ErrNoModel
	}
	if images == nil {
		images = s.ImageList()
	}

	go func() {
		stats, err := r.Run(images, func(p autolabel.Progress) {
			s.Emit(EventAutoLabelProgress, p)
		})
		if err != nil {
			log.Printf("autolabel: %v", err)
		} else {
			log.Printf("autolabel: %d boxes over %d images (mean conf %.2f)",
				stats.Boxes, stats.Images, stats.MeanConfidence)
		}
		s.Emit(EventAutoLabelDone, stats)
	}()
	return nil
}

// CancelAutoLabel requests a cooperative stop of the running batch.
func (s *State) CancelAutoLabel() {
	s.mu.RLock()
	r := s.runner
	s.mu.RUnlock()
	if r != nil {
		r.Cancel()
	}
}

// Close releases the inference runtime.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runtime != nil {
		s.runtime.Close()
		s.runtime = nil
		s.runner = nil
	}
}
