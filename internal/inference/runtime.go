// Package inference wraps the ONNX Runtime session used for auto-labeling.
package inference

import (
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"yolo-labeler/internal/detect"
)

// InputSize is the model input resolution on both axes.
const InputSize = 640

var initOnce sync.Once

// initEnvironment configures and initializes the ONNX Runtime environment.
// Safe to call repeatedly; only the first call does work.
func initEnvironment() error {
	var err error
	initOnce.Do(func() {
		if lib := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); lib != "" {
			ort.SetSharedLibraryPath(lib)
		} else {
			ort.SetSharedLibraryPath(defaultSharedLibPath())
		}
		err = ort.InitializeEnvironment()
	})
	return err
}

// defaultSharedLibPath returns the conventional ONNX Runtime library name
// for the current platform, resolved through the loader's search path.
func defaultSharedLibPath() string {
	switch runtime.GOOS {
	case "darwin":
		return "libonnxruntime.dylib"
	case "windows":
		return "onnxruntime.dll"
	default:
		return "libonnxruntime.so"
	}
}

// Runtime is a loaded detection model. The output layout is detected once,
// at load time, from the model's declared output shape; models with an
// unrecognized shape are rejected before any inference runs.
type Runtime struct {
	session     *ort.AdvancedSession
	input       *ort.Tensor[float32]
	output      *ort.Tensor[float32]
	outputShape []int64
	layout      detect.Layout
}

func (r *Runtime) close() {
	if r.input != nil {
		r.input.Destroy()
	}
	if r.output != nil {
		r.output.Destroy()
	}
	if r.session != nil {
		r.session.Destroy()
	}
}

// Open loads the ONNX model at the given path and validates its output
// format. Any failure is fatal for the model: no partial session is kept.
func Open(modelPath string) (*Runtime, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.Wrap(err, "model file")
	}
	if err := initEnvironment(); err != nil {
		return nil, errors.Wrap(err, "initializing onnxruntime environment")
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading model metadata")
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, errors.Errorf("model must have one input and one output, got %d/%d",
			len(inputs), len(outputs))
	}

	outShape := []int64(outputs[0].Dimensions)
	layout, err := detect.DetectLayout(outShape)
	if err != nil {
		return nil, err
	}

	r := &Runtime{outputShape: outShape, layout: layout}

	r.input, err = ort.NewEmptyTensor[float32](ort.NewShape(1, 3, InputSize, InputSize))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}
	r.output, err = ort.NewEmptyTensor[float32](ort.NewShape(outShape...))
	if err != nil {
		r.close()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	r.session, err = ort.NewAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.ArbitraryTensor{r.input},
		[]ort.ArbitraryTensor{r.output},
		nil,
	)
	if err != nil {
		r.close()
		return nil, errors.Wrap(err, "creating session")
	}
	return r, nil
}

// OutputShape returns the model's declared output tensor shape.
func (r *Runtime) OutputShape() []int64 {
	out := make([]int64, len(r.outputShape))
	copy(out, r.outputShape)
	return out
}

// Layout returns the detected output layout.
func (r *Runtime) Layout() detect.Layout {
	return r.layout
}

// Run executes the model on an already-prepared input tensor and returns a
// copy of the raw output.
func (r *Runtime) Run() ([]float32, error) {
	if err := r.session.Run(); err != nil {
		return nil, errors.Wrap(err, "running inference")
	}
	data := r.output.GetData()
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

// InputData exposes the input tensor's backing slice for PrepareInput.
func (r *Runtime) InputData() []float32 {
	return r.input.GetData()
}

// Close releases the session and its tensors.
func (r *Runtime) Close() {
	r.close()
	r.session = nil
	r.input = nil
	r.output = nil
}
