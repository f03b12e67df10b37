//go:build ORT || ALL

package manager

import (
	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"

	"argmap/internal/accel"
)

const embeddingBackendName = "hugot (onnxruntime)"

// newHugotSession returns an ONNX Runtime session, using the CUDA execution
// provider when the device is cuda.
func newHugotSession(p hugotParams) (*hugot.Session, error) {
	var opts []options.WithOption
	if p.onnxLibraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(p.onnxLibraryPath))
	}
	if p.device == accel.DeviceCUDA {
		opts = append(opts, options.WithCuda(map[string]string{"device_id": "0"}))
	}
	return hugot.NewORTSession(opts...)
}
