//go:build llama

package manager

import (
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

const languageBackendName = "llama.cpp"

// offloadAll asks llama.cpp to place every layer on the GPU.
const offloadAll = 99999

type llamaParams struct {
	ctxSize int
	threads int
	gpu     bool
}

// llamaModel owns a model loaded in-process.
type llamaModel struct {
	path    string
	threads int
	model   *llama.LLama
}

func newLlamaModel(path string, p llamaParams) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(p.ctxSize),
	}
	if p.gpu {
		mo = append(mo, llama.SetGPULayers(offloadAll))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaModel{path: path, threads: p.threads, model: m}, nil
}

// LLama exposes the runtime handle for inference.
func (m *llamaModel) LLama() *llama.LLama { return m.model }

// Path returns the GGUF file the model was loaded from.
func (m *llamaModel) Path() string { return m.path }

func (m *llamaModel) Close() error {
	if m.model != nil {
		m.model.Free()
		m.model = nil
	}
	return nil
}
