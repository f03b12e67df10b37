//go:build !llama

package manager

// This file provides a no-CGO stub for the llama adapter. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds CGO-free.

var llamaBuilt = false

const languageBackendName = "llama.cpp (not built)"

type llamaParams struct {
	ctxSize int
	threads int
	gpu     bool
}

func newLlamaModel(string, llamaParams) (Model, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
