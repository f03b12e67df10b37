package httpapi

import (
	"context"

	"argmap/internal/accel"
	"argmap/internal/manager"
)

// mockBackend constructs nothing; tests using it fail before construction.
type mockBackend struct{}

func (mockBackend) Name() string { return "mock" }

func (mockBackend) LoadLanguageModel(context.Context, manager.LanguageOptions) (manager.Model, error) {
	return nopModel{}, nil
}

func (mockBackend) LoadEmbeddingModel(context.Context, manager.EmbeddingOptions) (manager.Model, error) {
	return nopModel{}, nil
}

func lowMemoryGPU() accel.Accelerator {
	return accel.NewStatic(accel.StaticDevice{Name: "small", Free: accel.GiB, Total: 2 * accel.GiB})
}
