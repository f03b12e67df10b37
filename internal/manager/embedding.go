package manager

import (
	"context"

	"argmap/internal/accel"
	"argmap/internal/config"
)

// LoadEmbeddingModel returns the embedding model, constructing it on first
// use. It mirrors LoadLanguageModel for EMBED_MODEL_ID and
// EMBED_MODEL_MINIMUM_MEMORY_GB; there is no revision or device map.
func (m *Manager) LoadEmbeddingModel(ctx context.Context) (Model, error) {
	if mdl := m.cached(&m.embedding); mdl != nil {
		return mdl, nil
	}
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	if mdl := m.cached(&m.embedding); mdl != nil {
		return mdl, nil
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	id, err := m.requireEnv(EnvEmbedModelID, missingEmbedModelIDMsg)
	if err != nil {
		return nil, m.fail(&m.embedding, err)
	}

	device := m.GetDevice()
	if device == accel.DeviceCUDA {
		m.reclaim()
		if err := m.gateFromEnv(EnvEmbedMinimumMemoryGB); err != nil {
			return nil, m.fail(&m.embedding, err)
		}
	}

	m.progressf("Initializing embedding model: %s on %s...", id, device)
	opts := EmbeddingOptions{ModelID: id, Device: device}
	mdl, err := m.construct(ctx, loadRequest{
		slot:     &m.embedding,
		label:    "embedding",
		modelID:  id,
		revision: config.None[string](),
		device:   device,
		build: func(ctx context.Context) (Model, error) {
			return m.backend.LoadEmbeddingModel(ctx, opts)
		},
	})
	if err != nil {
		return nil, err
	}
	m.progressf("Embedding model initialized.")
	m.PrintCUDAMemory()
	return mdl, nil
}
