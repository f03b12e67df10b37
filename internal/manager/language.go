package manager

import (
	"context"

	"argmap/internal/accel"
	"argmap/internal/config"
)

// LoadLanguageModel returns the language model, constructing it on first use.
//
// Once loaded the cached handle is returned without re-reading the
// environment. On a miss MODEL_ID is required; MODEL_REVISION is forwarded
// only when set; on an accelerator cached memory is reclaimed, the memory
// gate is enforced when MODEL_MINIMUM_MEMORY_GB is set, and the runtime is
// asked to map layers across devices. Backend errors are returned unchanged.
func (m *Manager) LoadLanguageModel(ctx context.Context) (Model, error) {
	if mdl := m.cached(&m.language); mdl != nil {
		return mdl, nil
	}
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	// another caller may have finished while we waited
	if mdl := m.cached(&m.language); mdl != nil {
		return mdl, nil
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	id, err := m.requireEnv(EnvModelID, missingLanguageModelIDMsg)
	if err != nil {
		return nil, m.fail(&m.language, err)
	}
	revision := config.LookupString(m.lookup, EnvModelRevision)

	device := m.GetDevice()
	opts := LanguageOptions{ModelID: id, Device: device, Revision: revision}
	if device == accel.DeviceCUDA {
		m.reclaim()
		if err := m.gateFromEnv(EnvModelMinimumMemoryGB); err != nil {
			return nil, m.fail(&m.language, err)
		}
		opts.DeviceMap = config.Some(DeviceMapAuto)
	}

	m.progressf("Initializing language model: %s on %s...", id, device)
	if rev, ok := revision.Get(); ok {
		m.progress.Log().Msgf("Model Revision: %s", rev)
	}
	mdl, err := m.construct(ctx, loadRequest{
		slot:     &m.language,
		label:    "language",
		modelID:  id,
		revision: revision,
		device:   device,
		build: func(ctx context.Context) (Model, error) {
			return m.backend.LoadLanguageModel(ctx, opts)
		},
	})
	if err != nil {
		return nil, err
	}
	m.progressf("Language model initialized.")
	m.PrintCUDAMemory()
	return mdl, nil
}
