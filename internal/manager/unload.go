package manager

// UnloadEmbeddingModel evicts the embedding model so the next
// LoadEmbeddingModel constructs a fresh one. The evicted handle is closed;
// close failures are logged only. On an accelerator cached memory is
// reclaimed even when the slot was already empty.
func (m *Manager) UnloadEmbeddingModel() {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	m.mu.Lock()
	if m.embedding.state != StateLoaded {
		m.mu.Unlock()
		if m.accel.Available() {
			m.reclaim()
		}
		return
	}
	mdl, id := m.embedding.model, m.embedding.modelID
	m.embedding.lastErr = ""
	m.embedding.clear()
	m.unloadsTotal++
	m.mu.Unlock()
	slotLoaded.WithLabelValues(string(SlotEmbedding)).Set(0)

	if err := mdl.Close(); err != nil {
		m.diag.Log().Msgf("closing embedding model %s: %v", id, err)
	}
	m.publisher.Publish(Event{Name: "unload_done", Slot: SlotEmbedding, ModelID: id})
	if m.accel.Available() {
		m.reclaim()
	}
}

// Close releases both slots. Later loads fail with ErrClosed.
// The first close error is returned; the rest are logged.
func (m *Manager) Close() error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	var handles []Model
	for _, s := range []*slot{&m.language, &m.embedding} {
		if s.state == StateLoaded {
			handles = append(handles, s.model)
			slotLoaded.WithLabelValues(string(s.name)).Set(0)
		}
		s.clear()
	}
	m.mu.Unlock()

	var first error
	for _, h := range handles {
		if err := h.Close(); err != nil {
			if first == nil {
				first = err
				continue
			}
			m.diag.Log().Msgf("closing model: %v", err)
		}
	}
	m.publisher.Publish(Event{Name: "closed"})
	return first
}
