package manager

import (
	"context"
	"errors"

	"argmap/internal/accel"
	"argmap/internal/config"
)

// loadRequest describes one construction attempt.
type loadRequest struct {
	slot     *slot
	label    string
	modelID  string
	revision config.Optional[string]
	device   accel.Device
	build    func(ctx context.Context) (Model, error)
}

// construct runs req.build and commits the result to the slot.
// Caller holds loadMu. On failure the slot is left empty.
func (m *Manager) construct(ctx context.Context, req loadRequest) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	req.slot.state = StateLoading
	req.slot.lastErr = ""
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "load_start", Slot: req.slot.name, ModelID: req.modelID, Fields: map[string]any{"device": string(req.device)}})

	began := m.now()
	mdl, err := req.build(ctx)
	if err == nil && mdl == nil {
		err = errors.New(req.label + " backend returned no model")
	}
	dur := m.now().Sub(began)
	if err != nil {
		m.mu.Lock()
		req.slot.lastErr = err.Error()
		req.slot.clear()
		m.mu.Unlock()
		observeLoad(req.slot.name, "error", dur)
		m.publisher.Publish(Event{Name: "load_error", Slot: req.slot.name, ModelID: req.modelID, Fields: map[string]any{"error": err.Error()}})
		return nil, err
	}

	m.mu.Lock()
	req.slot.state = StateLoaded
	req.slot.model = mdl
	req.slot.modelID = req.modelID
	req.slot.revision = req.revision
	req.slot.device = req.device
	req.slot.loadedAt = m.now()
	req.slot.loadDur = dur
	m.loadsTotal++
	m.mu.Unlock()
	observeLoad(req.slot.name, "ok", dur)
	slotLoaded.WithLabelValues(string(req.slot.name)).Set(1)
	m.publisher.Publish(Event{Name: "load_done", Slot: req.slot.name, ModelID: req.modelID, Fields: map[string]any{"duration_ms": dur.Milliseconds()}})
	return mdl, nil
}

// fail records err as the slot's last error and returns it.
// Caller holds loadMu.
func (m *Manager) fail(s *slot, err error) error {
	m.mu.Lock()
	s.lastErr = err.Error()
	m.mu.Unlock()
	return err
}

// checkOpen returns ErrClosed once Close has run.
func (m *Manager) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}
