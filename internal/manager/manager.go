package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"argmap/internal/accel"
	"argmap/internal/config"
)

type Manager struct {
	// mu guards the slots and counters; it is never held across construction.
	mu        sync.RWMutex
	language  slot
	embedding slot
	closed    bool

	// loadMu serialises construction and eviction.
	loadMu sync.Mutex

	backend   ModelBackend
	accel     accel.Accelerator
	lookup    config.LookupFunc
	progress  zerolog.Logger
	diag      zerolog.Logger
	now       func() time.Time
	publisher EventPublisher

	startTime    time.Time
	loadsTotal   uint64
	unloadsTotal uint64
}

// New returns a Manager over backend and acc with default logging to the
// process streams.
func New(backend ModelBackend, acc accel.Accelerator) *Manager {
	// Delegate to NewWithConfig to centralize defaults
	return NewWithConfig(ManagerConfig{Backend: backend, Accelerator: acc})
}

// Backend returns the runtime backend in use.
func (m *Manager) Backend() ModelBackend { return m.backend }

// Accelerator returns the accelerator in use.
func (m *Manager) Accelerator() accel.Accelerator { return m.accel }

// Ready reports whether any slot holds a loaded model.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.language.state == StateLoaded || m.embedding.state == StateLoaded
}

// cached returns the handle held by s, or nil.
func (m *Manager) cached(s *slot) Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s.state == StateLoaded {
		return s.model
	}
	return nil
}

// progressf writes a timestamped progress line.
func (m *Manager) progressf(format string, args ...any) {
	m.progress.Log().Time(zerolog.TimestampFieldName, m.now()).Msgf(format, args...)
}
