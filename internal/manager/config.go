package manager

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"argmap/internal/accel"
	"argmap/internal/config"
	"argmap/internal/logging"
)

// ManagerConfig encapsulates all tunables for Manager construction.
// Every field is optional.
type ManagerConfig struct {
	// Backend constructs models. Default: NewRuntimeBackend(RuntimeConfig{}).
	Backend ModelBackend
	// Accelerator answers device and memory queries. Default: accel.NewNVML.
	Accelerator accel.Accelerator
	// Lookup reads environment variables at load time. Default: os.LookupEnv.
	Lookup config.LookupFunc
	// Progress receives timestamped progress lines. Default: stdout.
	Progress *zerolog.Logger
	// Diagnostics receives memory reports and warnings. Default: stderr.
	Diagnostics *zerolog.Logger
	// Clock stamps progress lines and load metadata. Default: time.Now.
	Clock func() time.Time
	// Publisher receives lifecycle events. Default: drops them.
	Publisher EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		language:  slot{name: SlotLanguage, state: StateEmpty},
		embedding: slot{name: SlotEmbedding, state: StateEmpty},
	}
	// Apply defaults if unset
	m.lookup = cfg.Lookup
	if m.lookup == nil {
		m.lookup = os.LookupEnv
	}
	m.accel = cfg.Accelerator
	if m.accel == nil {
		m.accel = accel.NewNVML(m.lookup)
	}
	m.backend = cfg.Backend
	if m.backend == nil {
		m.backend = NewRuntimeBackend(RuntimeConfig{Lookup: m.lookup})
	}
	if cfg.Progress != nil {
		m.progress = *cfg.Progress
	} else {
		m.progress = zerolog.New(logging.ProgressWriter(os.Stdout))
	}
	if cfg.Diagnostics != nil {
		m.diag = *cfg.Diagnostics
	} else {
		m.diag = zerolog.New(logging.DiagnosticsWriter(os.Stderr))
	}
	m.now = cfg.Clock
	if m.now == nil {
		m.now = time.Now
	}
	m.publisher = cfg.Publisher
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	m.startTime = m.now()
	return m
}
