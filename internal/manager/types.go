package manager

import (
	"time"

	"argmap/internal/accel"
	"argmap/internal/config"
)

// State represents the lifecycle state of a slot.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
)

// SlotName identifies one of the two model slots.
type SlotName string

const (
	SlotLanguage  SlotName = "language"
	SlotEmbedding SlotName = "embedding"
)

// DeviceMapAuto asks the runtime to place layers across all visible devices.
const DeviceMapAuto = "auto"

// Model is a loaded model handle owned by a runtime adapter.
type Model interface {
	// Close releases resources associated with the model.
	Close() error
}

// LanguageOptions is passed to ModelBackend.LoadLanguageModel.
// Optional fields that are unset must not be forwarded to the runtime.
type LanguageOptions struct {
	ModelID   string
	Device    accel.Device
	DeviceMap config.Optional[string]
	Revision  config.Optional[string]
}

// EmbeddingOptions is passed to ModelBackend.LoadEmbeddingModel.
type EmbeddingOptions struct {
	ModelID string
	Device  accel.Device
}

// slot is a single-entry cache cell plus the metadata reported by Status.
type slot struct {
	name     SlotName
	state    State
	model    Model
	modelID  string
	revision config.Optional[string]
	device   accel.Device
	loadedAt time.Time
	loadDur  time.Duration
	lastErr  string
}

// clear returns the slot to empty, keeping the last error for reporting.
func (s *slot) clear() {
	*s = slot{name: s.name, state: StateEmpty, lastErr: s.lastErr}
}

// Snapshot is a read-only projection of one slot.
type Snapshot struct {
	Slot     SlotName
	State    State
	ModelID  string
	Revision config.Optional[string]
	Device   accel.Device
	LoadedAt time.Time
	LoadDur  time.Duration
	Err      string
}

func (s *slot) snapshot() Snapshot {
	return Snapshot{
		Slot:     s.name,
		State:    s.state,
		ModelID:  s.modelID,
		Revision: s.revision,
		Device:   s.device,
		LoadedAt: s.loadedAt,
		LoadDur:  s.loadDur,
		Err:      s.lastErr,
	}
}
