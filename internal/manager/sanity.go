package manager

// SanityReport describes which runtimes this binary can actually use.
type SanityReport struct {
	LlamaBuilt  bool   `json:"llama_built"`
	Backends    string `json:"backends"`
	Device      string `json:"device"`
	DeviceCount int    `json:"device_count"`
	Error       string `json:"error,omitempty"`
}

// SanityCheck reports runtime availability. It does not mutate state and is
// safe to call at any time.
func (m *Manager) SanityCheck() SanityReport {
	r := SanityReport{
		LlamaBuilt:  llamaBuilt,
		Backends:    m.backend.Name(),
		Device:      string(m.GetDevice()),
		DeviceCount: m.accel.DeviceCount(),
	}
	if !llamaBuilt {
		r.Error = "llama support not built (missing 'llama' build tag)"
	}
	return r
}
