package manager

import (
	"argmap/pkg/types"
)

// Snapshots returns a read-only view of both slots, language first.
func (m *Manager) Snapshots() []Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return []Snapshot{m.language.snapshot(), m.embedding.snapshot()}
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	now := m.now()
	resp := types.StatusResponse{
		Memory:         m.MemoryResponse(),
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
	for _, s := range m.Snapshots() {
		st := types.SlotStatus{
			Slot:      string(s.Slot),
			State:     string(s.State),
			ModelID:   s.ModelID,
			Device:    string(s.Device),
			LastError: s.Err,
		}
		if rev, ok := s.Revision.Get(); ok {
			st.Revision = rev
		}
		if s.State == StateLoaded {
			st.LoadedAt = s.LoadedAt.Unix()
			st.LoadMillis = s.LoadDur.Milliseconds()
		}
		resp.Slots = append(resp.Slots, st)
	}
	m.mu.RLock()
	resp.LoadsTotal = m.loadsTotal
	resp.UnloadsTotal = m.unloadsTotal
	m.mu.RUnlock()
	return resp
}

// MemoryResponse returns the current memory report in wire form. Query
// failures are logged and reported as zeros.
func (m *Manager) MemoryResponse() types.MemoryResponse {
	r, err := m.GetCUDAMemory()
	if err != nil {
		m.diag.Log().Msgf("CUDA memory query failed: %v", err)
	}
	return types.MemoryResponse{
		Device:         string(m.GetDevice()),
		FreeBytes:      r.Free,
		AllocatedBytes: r.Allocated,
		TotalBytes:     r.Total,
		FreeGB:         GB(r.Free),
		AllocatedGB:    GB(r.Allocated),
		TotalGB:        GB(r.Total),
	}
}

// DeviceResponse returns the device mode and version report in wire form.
func (m *Manager) DeviceResponse() types.DeviceResponse {
	return types.DeviceResponse{
		Device:      string(m.GetDevice()),
		DeviceCount: m.accel.DeviceCount(),
		Versions:    m.VersionReport(),
	}
}
