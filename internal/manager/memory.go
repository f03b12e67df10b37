package manager

import (
	"math"
	"runtime"
	"runtime/debug"

	"argmap/internal/accel"
)

// MemoryReport is a snapshot of accelerator memory in bytes.
type MemoryReport struct {
	Free      uint64
	Allocated uint64
	Total     uint64
}

// GB converts a byte count to GiB rounded to one decimal.
func GB(b uint64) float64 { return roundGB(float64(b) / float64(accel.GiB)) }

func roundGB(v float64) float64 { return math.Round(v*10) / 10 }

// GetDevice returns "cuda" when an accelerator is usable, else "cpu".
func (m *Manager) GetDevice() accel.Device { return accel.DeviceOf(m.accel) }

// GetCUDAMemory returns free, allocated and total memory summed across the
// visible devices. Without an accelerator all three are zero. A device that
// cannot report allocated memory counts as zero allocated.
func (m *Manager) GetCUDAMemory() (MemoryReport, error) {
	var r MemoryReport
	if !m.accel.Available() {
		return r, nil
	}
	for i := 0; i < m.accel.DeviceCount(); i++ {
		free, total, err := m.accel.MemGetInfo(i)
		if err != nil {
			return MemoryReport{}, err
		}
		allocated, err := m.accel.MemoryAllocated(i)
		if err != nil {
			m.diag.Log().Msgf("CUDA allocated memory unavailable on device %d: %v", i, err)
			allocated = 0
		}
		r.Free += free
		r.Total += total
		r.Allocated += allocated
	}
	accelFreeBytes.Set(float64(r.Free))
	return r, nil
}

// freeBytes sums free memory across the visible devices.
func (m *Manager) freeBytes() (uint64, error) {
	var sum uint64
	for i := 0; i < m.accel.DeviceCount(); i++ {
		free, _, err := m.accel.MemGetInfo(i)
		if err != nil {
			return 0, err
		}
		sum += free
	}
	accelFreeBytes.Set(float64(sum))
	return sum, nil
}

// PrintCUDAMemory writes a one-line memory report to the diagnostics stream.
func (m *Manager) PrintCUDAMemory() {
	r, err := m.GetCUDAMemory()
	if err != nil {
		m.diag.Log().Msgf("CUDA memory query failed: %v", err)
		return
	}
	if r.Total == 0 {
		m.diag.Log().Msg("Running on CPU - no CUDA memory to report")
		return
	}
	m.diag.Log().Msgf("CUDA Memory: %.1f GB free, %.1f GB allocated, %.1f GB total",
		GB(r.Free), GB(r.Allocated), GB(r.Total))
}

// EnsureCUDAMemory fails with a resource error when free accelerator bytes
// are below requiredGB GiB. Rounding applies to the message only. On CPU it
// only warns.
func (m *Manager) EnsureCUDAMemory(requiredGB float64) error {
	if !m.accel.Available() {
		m.diag.Log().Msg("Warning: Running on CPU, CUDA memory check skipped")
		return nil
	}
	free, err := m.freeBytes()
	if err != nil {
		return err
	}
	if free < requiredBytes(requiredGB) {
		return resourceError{freeGB: GB(free), requiredGB: requiredGB}
	}
	return nil
}

func requiredBytes(gb float64) uint64 {
	if gb <= 0 {
		return 0
	}
	return uint64(gb * float64(accel.GiB))
}

// reclaim runs the collector and asks the backend to drop cached device
// pools. It never fails.
func (m *Manager) reclaim() {
	runtime.GC()
	debug.FreeOSMemory()
	if cr, ok := m.backend.(CacheReleaser); ok {
		cr.ReleaseCache()
	}
}
