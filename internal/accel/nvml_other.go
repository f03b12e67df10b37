//go:build !(linux && cgo)

package accel

// NewNVML returns the CPU-only accelerator on platforms where NVML cannot be
// loaded (non-Linux hosts or CGO-disabled builds).
func NewNVML(lookup func(string) (string, bool)) Accelerator { return None() }
