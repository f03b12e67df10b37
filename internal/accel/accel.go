// Package accel reports on the compute accelerators visible to the process.
//
// An Accelerator answers a small set of live queries (device count, free and
// total memory, memory held by this process). Nothing here is cached: every
// call reflects the current state of the driver, so callers can derive the
// "cuda" or "cpu" device mode on demand.
package accel

import "errors"

// Device is the placement mode handed to model runtimes.
type Device string

const (
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

// GiB is the divisor used for every GB figure reported by this module.
const GiB = 1 << 30

// ErrNoDevice is returned by per-device queries when the index is out of range.
var ErrNoDevice = errors.New("accel: no such device")

// Accelerator abstracts the GPU driver.
type Accelerator interface {
	// Available reports whether at least one device is visible right now.
	Available() bool
	// DeviceCount returns the number of visible devices.
	DeviceCount() int
	// MemGetInfo returns free and total bytes for device i.
	MemGetInfo(i int) (free, total uint64, err error)
	// MemoryAllocated returns bytes held on device i by the current process.
	MemoryAllocated(i int) (uint64, error)
	// Name returns the marketing name of device i.
	Name(i int) (string, error)
	// DriverVersion returns the kernel driver version string.
	DriverVersion() (string, error)
	// CUDAVersion returns the CUDA version supported by the driver, e.g. "12.4".
	CUDAVersion() (string, error)
}

// DeviceOf returns DeviceCUDA if a is non-nil and has a visible device.
func DeviceOf(a Accelerator) Device {
	if a != nil && a.Available() {
		return DeviceCUDA
	}
	return DeviceCPU
}

// none is the CPU-only accelerator.
type none struct{}

// None returns an Accelerator with no devices.
func None() Accelerator { return none{} }

func (none) Available() bool                        { return false }
func (none) DeviceCount() int                       { return 0 }
func (none) MemGetInfo(int) (uint64, uint64, error) { return 0, 0, ErrNoDevice }
func (none) MemoryAllocated(int) (uint64, error)    { return 0, ErrNoDevice }
func (none) Name(int) (string, error)               { return "", ErrNoDevice }
func (none) DriverVersion() (string, error)         { return "", ErrNoDevice }
func (none) CUDAVersion() (string, error)           { return "", ErrNoDevice }
