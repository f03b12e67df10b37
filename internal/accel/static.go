package accel

import "sync"

// StaticDevice describes one device of a Static accelerator.
type StaticDevice struct {
	Name      string
	Free      uint64
	Total     uint64
	Allocated uint64
}

// Static is an in-memory Accelerator with fixed numbers. It is used by tests
// and dry runs; fields may be changed between calls via Set.
type Static struct {
	mu      sync.Mutex
	devices []StaticDevice
	Driver  string
	CUDA    string
}

// NewStatic returns a Static accelerator exposing the given devices.
func NewStatic(devices ...StaticDevice) *Static {
	return &Static{devices: append([]StaticDevice(nil), devices...), Driver: "static", CUDA: "0.0"}
}

// Set replaces the device list.
func (s *Static) Set(devices ...StaticDevice) {
	s.mu.Lock()
	s.devices = append([]StaticDevice(nil), devices...)
	s.mu.Unlock()
}

func (s *Static) device(i int) (StaticDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.devices) {
		return StaticDevice{}, ErrNoDevice
	}
	return s.devices[i], nil
}

func (s *Static) Available() bool { return s.DeviceCount() > 0 }

func (s *Static) DeviceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}

func (s *Static) MemGetInfo(i int) (uint64, uint64, error) {
	d, err := s.device(i)
	return d.Free, d.Total, err
}

func (s *Static) MemoryAllocated(i int) (uint64, error) {
	d, err := s.device(i)
	return d.Allocated, err
}

func (s *Static) Name(i int) (string, error) {
	d, err := s.device(i)
	return d.Name, err
}

func (s *Static) DriverVersion() (string, error) {
	if !s.Available() {
		return "", ErrNoDevice
	}
	return s.Driver, nil
}

func (s *Static) CUDAVersion() (string, error) {
	if !s.Available() {
		return "", ErrNoDevice
	}
	return s.CUDA, nil
}
