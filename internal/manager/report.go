package manager

import (
	"fmt"
	"runtime"
	"strings"
)

// VersionReport describes the Go runtime, the model backends and, when an
// accelerator is present, the CUDA and driver versions and the first
// device's name.
func (m *Manager) VersionReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Go: %s\n", runtime.Version())
	fmt.Fprintf(&b, "Backends: %s\n", m.backend.Name())
	if !m.accel.Available() {
		b.WriteString("No CUDA support. Using CPU.")
		return b.String()
	}
	fmt.Fprintf(&b, "CUDA: %s\n", orUnknown(m.accel.CUDAVersion()))
	fmt.Fprintf(&b, "Driver: %s\n", orUnknown(m.accel.DriverVersion()))
	fmt.Fprintf(&b, "Device: %s", orUnknown(m.accel.Name(0)))
	return b.String()
}

// PrintVersionReport writes VersionReport to the progress stream, one line
// per entry.
func (m *Manager) PrintVersionReport() {
	for _, line := range strings.Split(m.VersionReport(), "\n") {
		m.progressf("%s", line)
	}
}

func orUnknown(s string, err error) string {
	if err != nil || s == "" {
		return "unknown"
	}
	return s
}
