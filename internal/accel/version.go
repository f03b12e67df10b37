package accel

import "fmt"

// formatCUDAVersion renders the driver's integer CUDA version (e.g. 12040)
// as "major.minor".
func formatCUDAVersion(v int) string {
	return fmt.Sprintf("%d.%d", v/1000, (v%1000)/10)
}
