//go:build !ORT && !ALL

package manager

import (
	"github.com/knights-analytics/hugot"
)

const embeddingBackendName = "hugot (go)"

// newHugotSession returns a pure Go session. It runs on the CPU regardless
// of the requested device.
func newHugotSession(hugotParams) (*hugot.Session, error) {
	return hugot.NewGoSession()
}
