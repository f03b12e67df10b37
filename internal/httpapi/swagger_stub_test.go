//go:build !swagger

package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountSwagger_NoOp(t *testing.T) {
	rr := do(t, NewMux(&mockService{}), http.MethodGet, "/swagger/index.html")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
