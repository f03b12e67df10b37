package manager

import (
	"errors"
	"fmt"
	"strconv"
)

// configurationError signals a missing or invalid environment variable.
type configurationError struct{ msg string }

func (e configurationError) Error() string { return e.msg }

// ErrConfiguration constructs a configurationError.
func ErrConfiguration(msg string) error { return configurationError{msg: msg} }

// IsConfiguration reports whether err stems from missing or invalid configuration.
func IsConfiguration(err error) bool {
	var target configurationError
	return errors.As(err, &target)
}

// resourceError signals that the memory gate rejected a load.
type resourceError struct {
	freeGB     float64
	requiredGB float64
}

func (e resourceError) Error() string {
	return fmt.Sprintf("Insufficient CUDA memory: %.1f GB free, %s GB required",
		e.freeGB, strconv.FormatFloat(e.requiredGB, 'f', -1, 64))
}

// IsResource reports whether err indicates insufficient accelerator memory.
func IsResource(err error) bool {
	var target resourceError
	return errors.As(err, &target)
}

// modelNotFoundError is returned when a model id cannot be mapped to local files.
type modelNotFoundError struct {
	id  string
	err error
}

func (e modelNotFoundError) Error() string {
	if e.err != nil {
		return "model not found: " + e.id + ": " + e.err.Error()
	}
	return "model not found: " + e.id
}

func (e modelNotFoundError) Unwrap() error { return e.err }

// ErrModelNotFound returns an error for a model id with no local files.
func ErrModelNotFound(id string, cause error) error { return modelNotFoundError{id: id, err: cause} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	var target modelNotFoundError
	return errors.As(err, &target)
}

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var target dependencyUnavailableError
	return errors.As(err, &target)
}

// ErrClosed is returned by loaders after Close.
var ErrClosed = errors.New("manager closed")
