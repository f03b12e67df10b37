package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestNew_StreamsGoToTheirWriters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := New(Options{Stdout: &stdout, Stderr: &stderr})
	defer l.Close()

	ts := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.Local)
	l.Progress.Log().Time(zerolog.TimestampFieldName, ts).Msg("Initializing language model: m on cpu...")
	l.Diagnostics.Warn().Msg("Warning: Running on CPU, CUDA memory check skipped")

	assert.Equal(t, "2024-05-01 12:30:45.123456 Initializing language model: m on cpu...\n", stdout.String())
	assert.Equal(t, "Warning: Running on CPU, CUDA memory check skipped\n", stderr.String())
}

func TestProgressWriter_UntimedRecordHasNoTimestamp(t *testing.T) {
	var stdout bytes.Buffer
	l := New(Options{Stdout: &stdout})
	defer l.Close()

	ts := time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.Local)
	l.Progress.Log().Time(zerolog.TimestampFieldName, ts).Msg("Initializing language model: m on cuda...")
	l.Progress.Log().Msg("Model Revision: v1.2")

	assert.Equal(t, "2024-05-01 12:30:45.123456 Initializing language model: m on cuda...\nModel Revision: v1.2\n", stdout.String())
}

func TestNew_TeesToFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "argmap.log")
	l := New(Options{Stdout: &stdout, Stderr: &stderr, File: path})
	l.Diagnostics.Info().Msg("CUDA Memory: 1.0 GB free, 0.0 GB allocated, 2.0 GB total")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"message":"CUDA Memory: 1.0 GB free`), "file should hold JSON records: %s", b)
}
