package manager

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"argmap/internal/accel"
	"argmap/internal/logging"
)

// fakeModel records Close calls.
type fakeModel struct {
	id       string
	closed   atomic.Bool
	closeErr error
}

func (f *fakeModel) Close() error {
	f.closed.Store(true)
	return f.closeErr
}

// fakeBackend is an in-memory ModelBackend that counts constructions.
type fakeBackend struct {
	mu        sync.Mutex
	langOpts  []LanguageOptions
	embedOpts []EmbeddingOptions
	langErr   error
	embedErr  error
	nilModel  bool
	delay     time.Duration
	released  atomic.Int32
}

func (f *fakeBackend) Name() string { return "fake-language, fake-embedding" }

func (f *fakeBackend) LoadLanguageModel(ctx context.Context, opts LanguageOptions) (Model, error) {
	f.mu.Lock()
	f.langOpts = append(f.langOpts, opts)
	err, delay, nilModel := f.langErr, f.delay, f.nilModel
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if nilModel {
		return nil, nil
	}
	return &fakeModel{id: opts.ModelID}, nil
}

func (f *fakeBackend) LoadEmbeddingModel(ctx context.Context, opts EmbeddingOptions) (Model, error) {
	f.mu.Lock()
	f.embedOpts = append(f.embedOpts, opts)
	err := f.embedErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &fakeModel{id: opts.ModelID}, nil
}

func (f *fakeBackend) ReleaseCache() { f.released.Add(1) }

func (f *fakeBackend) languageCalls() []LanguageOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]LanguageOptions(nil), f.langOpts...)
}

func (f *fakeBackend) embeddingCalls() []EmbeddingOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EmbeddingOptions(nil), f.embedOpts...)
}

// envMap is a mutable environment for tests.
type envMap struct {
	mu sync.Mutex
	m  map[string]string
}

func newEnv(kv ...string) *envMap {
	e := &envMap{m: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		e.m[kv[i]] = kv[i+1]
	}
	return e
}

func (e *envMap) lookup(k string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.m[k]
	return v, ok
}

func (e *envMap) set(k, v string) {
	e.mu.Lock()
	e.m[k] = v
	e.mu.Unlock()
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

// lines returns the non-empty lines written so far.
func (s *syncBuffer) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, l := range strings.Split(s.b.String(), "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

type harness struct {
	m        *Manager
	backend  *fakeBackend
	env      *envMap
	progress *syncBuffer
	diag     *syncBuffer
	events   *MemoryPublisher
}

var testClock = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newHarness builds a Manager over a fake backend. Both streams render the
// message only so assertions can compare whole lines.
func newHarness(t *testing.T, acc accel.Accelerator, env *envMap) *harness {
	t.Helper()
	h := &harness{
		backend:  &fakeBackend{},
		env:      env,
		progress: &syncBuffer{},
		diag:     &syncBuffer{},
		events:   NewMemoryPublisher(),
	}
	progress := zerolog.New(logging.DiagnosticsWriter(h.progress))
	diag := zerolog.New(logging.DiagnosticsWriter(h.diag))
	h.m = NewWithConfig(ManagerConfig{
		Backend:     h.backend,
		Accelerator: acc,
		Lookup:      env.lookup,
		Progress:    &progress,
		Diagnostics: &diag,
		Clock:       func() time.Time { return testClock },
		Publisher:   h.events,
	})
	return h
}

// gpu returns a single-device accelerator with the given free GiB.
func gpu(freeGiB float64) *accel.Static {
	return accel.NewStatic(accel.StaticDevice{
		Name:      "Test GPU",
		Free:      uint64(freeGiB * accel.GiB),
		Total:     24 * accel.GiB,
		Allocated: 4 * accel.GiB,
	})
}

// noAllocated is an accelerator whose per-process memory query is unsupported.
type noAllocated struct{ *accel.Static }

func (noAllocated) MemoryAllocated(int) (uint64, error) {
	return 0, errors.New("nvml running processes: Not Supported")
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
