package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"argmap/internal/common/fsutil"
	"argmap/internal/config"
	"argmap/internal/registry"
)

// Defaults for RuntimeConfig.
const (
	DefaultLlamaCtx      = 2048
	DefaultEmbedCacheDir = "~/.cache/argmap/embeddings"
)

// RuntimeConfig configures the production backend.
type RuntimeConfig struct {
	// Resolver maps MODEL_ID and MODEL_REVISION to a GGUF file.
	Resolver registry.Resolver
	// LlamaCtx is the context window passed to llama.cpp.
	LlamaCtx int
	// LlamaThreads is the CPU thread count; 0 means runtime.NumCPU().
	LlamaThreads int
	// EmbedCacheDir receives downloaded embedding models.
	EmbedCacheDir string
	// OnnxLibraryPath points at libonnxruntime for ORT builds.
	OnnxLibraryPath string
	// Lookup reads HF_TOKEN and the hub cache variables.
	Lookup config.LookupFunc
}

// runtimeBackend loads language models through llama.cpp and embedding
// models through hugot.
type runtimeBackend struct {
	cfg RuntimeConfig
}

// NewRuntimeBackend returns the production ModelBackend.
func NewRuntimeBackend(cfg RuntimeConfig) ModelBackend {
	if cfg.Lookup == nil {
		cfg.Lookup = os.LookupEnv
	}
	if cfg.Resolver.Lookup == nil {
		cfg.Resolver.Lookup = cfg.Lookup
	}
	if cfg.LlamaCtx <= 0 {
		cfg.LlamaCtx = DefaultLlamaCtx
	}
	if cfg.LlamaThreads <= 0 {
		cfg.LlamaThreads = runtime.NumCPU()
	}
	if cfg.EmbedCacheDir == "" {
		cfg.EmbedCacheDir = DefaultEmbedCacheDir
	}
	if dir, err := fsutil.ExpandHome(cfg.EmbedCacheDir); err == nil {
		cfg.EmbedCacheDir = dir
	}
	return &runtimeBackend{cfg: cfg}
}

func (b *runtimeBackend) Name() string {
	return languageBackendName + ", " + embeddingBackendName
}

func (b *runtimeBackend) LoadLanguageModel(ctx context.Context, opts LanguageOptions) (Model, error) {
	path, err := b.cfg.Resolver.ResolveGGUF(opts.ModelID, opts.Revision)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrModelNotFound(opts.ModelID, err)
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gpu := false
	if v, ok := opts.DeviceMap.Get(); ok && v == DeviceMapAuto {
		gpu = true
	}
	return newLlamaModel(path, llamaParams{
		ctxSize: b.cfg.LlamaCtx,
		threads: b.cfg.LlamaThreads,
		gpu:     gpu,
	})
}

func (b *runtimeBackend) LoadEmbeddingModel(ctx context.Context, opts EmbeddingOptions) (Model, error) {
	dir, err := b.embeddingDir(opts.ModelID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newHugotModel(opts.ModelID, dir, hugotParams{
		device:          opts.Device,
		onnxLibraryPath: b.cfg.OnnxLibraryPath,
	})
}

// embeddingDir returns a local model directory for id, downloading it into
// EmbedCacheDir on first use.
func (b *runtimeBackend) embeddingDir(id string) (string, error) {
	if local, err := fsutil.ExpandHome(id); err == nil && fsutil.IsDir(local) {
		return local, nil
	}
	cached := filepath.Join(b.cfg.EmbedCacheDir, cacheDirName(id))
	if fsutil.IsDir(cached) {
		return cached, nil
	}
	if err := os.MkdirAll(b.cfg.EmbedCacheDir, 0o755); err != nil {
		return "", err
	}
	token, _ := config.LookupString(b.cfg.Lookup, "HF_TOKEN").Get()
	return downloadEmbeddingModel(id, b.cfg.EmbedCacheDir, token)
}
