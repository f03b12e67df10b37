package manager

import "context"

// ModelBackend abstracts the model runtimes used by the Manager.
// Implementations construct models; the Manager owns caching and lifecycle.
type ModelBackend interface {
	// Name describes the runtimes in use, for reports.
	Name() string
	// LoadLanguageModel constructs a causal language model.
	LoadLanguageModel(ctx context.Context, opts LanguageOptions) (Model, error)
	// LoadEmbeddingModel constructs a sentence-embedding model.
	LoadEmbeddingModel(ctx context.Context, opts EmbeddingOptions) (Model, error)
}

// CacheReleaser is implemented by backends that keep reusable device memory
// pools. ReleaseCache is advisory and must not fail.
type CacheReleaser interface {
	ReleaseCache()
}
