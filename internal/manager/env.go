package manager

import "argmap/internal/config"

// Environment variables read on a cache miss.
const (
	EnvModelID                = "MODEL_ID"
	EnvModelRevision          = "MODEL_REVISION"
	EnvModelMinimumMemoryGB   = "MODEL_MINIMUM_MEMORY_GB"
	EnvEmbedModelID           = "EMBED_MODEL_ID"
	EnvEmbedMinimumMemoryGB   = "EMBED_MODEL_MINIMUM_MEMORY_GB"
	missingLanguageModelIDMsg = "Required: HuggingFace Model ID using MODEL_ID environment variable"
	missingEmbedModelIDMsg    = "Required: SentenceTransformer Model ID using EMBED_MODEL_ID environment variable"
)

// requireEnv returns the value of key or a configurationError carrying msg.
func (m *Manager) requireEnv(key, msg string) (string, error) {
	v, ok := config.LookupString(m.lookup, key).Get()
	if !ok {
		return "", ErrConfiguration(msg)
	}
	return v, nil
}

// gateFromEnv enforces the memory gate when key is set.
func (m *Manager) gateFromEnv(key string) error {
	gb, err := config.LookupGB(m.lookup, key)
	if err != nil {
		return ErrConfiguration(err.Error())
	}
	if required, ok := gb.Get(); ok {
		return m.EnsureCUDAMemory(required)
	}
	return nil
}
