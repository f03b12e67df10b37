//go:build !llama

package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeBackend_LlamaNotBuilt(t *testing.T) {
	b, dir := newTestRuntime(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.Q4_K_M.gguf"), []byte("gguf"), 0o644))

	_, err := b.LoadLanguageModel(context.Background(), LanguageOptions{ModelID: "tiny.Q4_K_M"})
	require.Error(t, err)
	assert.True(t, IsDependencyUnavailable(err))
	assert.False(t, llamaBuilt)
}
