package manager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argmap/internal/accel"
)

func TestLoadEmbeddingModel_MissingID(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv(EnvModelID, "org/lang"))

	_, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
	assert.Equal(t, "Required: SentenceTransformer Model ID using EMBED_MODEL_ID environment variable", err.Error())
	assert.Empty(t, h.backend.embeddingCalls())
	assert.Equal(t, err.Error(), h.m.Status().Slots[1].LastError)
}

func TestLoadEmbeddingModel_SucceedsOnceIDIsSet(t *testing.T) {
	env := newEnv()
	h := newHarness(t, accel.None(), env)

	_, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))

	env.set(EnvEmbedModelID, "e")
	mdl, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.NoError(t, err)
	require.NotNil(t, mdl)

	assert.Len(t, h.backend.embeddingCalls(), 1)
	snap := h.m.Snapshots()[1]
	assert.Equal(t, StateLoaded, snap.State)
	assert.Equal(t, "e", snap.ModelID)
	assert.Empty(t, snap.Err)
}

func TestLoadEmbeddingModel_CPU(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv(EnvEmbedModelID, "sentence-transformers/all-MiniLM-L6-v2", EnvModelRevision, "ignored"))

	a, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.NoError(t, err)
	b, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.NoError(t, err)
	assert.Same(t, a, b)

	calls := h.backend.embeddingCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, EmbeddingOptions{ModelID: "sentence-transformers/all-MiniLM-L6-v2", Device: accel.DeviceCPU}, calls[0])
	assert.Equal(t, []string{
		"Initializing embedding model: sentence-transformers/all-MiniLM-L6-v2 on cpu...",
		"Embedding model initialized.",
	}, h.progress.lines())
	assert.False(t, h.m.Snapshots()[1].Revision.IsSet())
}

func TestLoadEmbeddingModel_GateUsesOwnVariable(t *testing.T) {
	env := newEnv(EnvEmbedModelID, "e", EnvModelMinimumMemoryGB, "100", EnvEmbedMinimumMemoryGB, "2")
	h := newHarness(t, gpu(4), env)

	_, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.NoError(t, err)

	env2 := newEnv(EnvEmbedModelID, "e", EnvEmbedMinimumMemoryGB, "4.5")
	h2 := newHarness(t, gpu(4), env2)
	_, err = h2.m.LoadEmbeddingModel(testCtx(t))
	require.Error(t, err)
	assert.Equal(t, "Insufficient CUDA memory: 4.0 GB free, 4.5 GB required", err.Error())
}

func TestLoadEmbeddingModel_SlotsAreIndependent(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv(EnvModelID, "lang", EnvEmbedModelID, "emb"))
	h.backend.embedErr = errors.New("download failed")

	_, err := h.m.LoadEmbeddingModel(testCtx(t))
	require.Error(t, err)
	_, err = h.m.LoadLanguageModel(testCtx(t))
	require.NoError(t, err)

	snaps := h.m.Snapshots()
	assert.Equal(t, StateLoaded, snaps[0].State)
	assert.Equal(t, StateEmpty, snaps[1].State)
	assert.Equal(t, "download failed", snaps[1].Err)
	assert.True(t, h.m.Ready())
}
