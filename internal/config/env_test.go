package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLookupString(t *testing.T) {
	env := mapLookup(map[string]string{"SET": " rev-1 ", "BLANK": "  "})

	v, ok := LookupString(env, "SET").Get()
	assert.True(t, ok)
	assert.Equal(t, "rev-1", v)

	assert.False(t, LookupString(env, "BLANK").IsSet())
	assert.False(t, LookupString(env, "MISSING").IsSet())
}

func TestFromEnv(t *testing.T) {
	env := mapLookup(map[string]string{EnvLogLevel: "error", EnvAddr: " :9999 ", EnvConfig: "ignored.yaml"})
	assert.Equal(t, Config{LogLevel: "error", Addr: ":9999"}, FromEnv(env))
	assert.Equal(t, Config{}, FromEnv(mapLookup(nil)))

	merged := Merge(Merge(Config{Addr: ":8080", LogLevel: "info"}, FromEnv(env)), Config{LogLevel: "debug"})
	assert.Equal(t, ":9999", merged.Addr)
	assert.Equal(t, "debug", merged.LogLevel, "flags win over the environment")
}

func TestLookupGB(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Optional[float64]
		wantErr string
	}{
		{name: "unset", env: map[string]string{}, want: None[float64]()},
		{name: "integer", env: map[string]string{"GB": "8"}, want: Some(8.0)},
		{name: "fraction", env: map[string]string{"GB": "7.5"}, want: Some(7.5)},
		{name: "garbage", env: map[string]string{"GB": "lots"}, wantErr: "invalid GB"},
		{name: "negative", env: map[string]string{"GB": "-1"}, wantErr: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LookupGB(mapLookup(tt.env), "GB")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptional(t *testing.T) {
	var zero Optional[string]
	assert.False(t, zero.IsSet())
	assert.Equal(t, "fallback", zero.OrElse("fallback"))
	assert.Equal(t, "<unset>", zero.String())

	s := Some("")
	v, ok := s.Get()
	assert.True(t, ok, "an empty value that was set explicitly is still set")
	assert.Equal(t, "", v)
}

func TestLoadEnvFile_DoesNotOverrideExisting(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, ".env")
	require.NoError(t, os.WriteFile(p, []byte("ARGMAP_TEST_A=from-file\nARGMAP_TEST_B=from-file\n"), 0o644))
	t.Setenv("ARGMAP_TEST_A", "from-env")
	t.Cleanup(func() { os.Unsetenv("ARGMAP_TEST_B") })

	require.NoError(t, LoadEnvFile(p, false))
	assert.Equal(t, "from-env", os.Getenv("ARGMAP_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("ARGMAP_TEST_B"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	assert.NoError(t, LoadEnvFile(missing, true))
	assert.Error(t, LoadEnvFile(missing, false))
	assert.NoError(t, LoadEnvFile("", false))
}
