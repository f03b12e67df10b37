package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
// Model identity (MODEL_ID, EMBED_MODEL_ID, ...) is read from the environment
// at load time and is intentionally absent here.
type Config struct {
	Addr            string   `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile         string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	EnvFile         string   `json:"env_file" yaml:"env_file" toml:"env_file"`
	ModelsDir       string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	HubCacheDir     string   `json:"hub_cache_dir" yaml:"hub_cache_dir" toml:"hub_cache_dir"`
	EmbedCacheDir   string   `json:"embed_cache_dir" yaml:"embed_cache_dir" toml:"embed_cache_dir"`
	OnnxLibraryPath string   `json:"onnx_library_path" yaml:"onnx_library_path" toml:"onnx_library_path"`
	LlamaCtx        int      `json:"llama_ctx" yaml:"llama_ctx" toml:"llama_ctx"`
	LlamaThreads    int      `json:"llama_threads" yaml:"llama_threads" toml:"llama_threads"`
	CORSEnabled     bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins     []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of override applied on top.
func Merge(base, override Config) Config {
	out := base
	if override.Addr != "" {
		out.Addr = override.Addr
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.LogFile != "" {
		out.LogFile = override.LogFile
	}
	if override.EnvFile != "" {
		out.EnvFile = override.EnvFile
	}
	if override.ModelsDir != "" {
		out.ModelsDir = override.ModelsDir
	}
	if override.HubCacheDir != "" {
		out.HubCacheDir = override.HubCacheDir
	}
	if override.EmbedCacheDir != "" {
		out.EmbedCacheDir = override.EmbedCacheDir
	}
	if override.OnnxLibraryPath != "" {
		out.OnnxLibraryPath = override.OnnxLibraryPath
	}
	if override.LlamaCtx > 0 {
		out.LlamaCtx = override.LlamaCtx
	}
	if override.LlamaThreads > 0 {
		out.LlamaThreads = override.LlamaThreads
	}
	if override.CORSEnabled {
		out.CORSEnabled = true
	}
	if len(override.CORSOrigins) > 0 {
		out.CORSOrigins = append([]string(nil), override.CORSOrigins...)
	}
	return out
}
