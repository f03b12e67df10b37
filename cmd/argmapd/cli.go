package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argmap/internal/config"
	"argmap/internal/logging"
	"argmap/internal/manager"
	"argmap/internal/registry"
)

// Defaults applied beneath the config file, environment and flags.
var defaults = config.Config{
	Addr:      ":8080",
	LogLevel:  "info",
	EnvFile:   ".env",
	ModelsDir: "~/models/llm",
	LlamaCtx:  manager.DefaultLlamaCtx,
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg  config.Config
	logs logging.Loggers
	mgr  *manager.Manager
	out  io.Writer
}

// close releases the models and the log file. It is safe to call when
// PersistentPreRunE never ran.
func (a *app) close() {
	if a.mgr != nil {
		if err := a.mgr.Close(); err != nil {
			a.logs.Service.Warn().Err(err).Msg("closing models")
		}
	}
	_ = a.logs.Close()
}

func buildRootCmd() (*cobra.Command, *app) { return buildRootCmdWith(os.Stdout) }

// buildRootCmdWith constructs the command tree writing reports to out.
// The caller closes the returned app after Execute, whatever its result.
func buildRootCmdWith(out io.Writer) (*cobra.Command, *app) {
	a := &app{out: out}
	var (
		configPath string
		flagCfg    config.Config
	)
	root := &cobra.Command{
		Use:           "argmapd",
		Short:         "Lazily loads and caches the language and embedding models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.yaml, .json or .toml; env ARGMAP_CONFIG)")
	root.PersistentFlags().StringVar(&flagCfg.LogLevel, "log-level", "", "Log level: debug|info|warn|error|off (env ARGMAP_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&flagCfg.LogFile, "log-file", "", "Also write JSON logs to this file (rotated)")
	root.PersistentFlags().StringVar(&flagCfg.EnvFile, "env-file", "", "KEY=VALUE file loaded into the environment (default .env, optional)")
	root.PersistentFlags().StringVar(&flagCfg.ModelsDir, "models-dir", "", "Directory to scan for *.gguf model files")
	root.PersistentFlags().StringVar(&flagCfg.HubCacheDir, "hub-cache", "", "Hugging Face hub cache root")
	root.PersistentFlags().StringVar(&flagCfg.EmbedCacheDir, "embed-cache", "", "Directory for downloaded embedding models")
	root.PersistentFlags().StringVar(&flagCfg.OnnxLibraryPath, "onnx-lib", "", "Path to libonnxruntime (ORT builds)")
	root.PersistentFlags().IntVar(&flagCfg.LlamaCtx, "llama-ctx", 0, "llama.cpp context size")
	root.PersistentFlags().IntVar(&flagCfg.LlamaThreads, "llama-threads", 0, "llama.cpp threads (0 = all CPUs)")

	// precedence: defaults < config file < environment < flags
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg := defaults
		if configPath == "" {
			configPath = os.Getenv(config.EnvConfig)
		}
		if configPath != "" {
			fileCfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = config.Merge(cfg, fileCfg)
		}
		envFile := config.Merge(cfg, flagCfg).EnvFile
		envFileSet := cmd.Flags().Changed("env-file") || envFile != defaults.EnvFile
		if err := config.LoadEnvFile(envFile, !envFileSet); err != nil {
			return err
		}
		cfg = config.Merge(cfg, config.FromEnv(os.LookupEnv))
		cfg = config.Merge(cfg, flagCfg)
		a.cfg = cfg
		a.logs = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
		a.mgr = newManager(cfg, a.logs)
		return nil
	}

	root.AddCommand(serveCmd(a), deviceCmd(a), memoryCmd(a), loadCmd(a), sanityCmd(a))
	return root, a
}

// newManager wires the runtime backend to cfg.
func newManager(cfg config.Config, logs logging.Loggers) *manager.Manager {
	backend := manager.NewRuntimeBackend(manager.RuntimeConfig{
		Resolver: registry.Resolver{
			ModelsDir:   cfg.ModelsDir,
			HubCacheDir: cfg.HubCacheDir,
		},
		LlamaCtx:        cfg.LlamaCtx,
		LlamaThreads:    cfg.LlamaThreads,
		EmbedCacheDir:   cfg.EmbedCacheDir,
		OnnxLibraryPath: cfg.OnnxLibraryPath,
	})
	return manager.NewWithConfig(manager.ManagerConfig{
		Backend:     backend,
		Progress:    &logs.Progress,
		Diagnostics: &logs.Diagnostics,
		Publisher:   manager.LogPublisher{Logger: logs.Service},
	})
}

func deviceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Print the device mode and runtime versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "Device: %s\n", a.mgr.GetDevice())
			a.mgr.PrintVersionReport()
			return nil
		},
	}
}

func memoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "memory",
		Short: "Print accelerator memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.mgr.PrintCUDAMemory()
			return nil
		},
	}
}

func sanityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sanity",
		Short: "Report which model runtimes this binary supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(a.out, a.mgr.SanityCheck())
		},
	}
}

func loadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "load language|embedding",
		Short:     "Load one model slot using the environment, then print its status",
		Example:   "  MODEL_ID=org/model argmapd load language",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(manager.SlotLanguage), string(manager.SlotEmbedding)},
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := manager.SlotName(strings.ToLower(args[0]))
			if err := loadSlot(cmd, a.mgr, slot); err != nil {
				return err
			}
			for _, s := range a.mgr.Status().Slots {
				if s.Slot == string(slot) {
					return writeJSON(a.out, s)
				}
			}
			return nil
		},
	}
}

func loadSlot(cmd *cobra.Command, mgr *manager.Manager, slot manager.SlotName) error {
	var err error
	switch slot {
	case manager.SlotLanguage:
		_, err = mgr.LoadLanguageModel(cmd.Context())
	case manager.SlotEmbedding:
		_, err = mgr.LoadEmbeddingModel(cmd.Context())
	default:
		return fmt.Errorf("unknown slot %q: want language or embedding", slot)
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
