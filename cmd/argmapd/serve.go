package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"argmap/internal/httpapi"
	"argmap/internal/manager"
	"argmap/internal/registry"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr        string
		corsOrigins string
		preload     string
		loadTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP control API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			if origins := splitCSV(corsOrigins); len(origins) > 0 {
				cfg.CORSEnabled = true
				cfg.CORSOrigins = origins
			}
			log := a.logs.Service

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(log)
			httpapi.SetRequestLogLevel(cfg.LogLevel)
			httpapi.SetBaseContext(ctx)
			httpapi.SetLoadTimeout(loadTimeout)
			httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)

			if models, err := registry.LoadDir(cfg.ModelsDir); err != nil {
				log.Debug().Err(err).Str("dir", cfg.ModelsDir).Msg("models dir not scanned")
			} else {
				log.Info().Int("count", len(models)).Str("dir", cfg.ModelsDir).Msg("local GGUF models")
			}
			sanity := a.mgr.SanityCheck()
			log.Info().Str("device", sanity.Device).Str("backends", sanity.Backends).Bool("llama_built", sanity.LlamaBuilt).Msg("runtime")

			for _, s := range splitCSV(preload) {
				if err := loadSlot(cmd, a.mgr, manager.SlotName(s)); err != nil {
					return err
				}
			}

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(a.mgr),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Msg("argmapd listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("graceful shutdown")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (env ARGMAP_ADDR)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated origins allowed by CORS (enables CORS)")
	cmd.Flags().StringVar(&preload, "preload", "", "Comma-separated slots to load before serving: language,embedding")
	cmd.Flags().DurationVar(&loadTimeout, "load-timeout", 0, "Upper bound for POST /models/* requests (0 = none)")
	return cmd
}
