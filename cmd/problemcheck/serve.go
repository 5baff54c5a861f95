package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghamerly/problem-style-check/internal/api"
	"github.com/ghamerly/problem-style-check/internal/pipeline"
	"github.com/ghamerly/problem-style-check/internal/registry"
	"github.com/ghamerly/problem-style-check/internal/speller"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the audit service",
	Long: `Run an HTTP service that queues audit runs over problem collections
on the server's filesystem and serves their findings and reports.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := loadConfig()
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	dicts, err := speller.Load(cfg.DictionariesDir, log)
	if err != nil {
		log.Warn("no spelling dictionaries, spelling checks disabled", "dir", cfg.DictionariesDir, "error", err)
		dicts = nil
	}
	src := registry.First(cfg.NameServiceURL, cfg.NameServiceKey, cfg.NameDB, cfg.NameListURL, cfg.NameCacheFile)

	orch := pipeline.NewOrchestrator(cfg, dicts, src, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting problemcheck", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}
