package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"transcript-processor/pkg/analysis"
	"transcript-processor/pkg/api"
	"transcript-processor/pkg/config"
	"transcript-processor/pkg/cues"
	"transcript-processor/pkg/pipeline"
	"transcript-processor/pkg/repeats"
	"transcript-processor/pkg/storage"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Cue normalizer, optionally extended from a rules file so new cue
	// categories can be added without a rebuild.
	normalizer := cues.NewNormalizer()
	if cfg.CueRulesPath != "" {
		if err := normalizer.LoadRulesFile(cfg.CueRulesPath); err != nil {
			logger.WithError(err).Fatal("Failed to load cue rules file")
		}
		logger.WithField("path", cfg.CueRulesPath).Info("Loaded cue rule extensions")
	}

	memStore := storage.NewMemoryStore()
	diskStore, err := storage.NewDiskStore(cfg.StoragePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize disk storage")
	}
	defer diskStore.Close()

	analyzer := analysis.NewAnalyzer(logger, normalizer,
		repeats.NewDetector(cfg.Repeats.ContextRadius, cfg.Repeats.HighlightMarker))

	manager := pipeline.NewManager(cfg.Pipeline, logger, analyzer, memStore, diskStore)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to start pipeline")
	}

	handlers := api.NewHandlers(manager, memStore, diskStore, logger)
	router := mux.NewRouter()
	handlers.Register(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("address", cfg.Server.Address).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	manager.Stop()
	logger.Info("Server exited")
}
