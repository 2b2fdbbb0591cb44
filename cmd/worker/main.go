// Package main provides the entrypoint for the WanderWise job worker.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api/handler"
	"github.com/akshita-as02/wanderwise/internal/config"
	"github.com/akshita-as02/wanderwise/internal/gemini"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
	"github.com/akshita-as02/wanderwise/internal/storage"
	"github.com/akshita-as02/wanderwise/internal/telemetry"
	"github.com/akshita-as02/wanderwise/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wanderwise-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.PubSub.Enabled() {
		log.Fatal().Msg("PUBSUB_PROJECT_ID is required for the worker")
	}
	if cfg.StoreBackend == config.StoreMemory {
		log.Warn().Msg("worker uses an in-memory store; the API will not see job results")
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("subscription", cfg.PubSub.Subscription).
		Msg("starting WanderWise worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer store.Close()

	registry := resilience.NewRegistry()

	var generator itinerary.Generator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(gemini.ClientConfig{
			APIKey:     cfg.Gemini.APIKey,
			BaseURL:    cfg.Gemini.BaseURL,
			Model:      cfg.Gemini.Model,
			HTTPClient: gemini.NewHTTPClient(cfg.Gemini.Timeout, registry, log),
			Registry:   registry,
			Logger:     log,
		})
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - every job will fail with a configuration error")
	}

	service := itinerary.NewService(itinerary.ServiceConfig{
		Generator: generator,
		Store:     store.Store,
		Logger:    log,
	})

	subscriber, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        cfg.PubSub.ProjectID,
		SubscriptionName: cfg.PubSub.Subscription,
		Runner:           service,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pubsub handler")
	}
	defer func() {
		if closeErr := subscriber.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close pubsub client")
		}
	}()

	// The worker exposes liveness and readiness for Cloud Run.
	ops := handler.NewOpsHandler(handler.OpsConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Registry:            registry,
		StoreBackend:        store.Backend,
		StorePing:           store.Ping,
		GeneratorConfigured: generator != nil,
	})
	r := chi.NewRouter()
	r.Get("/health", ops.HealthCheck)
	r.Get("/ready", ops.ReadinessCheck)
	r.Get("/status", ops.SystemStatus)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	receiveErr := make(chan error, 1)
	go func() {
		receiveErr <- subscriber.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down worker")
	case err := <-receiveErr:
		if err != nil {
			log.Error().Err(err).Msg("pubsub receive stopped")
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
