// Package main provides the entrypoint for the WanderWise API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api"
	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/config"
	"github.com/akshita-as02/wanderwise/internal/destination"
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
	const serviceName = "wanderwise-api"

	// Setup structured logging
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

	log.Info().
		Str("build_time", BuildTime).
		Str("environment", cfg.Environment).
		Msg("starting WanderWise API")

	ctx := context.Background()

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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if tp.Enabled() {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}
	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer store.Close()

	registry := resilience.NewRegistry()

	// The generator stays a nil interface without a key so every generation
	// reports a configuration error.
	var generator itinerary.Generator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(gemini.ClientConfig{
			APIKey:     cfg.Gemini.APIKey,
			BaseURL:    cfg.Gemini.BaseURL,
			Model:      cfg.Gemini.Model,
			HTTPClient: gemini.NewHTTPClient(cfg.Gemini.Timeout, registry, log),
			Registry:   registry,
			Metrics:    providerMetrics,
			Logger:     log,
		})
		log.Info().Str("model", cfg.Gemini.Model).Msg("generation client initialized")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - itinerary generation will fail")
	}

	var queue itinerary.JobQueue
	if cfg.PubSub.Enabled() {
		publisher, pubErr := worker.NewPublisher(ctx, worker.PublisherConfig{
			ProjectID: cfg.PubSub.ProjectID,
			Topic:     cfg.PubSub.Topic,
			Logger:    log,
		})
		if pubErr != nil {
			log.Fatal().Err(pubErr).Msg("failed to initialize job publisher")
		}
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("failed to close job publisher")
			}
		}()
		queue = publisher
		log.Info().Str("topic", cfg.PubSub.Topic).Msg("job publisher initialized")
	}

	service := itinerary.NewService(itinerary.ServiceConfig{
		Generator: generator,
		Store:     store.Store,
		Queue:     queue,
		Logger:    log,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		Service:            service,
		Catalog:            destination.NewCatalog(destination.Config{}),
		Registry:           registry,
		StoreBackend:       store.Backend,
		StorePing:          store.Ping,
		QueueEnabled:       queue != nil,
		PublicBaseURL:      cfg.PublicBaseURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequireTLS:         cfg.RequireTLS,
	})

	// Generation can take most of a minute, so the write timeout sits above
	// the upstream timeout.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}
