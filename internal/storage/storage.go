// Package storage opens the itinerary store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/cache"
	"github.com/akshita-as02/wanderwise/internal/config"
	"github.com/akshita-as02/wanderwise/internal/database"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// Handle is an opened store plus the hooks the process needs around it.
type Handle struct {
	Store   itinerary.Store
	Backend string

	// Ping checks backend connectivity.
	Ping func(ctx context.Context) error

	close func()
}

// Close releases backend connections.
func (h *Handle) Close() {
	if h.close != nil {
		h.close()
	}
}

// Open connects the backend named by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Handle, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory, "":
		logger.Warn().Msg("using in-memory store; itineraries are lost on restart")
		return &Handle{
			Store:   itinerary.NewInMemoryRepository(),
			Backend: config.StoreMemory,
			Ping:    func(context.Context) error { return nil },
		}, nil

	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		repo := itinerary.NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensuring schema: %w", err)
		}
		logger.Info().
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.Database).
			Msg("database connected")
		return &Handle{
			Store:   repo,
			Backend: config.StorePostgres,
			Ping:    pool.Ping,
			close:   pool.Close,
		}, nil

	case config.StoreRedis:
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info().Dur("ttl", cfg.ItineraryTTL).Msg("redis connected")
		return &Handle{
			Store:   itinerary.NewRedisRepository(client, cfg.ItineraryTTL),
			Backend: config.StoreRedis,
			Ping: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			close: func() {
				if err := client.Close(); err != nil {
					logger.Warn().Err(err).Msg("closing redis client")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
