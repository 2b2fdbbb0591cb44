// Package config loads process configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/akshita-as02/wanderwise/internal/database"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config is the full process configuration.
type Config struct {
	Port        string
	Environment string

	OTelEnabled     bool
	OTLPEndpoint    string
	OTelSampleRatio float64

	Gemini GeminiConfig

	StoreBackend string
	Database     database.Config
	RedisURL     string
	ItineraryTTL time.Duration

	PubSub PubSubConfig

	CORSAllowedOrigins []string
	RequireTLS         bool
	PublicBaseURL      string
}

// GeminiConfig configures the generation client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// PubSubConfig configures the job queue. An empty ProjectID disables it.
type PubSubConfig struct {
	ProjectID    string
	Topic        string
	Subscription string
}

// Enabled reports whether a Pub/Sub project is configured.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != ""
}

// Load reads a .env file from the working directory if one exists, then
// builds the configuration from the environment. Variables already set in the
// environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the environment only.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		Port:            getEnvOrDefault("APP_PORT", "8080"),
		Environment:     getEnvOrDefault("APP_ENV", "development"),
		OTelEnabled:     getBool("OTEL_ENABLED", false, &errs),
		OTLPEndpoint:    getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: getFloat("OTEL_SAMPLE_RATIO", 1, &errs),
		Gemini: GeminiConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
			Timeout: getDuration("GEMINI_TIMEOUT", 60*time.Second, &errs),
		},
		StoreBackend: strings.ToLower(getEnvOrDefault("STORE_BACKEND", StoreMemory)),
		Database:     database.ConfigFromEnv(),
		RedisURL:     getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		ItineraryTTL: getDuration("ITINERARY_TTL", 168*time.Hour, &errs),
		PubSub: PubSubConfig{
			ProjectID:    os.Getenv("PUBSUB_PROJECT_ID"),
			Topic:        getEnvOrDefault("PUBSUB_TOPIC", "itinerary-jobs"),
			Subscription: getEnvOrDefault("PUBSUB_SUBSCRIPTION", "itinerary-jobs-worker"),
		},
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		RequireTLS:         getBool("REQUIRE_TLS", false, &errs),
		PublicBaseURL:      strings.TrimRight(getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
	}

	switch cfg.StoreBackend {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND: unsupported backend %q", cfg.StoreBackend))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64, errs *[]error) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	if v <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: must be positive", key))
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
