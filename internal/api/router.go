// Package api provides the HTTP API for WanderWise.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api/handler"
	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/api/response"
	"github.com/akshita-as02/wanderwise/internal/destination"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Service  *itinerary.Service
	Catalog  *destination.Catalog
	Registry *resilience.Registry

	// StoreBackend and StorePing feed the ops endpoints.
	StoreBackend string
	StorePing    handler.Pinger

	// QueueEnabled reports whether Pub/Sub jobs are wired into Service.
	QueueEnabled bool

	// PublicBaseURL is the externally reachable origin used in PDF share codes.
	PublicBaseURL string

	// CORSAllowedOrigins defaults to every origin.
	CORSAllowedOrigins []string

	RequireTLS bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "wanderwise-api"
	}
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(cors.New(cors.Options{           // Browser UI on another origin
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Location", "Retry-After", "Content-Disposition"},
		MaxAge:         600,
	}).Handler)
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement behind the load balancer
	r.Use(middleware.ContentTypeJSON)            // JSON content type

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "no route for "+r.URL.Path)
	})

	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:             cfg.Version,
		BuildTime:           cfg.BuildTime,
		Registry:            cfg.Registry,
		StoreBackend:        cfg.StoreBackend,
		StorePing:           cfg.StorePing,
		GeneratorConfigured: cfg.Service.Configured(),
		QueueEnabled:        cfg.QueueEnabled,
	})
	itineraryHandler := handler.NewItineraryHandler(cfg.Service, cfg.PublicBaseURL, cfg.Logger)
	jobHandler := handler.NewJobHandler(cfg.Service)
	destinationHandler := handler.NewDestinationHandler(cfg.Catalog)
	metadataHandler := handler.NewMetadataHandler()

	// Create rate limit middleware for different endpoint categories
	generationRateLimit := middleware.RateLimitByIP(middleware.GenerationRateLimit) // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)   // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)     // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		r.With(standardRateLimit).Get("/destinations/popular", destinationHandler.ListPopular)

		r.Route("/itineraries", func(r chi.Router) {
			r.With(generationRateLimit, middleware.RequireJSON).Post("/", itineraryHandler.GenerateItinerary)
			r.With(standardRateLimit).Get("/", itineraryHandler.ListItineraries)

			r.Route("/{id}", func(r chi.Router) {
				r.With(standardRateLimit).Get("/", itineraryHandler.GetItinerary)
				r.With(expensiveRateLimit).Get("/pdf", itineraryHandler.ExportPDF)
				r.With(generationRateLimit, middleware.RequireJSON).Post("/enhance", itineraryHandler.EnhanceItinerary)
			})
		})

		r.Route("/itinerary-jobs", func(r chi.Router) {
			r.With(generationRateLimit, middleware.RequireJSON).Post("/", jobHandler.SubmitJob)
			r.With(standardRateLimit).Get("/{id}", jobHandler.GetJob)
		})
	})

	return r
}
