package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/akshita-as02/wanderwise/internal/itinerary"

// MaxFeedbackLength bounds enhancement feedback, in characters.
const MaxFeedbackLength = 1000

// ErrQueueUnavailable is returned by SubmitJob when no job queue is configured.
var ErrQueueUnavailable = errors.New("itinerary job queue is not configured")

// Generator is the generative text service. It receives the system and user
// instruction blocks and returns the raw response text.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// JobQueue hands jobs to the background worker.
type JobQueue interface {
	Enqueue(ctx context.Context, job *Job) error
}

// ServiceConfig holds dependencies for the Service.
type ServiceConfig struct {
	// Generator is nil when the generative service has no credential; every
	// generation then fails with *ConfigurationError.
	Generator Generator

	// CredentialSetting names the missing setting in configuration errors.
	CredentialSetting string

	// Assembler defaults to NewAssembler(AssemblerConfig{}).
	Assembler *Assembler

	// Store persists itineraries and jobs (required).
	Store Store

	// Queue is optional; without it SubmitJob returns ErrQueueUnavailable.
	Queue JobQueue

	Logger zerolog.Logger
}

// Service runs the generation pipeline and manages stored itineraries.
type Service struct {
	generator         Generator
	credentialSetting string
	assembler         *Assembler
	store             Store
	queue             JobQueue
	logger            zerolog.Logger
	tracer            trace.Tracer
}

// NewService creates a new itinerary service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Assembler == nil {
		cfg.Assembler = NewAssembler(AssemblerConfig{})
	}
	if cfg.CredentialSetting == "" {
		cfg.CredentialSetting = "GEMINI_API_KEY"
	}
	return &Service{
		generator:         cfg.Generator,
		credentialSetting: cfg.CredentialSetting,
		assembler:         cfg.Assembler,
		store:             cfg.Store,
		queue:             cfg.Queue,
		logger:            cfg.Logger,
		tracer:            otel.Tracer(tracerName),
	}
}

// Configured reports whether the generative service has a credential.
func (s *Service) Configured() bool {
	return s.generator != nil
}

// Generate validates prefs, asks the generative service for a plan and
// assembles the result. The itinerary is stored before it is returned; a
// failed write is reported as *UnknownError.
func (s *Service) Generate(ctx context.Context, prefs TripPreferences) (*Itinerary, error) {
	if !s.Configured() {
		return nil, &ConfigurationError{Setting: s.credentialSetting}
	}
	if err := Validate(prefs); err != nil {
		return nil, err
	}

	prompts := BuildPrompts(prefs, prefs.NumberOfDays)
	return s.run(ctx, "itinerary.generate", prefs, prefs.NumberOfDays, prompts)
}

// Enhance reworks a stored itinerary according to feedback and stores the
// result as a new itinerary.
func (s *Service) Enhance(ctx context.Context, id, feedback string) (*Itinerary, error) {
	if !s.Configured() {
		return nil, &ConfigurationError{Setting: s.credentialSetting}
	}

	feedback = strings.TrimSpace(feedback)
	switch {
	case feedback == "":
		return nil, &ValidationError{Errors: []FieldError{{Field: "feedback", Message: "is required", Code: "required"}}}
	case utf8.RuneCountInString(feedback) > MaxFeedbackLength:
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   "feedback",
			Message: fmt.Sprintf("must be at most %d characters", MaxFeedbackLength),
			Code:    "max",
		}}}
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prompts, err := BuildEnhancementPrompts(current, feedback)
	if err != nil {
		return nil, &UnknownError{Err: err}
	}

	days := current.Duration
	if days < 1 {
		days = current.Preferences.NumberOfDays
	}
	return s.run(ctx, "itinerary.enhance", current.Preferences, days, prompts)
}

// Get retrieves a stored itinerary.
func (s *Service) Get(ctx context.Context, id string) (*Itinerary, error) {
	return s.store.Get(ctx, id)
}

// List retrieves stored itinerary summaries, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return s.store.List(ctx, opts)
}

func (s *Service) run(ctx context.Context, op string, prefs TripPreferences, days int, prompts Prompts) (*Itinerary, error) {
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("itinerary.destination", prefs.Destination),
		attribute.Int("itinerary.days", days),
	))
	defer span.End()

	logger := s.logger.With().
		Str("operation", op).
		Str("destination", prefs.Destination).
		Int("days", days).
		Logger()

	start := time.Now()
	itin, err := s.pipeline(ctx, logger, prefs, days, prompts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(TypeOf(err)))
		logger.Error().
			Err(err).
			Str("error_type", string(TypeOf(err))).
			Dur("duration", time.Since(start)).
			Msg("itinerary generation failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("itinerary.id", itin.ID))
	if err := s.store.Save(ctx, itin); err != nil {
		err = &UnknownError{Err: fmt.Errorf("storing itinerary %s: %w", itin.ID, err)}
		span.RecordError(err)
		span.SetStatus(codes.Error, string(ErrorTypeUnknown))
		logger.Error().Err(err).Str("itinerary_id", itin.ID).Msg("failed to store itinerary")
		return nil, err
	}

	logger.Info().
		Str("itinerary_id", itin.ID).
		Int("day_plans", len(itin.Days)).
		Dur("duration", time.Since(start)).
		Msg("itinerary generated")
	return itin, nil
}

func (s *Service) pipeline(ctx context.Context, logger zerolog.Logger, prefs TripPreferences, days int, prompts Prompts) (*Itinerary, error) {
	raw, err := s.generator.Generate(ctx, prompts.System, prompts.User)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, cfgErr
		}
		return nil, &GenerationError{Err: err}
	}

	_, normSpan := s.tracer.Start(ctx, "itinerary.normalize")
	doc, err := Normalize(raw)
	normSpan.End()
	if err != nil {
		logger.Warn().Int("raw_length", len(raw)).Msg("generative response is not valid JSON")
		return nil, err
	}

	_, asmSpan := s.tracer.Start(ctx, "itinerary.assemble")
	itin, err := s.assembler.Assemble(prefs, days, doc)
	asmSpan.End()
	if err != nil {
		return nil, err
	}

	if len(itin.Days) != days {
		logger.Warn().
			Int("requested_days", days).
			Int("returned_days", len(itin.Days)).
			Msg("generated day count differs from request")
	}
	return itin, nil
}

// SubmitJob validates prefs, records a pending job and queues it.
func (s *Service) SubmitJob(ctx context.Context, prefs TripPreferences) (*Job, error) {
	if s.queue == nil {
		return nil, ErrQueueUnavailable
	}
	if err := Validate(prefs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &Job{
		ID:          "job_" + uuid.New().String()[:22],
		Status:      JobStatusPending,
		Preferences: prefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		job.Status = JobStatusFailed
		job.ErrorType = ErrorTypeUnknown
		job.ErrorDetail = "failed to queue job"
		job.UpdatedAt = time.Now().UTC()
		if updateErr := s.store.UpdateJob(ctx, job); updateErr != nil {
			s.logger.Error().Err(updateErr).Str("job_id", job.ID).Msg("failed to mark job as failed")
		}
		return nil, fmt.Errorf("queueing job: %w", err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("destination", prefs.Destination).Msg("itinerary job queued")
	return job, nil
}

// GetJob retrieves a job.
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.store.GetJob(ctx, id)
}

// RunJob executes a queued job and records its outcome. Jobs already in a
// final state are left untouched. The returned error only reports failures
// to load or update the job record; generation failures are stored on the job.
func (s *Service) RunJob(ctx context.Context, id string) (*Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.Done() {
		return job, nil
	}

	job.Status = JobStatusRunning
	job.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("marking job running: %w", err)
	}

	itin, genErr := s.Generate(ctx, job.Preferences)
	if genErr != nil {
		job.Status = JobStatusFailed
		job.ErrorType = TypeOf(genErr)
		job.ErrorDetail = genErr.Error()
	} else {
		job.Status = JobStatusSucceeded
		job.ItineraryID = itin.ID
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job outcome: %w", err)
	}
	return job, nil
}
