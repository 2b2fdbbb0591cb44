package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// JobRunner executes a stored job by ID.
type JobRunner interface {
	RunJob(ctx context.Context, id string) (*itinerary.Job, error)
}

// Processor handles decoded job messages independently of the transport.
type Processor struct {
	runner JobRunner
	logger zerolog.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(runner JobRunner, logger zerolog.Logger) *Processor {
	return &Processor{runner: runner, logger: logger}
}

// Handle processes one message. A non-nil error means the job record could
// not be updated and the message should be redelivered; every other outcome,
// including a failed generation or a malformed payload, is final.
func (p *Processor) Handle(ctx context.Context, data []byte, attributes map[string]string) error {
	logger := p.logger
	if requestID := attributes[requestIDAttribute]; requestID != "" {
		ctx = middleware.WithRequestID(ctx, requestID)
		logger = logger.With().Str("request_id", requestID).Logger()
	}

	msg, err := DecodeJob(data)
	if err != nil {
		logger.Error().Err(err).Msg("dropping malformed job message")
		return nil
	}

	switch msg.JobType {
	case JobTypeGenerateItinerary:
		return p.generate(ctx, logger.With().Str("job_id", msg.JobID).Logger(), msg.JobID)
	case JobTypeHealthCheck:
		logger.Info().Msg("health check received")
		return nil
	default:
		logger.Warn().Str("job_type", msg.JobType).Msg("unknown job type")
		return nil
	}
}

func (p *Processor) generate(ctx context.Context, logger zerolog.Logger, jobID string) error {
	start := time.Now()

	job, err := p.runner.RunJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, itinerary.ErrJobNotFound) {
			logger.Warn().Msg("job no longer exists")
			return nil
		}
		return fmt.Errorf("running job %s: %w", jobID, err)
	}

	event := logger.Info()
	if job.Status == itinerary.JobStatusFailed {
		event = logger.Warn().Str("error_type", string(job.ErrorType)).Str("error", job.ErrorDetail)
	}
	event.
		Str("status", string(job.Status)).
		Str("itinerary_id", job.ItineraryID).
		Dur("duration", time.Since(start)).
		Msg("job finished")
	return nil
}

// PubSubHandler receives job messages from a Pub/Sub subscription.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	processor        *Processor
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Runner           JobRunner
	Logger           zerolog.Logger

	// MaxOutstandingMessages bounds concurrent generations. Default: 4.
	MaxOutstandingMessages int
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	maxOutstanding := cfg.MaxOutstandingMessages
	if maxOutstanding <= 0 {
		maxOutstanding = 4
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = maxOutstanding
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		processor:        NewProcessor(cfg.Runner, cfg.Logger),
		logger:           cfg.Logger,
	}, nil
}

// Start processes messages until ctx is cancelled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.logger.Debug().
			Str("message_id", msg.ID).
			Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
			Msg("received pubsub message")

		if err := h.processor.Handle(ctx, msg.Data, msg.Attributes); err != nil {
			h.logger.Error().Err(err).Str("message_id", msg.ID).Msg("job failed")
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}
