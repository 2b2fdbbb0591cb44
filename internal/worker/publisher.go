package worker

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// Publisher queues itinerary jobs on a Pub/Sub topic.
type Publisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// PublisherConfig holds configuration for the job publisher.
type PublisherConfig struct {
	ProjectID string
	Topic     string
	Logger    zerolog.Logger
}

// NewPublisher creates a Publisher for cfg.Topic.
func NewPublisher(ctx context.Context, cfg PublisherConfig) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &Publisher{
		client:    client,
		publisher: client.Publisher(cfg.Topic),
		topic:     cfg.Topic,
		logger:    cfg.Logger,
	}, nil
}

// Enqueue publishes job and waits for the server to accept it.
func (p *Publisher) Enqueue(ctx context.Context, job *itinerary.Job) error {
	data, err := EncodeJob(job)
	if err != nil {
		return err
	}

	msg := &pubsub.Message{Data: data}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		msg.Attributes = map[string]string{requestIDAttribute: requestID}
	}

	serverID, err := p.publisher.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return fmt.Errorf("publishing job %s: %w", job.ID, err)
	}

	p.logger.Debug().
		Str("job_id", job.ID).
		Str("topic", p.topic).
		Str("message_id", serverID).
		Msg("job published")
	return nil
}

// Close flushes pending messages and closes the client.
func (p *Publisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}
