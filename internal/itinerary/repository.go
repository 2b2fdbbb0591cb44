package itinerary

import (
	"context"
	"time"
)

// DefaultListLimit is the page size used when ListOptions.Limit is not set.
const DefaultListLimit = 20

// ListOptions contains options for listing itineraries.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains one page of itinerary summaries, newest first.
type ListResult struct {
	Items      []Summary
	NextCursor string
}

// Repository defines persistence for generated itineraries.
type Repository interface {
	// Save stores a new itinerary. Itineraries are immutable once stored.
	// Returns ErrItineraryExists if the ID is already taken.
	Save(ctx context.Context, itin *Itinerary) error

	// Get retrieves an itinerary by ID.
	// Returns ErrItineraryNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Itinerary, error)

	// List retrieves itinerary summaries with cursor pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

// JobStatus is the lifecycle state of an asynchronous generation job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusSucceeded JobStatus = "SUCCEEDED"
	JobStatusFailed    JobStatus = "FAILED"
)

// Done reports whether the job reached a final state.
func (s JobStatus) Done() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// Job is an asynchronous itinerary generation request.
type Job struct {
	ID          string          `json:"id"`
	Status      JobStatus       `json:"status"`
	Preferences TripPreferences `json:"preferences"`
	ItineraryID string          `json:"itineraryId,omitempty"`
	ErrorType   ErrorType       `json:"errorType,omitempty"`
	ErrorDetail string          `json:"errorDetail,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// JobRepository defines persistence for generation jobs.
type JobRepository interface {
	// CreateJob stores a new job.
	CreateJob(ctx context.Context, job *Job) error

	// GetJob retrieves a job by ID.
	// Returns ErrJobNotFound if it doesn't exist.
	GetJob(ctx context.Context, id string) (*Job, error)

	// UpdateJob replaces the stored state of an existing job.
	// Returns ErrJobNotFound if it doesn't exist.
	UpdateJob(ctx context.Context, job *Job) error
}

// Store combines itinerary and job persistence.
type Store interface {
	Repository
	JobRepository
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
