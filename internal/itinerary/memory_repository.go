package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Store.
// Data is lost on restart; production deployments use Postgres or Redis.
type InMemoryRepository struct {
	mu          sync.RWMutex
	itineraries map[string]*Itinerary
	jobs        map[string]*Job
}

// NewInMemoryRepository creates a new in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		itineraries: make(map[string]*Itinerary),
		jobs:        make(map[string]*Job),
	}
}

// Save stores a deep copy of itin.
func (r *InMemoryRepository) Save(_ context.Context, itin *Itinerary) error {
	cpy, err := cloneItinerary(itin)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.itineraries[itin.ID]; exists {
		return fmt.Errorf("saving itinerary %s: %w", itin.ID, ErrItineraryExists)
	}
	r.itineraries[itin.ID] = cpy
	return nil
}

// Get retrieves an itinerary by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Itinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itin, ok := r.itineraries[id]
	if !ok {
		return nil, ErrItineraryNotFound
	}
	return cloneItinerary(itin)
}

// List retrieves itinerary summaries, newest first.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	summaries := make([]Summary, 0, len(r.itineraries))
	for _, itin := range r.itineraries {
		summaries = append(summaries, itin.Summarize())
	}
	r.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	start := 0
	if opts.Cursor != "" {
		start = len(summaries)
		for i, s := range summaries {
			if s.ID == opts.Cursor {
				start = i + 1
				break
			}
		}
	}
	summaries = summaries[start:]

	limit := normalizeLimit(opts.Limit)
	result := &ListResult{Items: summaries}
	if len(summaries) > limit {
		result.Items = summaries[:limit]
		result.NextCursor = summaries[limit-1].ID
	}
	return result, nil
}

// CreateJob stores a new job.
func (r *InMemoryRepository) CreateJob(_ context.Context, job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	cpy := *job
	r.jobs[job.ID] = &cpy
	return nil
}

// GetJob retrieves a job by ID.
func (r *InMemoryRepository) GetJob(_ context.Context, id string) (*Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	cpy := *job
	return &cpy, nil
}

// UpdateJob replaces the stored job state.
func (r *InMemoryRepository) UpdateJob(_ context.Context, job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	cpy := *job
	r.jobs[job.ID] = &cpy
	return nil
}

// cloneItinerary deep-copies through JSON so callers never share slices with the store.
func cloneItinerary(itin *Itinerary) (*Itinerary, error) {
	data, err := json.Marshal(itin)
	if err != nil {
		return nil, fmt.Errorf("encoding itinerary: %w", err)
	}
	var cpy Itinerary
	if err := json.Unmarshal(data, &cpy); err != nil {
		return nil, fmt.Errorf("decoding itinerary: %w", err)
	}
	return &cpy, nil
}

// Ensure InMemoryRepository implements Store interface.
var _ Store = (*InMemoryRepository)(nil)
