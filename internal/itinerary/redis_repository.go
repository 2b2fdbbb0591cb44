package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisItineraryPrefix = "wanderwise:itinerary:"
	redisJobPrefix       = "wanderwise:job:"
	redisIndexKey        = "wanderwise:itineraries:by_created"

	// DefaultRedisTTL bounds how long itineraries and jobs are kept.
	DefaultRedisTTL = 7 * 24 * time.Hour
)

// RedisRepository is a Redis implementation of Store. Values are JSON strings
// with a TTL; a sorted set scored by creation time backs List.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis store. A non-positive ttl uses DefaultRedisTTL.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisRepository{client: client, ttl: ttl}
}

// Save stores an itinerary and indexes it by creation time.
func (r *RedisRepository) Save(ctx context.Context, itin *Itinerary) error {
	payload, err := json.Marshal(itin)
	if err != nil {
		return fmt.Errorf("encoding itinerary: %w", err)
	}

	ok, err := r.client.SetNX(ctx, redisItineraryPrefix+itin.ID, payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("saving itinerary %s: %w", itin.ID, err)
	}
	if !ok {
		return fmt.Errorf("saving itinerary %s: %w", itin.ID, ErrItineraryExists)
	}

	err = r.client.ZAdd(ctx, redisIndexKey, redis.Z{
		Score:  float64(itin.CreatedAt.UnixMilli()),
		Member: itin.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("indexing itinerary %s: %w", itin.ID, err)
	}
	return nil
}

// Get retrieves an itinerary by ID.
func (r *RedisRepository) Get(ctx context.Context, id string) (*Itinerary, error) {
	data, err := r.client.Get(ctx, redisItineraryPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}

	var itin Itinerary
	if err := json.Unmarshal(data, &itin); err != nil {
		return nil, fmt.Errorf("decoding itinerary %s: %w", id, err)
	}
	return &itin, nil
}

// List retrieves itinerary summaries, newest first. Index entries whose
// itinerary has expired are skipped and pruned once the page is built, so
// ranks stay stable while the index is walked.
func (r *RedisRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := normalizeLimit(opts.Limit)

	var start int64
	if opts.Cursor != "" {
		rank, err := r.client.ZRevRank(ctx, redisIndexKey, opts.Cursor).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return &ListResult{}, nil
			}
			return nil, err
		}
		start = rank + 1
	}

	var expired []any
	summaries := make([]Summary, 0, limit+1)
	for len(summaries) <= limit {
		ids, err := r.client.ZRevRange(ctx, redisIndexKey, start, start+int64(limit)).Result()
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			break
		}
		start += int64(len(ids))

		for _, id := range ids {
			itin, err := r.Get(ctx, id)
			if errors.Is(err, ErrItineraryNotFound) {
				expired = append(expired, id)
				continue
			}
			if err != nil {
				return nil, err
			}
			summaries = append(summaries, itin.Summarize())
			if len(summaries) > limit {
				break
			}
		}
	}

	if len(expired) > 0 {
		// Best effort; a later List retries the pruning.
		_ = r.client.ZRem(ctx, redisIndexKey, expired...).Err()
	}

	result := &ListResult{Items: summaries}
	if len(summaries) > limit {
		result.Items = summaries[:limit]
		result.NextCursor = summaries[limit-1].ID
	}
	return result, nil
}

// CreateJob stores a new job. It fails if the ID is already taken.
func (r *RedisRepository) CreateJob(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job: %w", err)
	}

	ok, err := r.client.SetNX(ctx, redisJobPrefix+job.ID, payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (r *RedisRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	data, err := r.client.Get(ctx, redisJobPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decoding job %s: %w", id, err)
	}
	return &job, nil
}

// UpdateJob replaces an existing job, keeping its TTL.
func (r *RedisRepository) UpdateJob(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job: %w", err)
	}

	ok, err := r.client.SetXX(ctx, redisJobPrefix+job.ID, payload, redis.KeepTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrJobNotFound
	}
	return nil
}

// Ensure RedisRepository implements Store interface.
var _ Store = (*RedisRepository)(nil)
