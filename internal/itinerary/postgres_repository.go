package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS itineraries (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		destination  TEXT NOT NULL,
		duration     INTEGER NOT NULL,
		total_budget DOUBLE PRECISION NOT NULL,
		payload      JSONB NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS itineraries_created_at_idx ON itineraries (created_at DESC, id DESC);

	CREATE TABLE IF NOT EXISTS itinerary_jobs (
		id           TEXT PRIMARY KEY,
		status       TEXT NOT NULL,
		preferences  JSONB NOT NULL,
		itinerary_id TEXT,
		error_type   TEXT,
		error_detail TEXT,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	);
`

// PostgresRepository is a PostgreSQL implementation of Store. Itineraries are
// stored whole as JSONB next to the columns used for listing.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("creating itinerary schema: %w", err)
	}
	return nil
}

// Save inserts an itinerary.
func (r *PostgresRepository) Save(ctx context.Context, itin *Itinerary) error {
	payload, err := json.Marshal(itin)
	if err != nil {
		return fmt.Errorf("encoding itinerary: %w", err)
	}

	query := `
		INSERT INTO itineraries (id, title, destination, duration, total_budget, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query,
		itin.ID,
		itin.Title,
		itin.Destination,
		itin.Duration,
		itin.TotalBudget,
		payload,
		itin.CreatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("saving itinerary %s: %w", itin.ID, ErrItineraryExists)
	}
	return nil
}

// Get retrieves an itinerary by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Itinerary, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `SELECT payload FROM itineraries WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}

	var itin Itinerary
	if err := json.Unmarshal(payload, &itin); err != nil {
		return nil, fmt.Errorf("decoding itinerary %s: %w", id, err)
	}
	return &itin, nil
}

// List retrieves itinerary summaries, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := normalizeLimit(opts.Limit)
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	var (
		rows pgx.Rows
		err  error
	)
	if opts.Cursor == "" {
		rows, err = r.pool.Query(ctx, `
			SELECT id, title, destination, duration, total_budget, created_at
			FROM itineraries
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`, fetchLimit)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT i.id, i.title, i.destination, i.duration, i.total_budget, i.created_at
			FROM itineraries i, itineraries c
			WHERE c.id = $1 AND (i.created_at, i.id) < (c.created_at, c.id)
			ORDER BY i.created_at DESC, i.id DESC
			LIMIT $2
		`, opts.Cursor, fetchLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.Destination, &s.Duration, &s.TotalBudget, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{Items: summaries}
	if len(summaries) > limit {
		result.Items = summaries[:limit]
		result.NextCursor = summaries[limit-1].ID
	}
	return result, nil
}

// CreateJob stores a new job.
func (r *PostgresRepository) CreateJob(ctx context.Context, job *Job) error {
	prefs, err := json.Marshal(job.Preferences)
	if err != nil {
		return fmt.Errorf("encoding job preferences: %w", err)
	}

	query := `
		INSERT INTO itinerary_jobs (
			id, status, preferences, itinerary_id, error_type, error_detail, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		job.ID,
		string(job.Status),
		prefs,
		nullable(job.ItineraryID),
		nullable(string(job.ErrorType)),
		nullable(job.ErrorDetail),
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetJob retrieves a job by ID.
func (r *PostgresRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	query := `
		SELECT id, status, preferences, itinerary_id, error_type, error_detail, created_at, updated_at
		FROM itinerary_jobs
		WHERE id = $1
	`

	var (
		job                                 Job
		status                              string
		prefs                               []byte
		itineraryID, errorType, errorDetail *string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&status,
		&prefs,
		&itineraryID,
		&errorType,
		&errorDetail,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(prefs, &job.Preferences); err != nil {
		return nil, fmt.Errorf("decoding job preferences: %w", err)
	}
	job.Status = JobStatus(status)
	job.ItineraryID = deref(itineraryID)
	job.ErrorType = ErrorType(deref(errorType))
	job.ErrorDetail = deref(errorDetail)
	return &job, nil
}

// UpdateJob replaces the mutable job columns.
func (r *PostgresRepository) UpdateJob(ctx context.Context, job *Job) error {
	query := `
		UPDATE itinerary_jobs SET
			status = $2,
			itinerary_id = $3,
			error_type = $4,
			error_detail = $5,
			updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		job.ID,
		string(job.Status),
		nullable(job.ItineraryID),
		nullable(string(job.ErrorType)),
		nullable(job.ErrorDetail),
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ensure PostgresRepository implements Store interface.
var _ Store = (*PostgresRepository)(nil)
