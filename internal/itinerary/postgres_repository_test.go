package itinerary_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// newPostgresRepository connects to WANDERWISE_TEST_DATABASE_URL and creates
// the tables in a fresh schema that is dropped when the test ends.
func newPostgresRepository(t *testing.T) *itinerary.PostgresRepository {
	t.Helper()

	dsn := os.Getenv("WANDERWISE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("WANDERWISE_TEST_DATABASE_URL is not set; skipping Postgres integration test")
	}
	ctx := context.Background()

	admin, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	schema := fmt.Sprintf("wanderwise_test_%d", time.Now().UnixNano())
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := itinerary.NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestPostgresRepository_SaveGet(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, itinerary.ErrItineraryNotFound)

	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-1", fixedNow)))

	got, err := repo.Get(ctx, "wanderwise-1")
	require.NoError(t, err)
	assert.Equal(t, "Trip wanderwise-1", got.Title)
	assert.Equal(t, "Book ahead", got.Days[0].Activities[0].Tips[0])

	second := storedItinerary("wanderwise-1", fixedNow)
	second.Destination = "Tokyo"
	assert.ErrorIs(t, repo.Save(ctx, second), itinerary.ErrItineraryExists)

	got, err = repo.Get(ctx, "wanderwise-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)
}

func TestPostgresRepository_ListCursorBreaksTimestampTies(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	// Three itineraries share a timestamp, so paging relies on the id.
	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-a", fixedNow)))
	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-b", fixedNow)))
	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-c", fixedNow)))
	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-d", fixedNow.Add(time.Minute))))
	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-0", fixedNow.Add(-time.Minute))))

	var seen []string
	cursor := ""
	for pages := 0; pages < 5; pages++ {
		page, err := repo.List(ctx, itinerary.ListOptions{Limit: 2, Cursor: cursor})
		require.NoError(t, err)
		seen = append(seen, summaryIDs(page.Items)...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, []string{
		"wanderwise-d",
		"wanderwise-c",
		"wanderwise-b",
		"wanderwise-a",
		"wanderwise-0",
	}, seen)

	unknown, err := repo.List(ctx, itinerary.ListOptions{Cursor: "wanderwise-404"})
	require.NoError(t, err)
	assert.Empty(t, unknown.Items)
}

func TestPostgresRepository_Jobs(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	job := &itinerary.Job{
		ID:          "job_1",
		Status:      itinerary.JobStatusPending,
		Preferences: tokyoPreferences(2),
		CreatedAt:   fixedNow.UTC(),
		UpdatedAt:   fixedNow.UTC(),
	}
	require.NoError(t, repo.CreateJob(ctx, job))
	assert.Error(t, repo.CreateJob(ctx, job), "job IDs are unique")

	_, err := repo.GetJob(ctx, "job_missing")
	assert.ErrorIs(t, err, itinerary.ErrJobNotFound)

	job.Status = itinerary.JobStatusFailed
	job.ErrorType = itinerary.ErrorTypeParsing
	job.ErrorDetail = "not JSON"
	job.UpdatedAt = fixedNow.Add(time.Minute).UTC()
	require.NoError(t, repo.UpdateJob(ctx, job))

	got, err := repo.GetJob(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, itinerary.JobStatusFailed, got.Status)
	assert.Equal(t, itinerary.ErrorTypeParsing, got.ErrorType)
	assert.Equal(t, "not JSON", got.ErrorDetail)
	assert.Empty(t, got.ItineraryID)
	assert.Equal(t, tokyoPreferences(2), got.Preferences)
	assert.True(t, got.UpdatedAt.Equal(job.UpdatedAt))

	missing := *job
	missing.ID = "job_missing"
	assert.ErrorIs(t, repo.UpdateJob(ctx, &missing), itinerary.ErrJobNotFound)
}
