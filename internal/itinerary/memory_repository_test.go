package itinerary_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

func storedItinerary(id string, createdAt time.Time) *itinerary.Itinerary {
	return &itinerary.Itinerary{
		ID:          id,
		Title:       "Trip " + id,
		Destination: "Paris",
		Duration:    1,
		TotalBudget: 500,
		Days: []itinerary.DayPlan{{
			Day:        1,
			Theme:      "Museums",
			Activities: []itinerary.Activity{{ID: "day-1-activity-0", Name: "Louvre", Tips: []string{"Book ahead"}}},
		}},
		CreatedAt: createdAt,
	}
}

func TestInMemoryRepository_SaveGet(t *testing.T) {
	repo := itinerary.NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, itinerary.ErrItineraryNotFound)

	itin := storedItinerary("wanderwise-1", fixedNow)
	require.NoError(t, repo.Save(ctx, itin))

	// Mutating the caller's copy does not change the stored one.
	itin.Days[0].Activities[0].Tips[0] = "changed"

	got, err := repo.Get(ctx, "wanderwise-1")
	require.NoError(t, err)
	assert.Equal(t, "Book ahead", got.Days[0].Activities[0].Tips[0])

	got.Title = "also changed"
	again, err := repo.Get(ctx, "wanderwise-1")
	require.NoError(t, err)
	assert.Equal(t, "Trip wanderwise-1", again.Title)
}

func TestInMemoryRepository_SaveRejectsDuplicateID(t *testing.T) {
	repo := itinerary.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedItinerary("wanderwise-1", fixedNow)))
	second := storedItinerary("wanderwise-1", fixedNow)
	second.Title = "Second"
	assert.ErrorIs(t, repo.Save(ctx, second), itinerary.ErrItineraryExists)

	got, err := repo.Get(ctx, "wanderwise-1")
	require.NoError(t, err)
	assert.Equal(t, "Trip wanderwise-1", got.Title)
}

func summaryIDs(items []itinerary.Summary) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestInMemoryRepository_List(t *testing.T) {
	repo := itinerary.NewInMemoryRepository()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("wanderwise-%d", i)
		require.NoError(t, repo.Save(ctx, storedItinerary(id, fixedNow.Add(time.Duration(i)*time.Minute))))
	}

	first, err := repo.List(ctx, itinerary.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "wanderwise-5", first.Items[0].ID)
	assert.Equal(t, "wanderwise-4", first.Items[1].ID)
	assert.Equal(t, "wanderwise-4", first.NextCursor)
	assert.Equal(t, "Paris", first.Items[0].Destination)

	second, err := repo.List(ctx, itinerary.ListOptions{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "wanderwise-3", second.Items[0].ID)

	last, err := repo.List(ctx, itinerary.ListOptions{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Empty(t, last.NextCursor)

	all, err := repo.List(ctx, itinerary.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 5)

	unknown, err := repo.List(ctx, itinerary.ListOptions{Cursor: "wanderwise-404"})
	require.NoError(t, err)
	assert.Empty(t, unknown.Items)
}

func TestInMemoryRepository_Jobs(t *testing.T) {
	repo := itinerary.NewInMemoryRepository()
	ctx := context.Background()

	job := &itinerary.Job{ID: "job_1", Status: itinerary.JobStatusPending, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	require.NoError(t, repo.CreateJob(ctx, job))
	assert.Error(t, repo.CreateJob(ctx, job), "duplicate IDs are rejected")

	job.Status = itinerary.JobStatusSucceeded
	job.ItineraryID = "wanderwise-1"
	require.NoError(t, repo.UpdateJob(ctx, job))

	got, err := repo.GetJob(ctx, "job_1")
	require.NoError(t, err)
	assert.Equal(t, itinerary.JobStatusSucceeded, got.Status)
	assert.True(t, got.Status.Done())
	assert.Equal(t, "wanderwise-1", got.ItineraryID)

	_, err = repo.GetJob(ctx, "job_2")
	assert.ErrorIs(t, err, itinerary.ErrJobNotFound)
	assert.ErrorIs(t, repo.UpdateJob(ctx, &itinerary.Job{ID: "job_2"}), itinerary.ErrJobNotFound)
}
