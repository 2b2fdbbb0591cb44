package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/api/middleware"
	"github.com/akshita-as02/wanderwise/internal/api/models"
)

func limitedHandler(limit int) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return middleware.RequestID(middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: limit,
		WindowLength: time.Minute,
	})(ok))
}

func hit(h http.Handler, remoteAddr, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, http.NoBody)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitByIP(t *testing.T) {
	h := limitedHandler(3)

	codes := make([]int, 0, 5)
	for range 5 {
		codes = append(codes, hit(h, "198.51.100.7:4000", "/v1/itineraries").Code)
	}

	assert.Equal(t, []int{
		http.StatusNoContent,
		http.StatusNoContent,
		http.StatusNoContent,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRateLimitByIP_KeysOnClientAddress(t *testing.T) {
	h := limitedHandler(1)

	assert.Equal(t, http.StatusNoContent, hit(h, "198.51.100.8:4000", "/v1/itineraries").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "198.51.100.8:5000", "/v1/itineraries").Code)
	assert.Equal(t, http.StatusNoContent, hit(h, "198.51.100.9:4000", "/v1/itineraries").Code)
}

func TestRateLimitByIP_ProblemBody(t *testing.T) {
	h := limitedHandler(1)
	hit(h, "203.0.113.50:1234", "/v1/itinerary-jobs")

	rec := hit(h, "203.0.113.50:1234", "/v1/itinerary-jobs")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var problem models.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, models.ProblemTypeTooManyRequests, problem.Type)
	assert.Equal(t, "Too many requests", problem.Error)
	assert.Equal(t, "/v1/itinerary-jobs", problem.Instance)
	assert.Equal(t, http.StatusTooManyRequests, problem.Status)
	assert.NotEmpty(t, problem.TraceID)
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), problem.TraceID)
}

func TestRateLimitTiers(t *testing.T) {
	tiers := []middleware.RateLimitConfig{
		middleware.GenerationRateLimit,
		middleware.ExpensiveRateLimit,
		middleware.StandardRateLimit,
	}

	assert.Equal(t, 10, middleware.GenerationRateLimit.RequestLimit)
	assert.Equal(t, 30, middleware.ExpensiveRateLimit.RequestLimit)
	assert.Equal(t, 100, middleware.StandardRateLimit.RequestLimit)
	for i, tier := range tiers {
		assert.Equal(t, time.Minute, tier.WindowLength)
		if i > 0 {
			assert.Greater(t, tier.RequestLimit, tiers[i-1].RequestLimit)
		}
	}
}
