package resilience_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

// upstream answers with a scripted sequence of statuses, repeating the last.
type upstream struct {
	mu       sync.Mutex
	statuses []int
	delay    time.Duration
	bodies   []string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	u.mu.Lock()
	i := min(len(u.bodies), len(u.statuses)-1)
	u.bodies = append(u.bodies, string(data))
	status := u.statuses[i]
	u.mu.Unlock()

	if u.delay > 0 {
		select {
		case <-time.After(u.delay):
		case <-r.Context().Done():
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}

func (u *upstream) hits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.bodies)
}

func serve(t *testing.T, u *upstream) string {
	t.Helper()
	server := httptest.NewServer(u)
	t.Cleanup(server.Close)
	return server.URL
}

// quickConfig retries fast and never trips the breaker.
func quickConfig(name string, retries uint64) resilience.ClientConfig {
	cb := resilience.DefaultCircuitBreakerConfig(name)
	cb.ReadyToTrip = func(gobreaker.Counts) bool { return false }
	return resilience.ClientConfig{
		Name:            name,
		Timeout:         5 * time.Second,
		MaxRetries:      retries,
		InitialInterval: 2 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		CircuitBreaker:  &cb,
	}
}

func post(ctx context.Context, t *testing.T, c *resilience.Client, url string, body io.Reader) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	require.NoError(t, err)
	resp, err := c.Do(req)
	if resp != nil {
		t.Cleanup(func() { resp.Body.Close() })
	}
	return resp, err
}

func TestClient_RetryPolicy(t *testing.T) {
	tests := []struct {
		name       string
		retries    uint64
		statuses   []int
		wantStatus int
		wantHits   int
	}{
		{"first attempt succeeds", 3, []int{200}, 200, 1},
		{"recovers after 503s", 5, []int{503, 503, 200}, 200, 3},
		{"quota answer retried", 2, []int{429, 200}, 200, 2},
		{"client error returned at once", 3, []int{400}, 400, 1},
		{"retries disabled", 0, []int{500}, 500, 1},
		{"exhausted retries return last answer", 2, []int{502}, 502, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &upstream{statuses: tt.statuses}
			client := resilience.NewClient(quickConfig("retry-"+tt.name, tt.retries))

			resp, err := post(context.Background(), t, client, serve(t, u), strings.NewReader(`{}`))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantHits, u.hits())

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusText(tt.wantStatus), string(body))
		})
	}
}

func TestClient_RetryReplaysBody(t *testing.T) {
	u := &upstream{statuses: []int{502, 200}}
	client := resilience.NewClient(quickConfig("replay", 2))

	resp, err := post(context.Background(), t, client, serve(t, u), strings.NewReader(`{"contents":[]}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{`{"contents":[]}`, `{"contents":[]}`}, u.bodies)
}

func TestClient_BodyNotReplayable(t *testing.T) {
	u := &upstream{statuses: []int{503, 200}}
	client := resilience.NewClient(quickConfig("no-replay", 2))

	// NopCloser hides the reader type, so no GetBody is installed.
	_, err := post(context.Background(), t, client, serve(t, u), io.NopCloser(strings.NewReader(`{}`)))

	assert.ErrorIs(t, err, resilience.ErrBodyNotReplayable)
	assert.Equal(t, 1, u.hits())
}

func TestClient_CircuitBreakerTrips(t *testing.T) {
	u := &upstream{statuses: []int{429}}
	url := serve(t, u)

	var (
		mu          sync.Mutex
		transitions []gobreaker.State
	)
	cfg := quickConfig("quota", 0)
	cfg.CircuitBreaker = &resilience.CircuitBreakerConfig{
		Name:        "quota",
		Timeout:     time.Minute,
		ReadyToTrip: resilience.DefaultReadyToTrip,
		OnStateChange: func(_ string, _, to gobreaker.State) {
			mu.Lock()
			defer mu.Unlock()
			transitions = append(transitions, to)
		},
	}
	client := resilience.NewClient(cfg)

	for range 5 {
		resp, err := post(context.Background(), t, client, url, http.NoBody)
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	}
	assert.Equal(t, gobreaker.StateOpen, client.CircuitBreakerState())

	_, err := post(context.Background(), t, client, url, http.NoBody)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, 5, u.hits(), "open breaker must not reach the upstream")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)
}

func TestClient_SlowUpstream(t *testing.T) {
	u := &upstream{statuses: []int{200}, delay: time.Second}
	url := serve(t, u)

	t.Run("client timeout", func(t *testing.T) {
		cfg := quickConfig("slow-timeout", 0)
		cfg.Timeout = 50 * time.Millisecond

		_, err := post(context.Background(), t, resilience.NewClient(cfg), url, http.NoBody)
		assert.Error(t, err)
	})

	t.Run("caller deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := post(ctx, t, resilience.NewClient(quickConfig("slow-ctx", 3)), url, http.NoBody)
		assert.Error(t, err)
	})
}

func TestDefaultReadyToTrip(t *testing.T) {
	tests := []struct {
		counts gobreaker.Counts
		want   bool
	}{
		{gobreaker.Counts{}, false},
		{gobreaker.Counts{Requests: 4, TotalFailures: 4}, false},
		{gobreaker.Counts{Requests: 5, TotalFailures: 2}, false},
		{gobreaker.Counts{Requests: 5, TotalFailures: 3}, true},
		{gobreaker.Counts{Requests: 20, TotalFailures: 10}, true},
		{gobreaker.Counts{Requests: 20, TotalFailures: 9}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resilience.DefaultReadyToTrip(tt.counts), "%+v", tt.counts)
	}
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := resilience.DefaultClientConfig("gemini")

	assert.Equal(t, "gemini", cfg.Name)
	assert.Equal(t, uint64(3), cfg.MaxRetries)
	require.NotNil(t, cfg.CircuitBreaker)
	assert.Equal(t, "gemini", cfg.CircuitBreaker.Name)
}

func TestStatusError(t *testing.T) {
	err := &resilience.StatusError{StatusCode: http.StatusTooManyRequests}
	assert.Equal(t, "upstream returned 429 Too Many Requests", err.Error())
}
