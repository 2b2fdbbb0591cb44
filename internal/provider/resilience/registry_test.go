package resilience_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

func registeredClient(registry *resilience.Registry, name string, retries uint64) *resilience.Client {
	cfg := quickConfig(name, retries)
	cfg.Registry = registry
	return resilience.NewClient(cfg)
}

func TestRegistry_NewClientRegisters(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Empty(t, registry.GetAllHealth())
	assert.Nil(t, registry.GetHealth("gemini"))

	registeredClient(registry, "gemini", 0)

	health := registry.GetHealth("gemini")
	require.NotNil(t, health)
	assert.Equal(t, "gemini", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
	assert.Empty(t, health.LastError)
}

func TestRegistry_RecordOutcomes(t *testing.T) {
	registry := resilience.NewRegistry()
	registeredClient(registry, "gemini", 0)

	registry.RecordFailure("gemini", errors.New("gemini API error: status 429"))
	registry.RecordSuccess("gemini")

	health := registry.GetHealth("gemini")
	require.NotNil(t, health.LastSuccessAt)
	require.NotNil(t, health.LastFailureAt)
	assert.WithinDuration(t, time.Now(), *health.LastSuccessAt, time.Second)
	assert.False(t, health.LastSuccessAt.Before(*health.LastFailureAt))
	assert.Equal(t, "gemini API error: status 429", health.LastError, "the last error outlives a later success")

	registry.RecordSuccess("unregistered")
	registry.RecordFailure("unregistered", errors.New("ignored"))
	assert.Nil(t, registry.GetHealth("unregistered"))
}

func TestRegistry_ReflectsBreakerCounts(t *testing.T) {
	registry := resilience.NewRegistry()
	client := registeredClient(registry, "gemini", 0)
	url := serve(t, &upstream{statuses: []int{500, 200}})

	for range 2 {
		req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(`{}`))
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	counts := registry.GetHealth("gemini").Counts
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
}

func TestRegistry_GetAllHealthSortedByName(t *testing.T) {
	registry := resilience.NewRegistry()
	for _, name := range []string{"places", "gemini", "maps"} {
		registeredClient(registry, name, 0)
	}

	var names []string
	for _, h := range registry.GetAllHealth() {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"gemini", "maps", "places"}, names)
}
