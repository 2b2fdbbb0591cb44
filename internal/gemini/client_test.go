package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshita-as02/wanderwise/internal/gemini"
	"github.com/akshita-as02/wanderwise/internal/itinerary"
	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

type recordedCall struct {
	provider  string
	operation string
	err       error
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) RecordRequest(provider, operation string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{provider: provider, operation: operation, err: err})
}

func newTestClient(t *testing.T, baseURL string, registry *resilience.Registry, recorder gemini.RequestRecorder) *gemini.Client {
	t.Helper()
	return gemini.NewClient(gemini.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		HTTPClient: gemini.NewHTTPClient(5*time.Second, registry, zerolog.Nop()),
		Registry:   registry,
		Metrics:    recorder,
		Logger:     zerolog.New(io.Discard),
	})
}

func TestClient_Generate(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"), "key is sent as a header")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "` + "```json\\n" + `{\"title\": "}, {"text": "\"Tokyo\"}` + "\\n```" + `"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	recorder := &fakeRecorder{}
	client := newTestClient(t, server.URL, registry, recorder)

	text, err := client.Generate(context.Background(), "SYSTEM", "USER")
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"title\": \"Tokyo\"}\n```", text)

	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "SYSTEM", parts[0].(map[string]any)["text"])
	assert.Equal(t, "USER", parts[1].(map[string]any)["text"])

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, gemini.ProviderName, recorder.calls[0].provider)
	assert.NoError(t, recorder.calls[0].err)

	health := registry.GetHealth(gemini.ProviderName)
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestClient_Generate_MissingAPIKey(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := gemini.NewClient(gemini.ClientConfig{BaseURL: server.URL, Logger: zerolog.Nop()})

	_, err := client.Generate(context.Background(), "s", "u")
	require.Error(t, err)

	var cfgErr *itinerary.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, gemini.CredentialSetting, cfgErr.Setting)
	assert.Zero(t, hits.Load())
}

func TestClient_Generate_UpstreamErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "The model is overloaded.", "status": "UNAVAILABLE"}}`))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	recorder := &fakeRecorder{}
	client := newTestClient(t, server.URL, registry, recorder)

	_, err := client.Generate(context.Background(), "s", "u")
	require.Error(t, err)

	var apiErr *gemini.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "UNAVAILABLE", apiErr.Status)
	assert.Contains(t, err.Error(), "The model is overloaded.")
	assert.Equal(t, int32(1), hits.Load())

	require.Len(t, recorder.calls, 1)
	assert.Error(t, recorder.calls[0].err)

	health := registry.GetHealth(gemini.ProviderName)
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Contains(t, health.LastError, "overloaded")
}

func TestClient_Generate_PlainErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("forbidden"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)

	_, err := client.Generate(context.Background(), "s", "u")

	var apiErr *gemini.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "forbidden", apiErr.Message)
}

func TestClient_Generate_LongErrorBodyKeepsRunesWhole(t *testing.T) {
	// 511 ASCII bytes put the two-byte "é" across the 512-byte cap.
	body := strings.Repeat("a", 511) + strings.Repeat("é", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)

	_, err := client.Generate(context.Background(), "s", "u")

	var apiErr *gemini.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Message))
	assert.Equal(t, strings.Repeat("a", 511), apiErr.Message)
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty candidates", `{"candidates": []}`, "no candidates"},
		{"blocked prompt", `{"promptFeedback": {"blockReason": "SAFETY"}}`, "SAFETY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, nil, nil)

			_, err := client.Generate(context.Background(), "s", "u")
			require.Error(t, err)
			assert.ErrorIs(t, err, gemini.ErrEmptyResponse)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_Generate_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)

	_, err := client.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_Defaults(t *testing.T) {
	client := gemini.NewClient(gemini.ClientConfig{APIKey: "k"})

	assert.Equal(t, gemini.ProviderName, client.Name())
	assert.Equal(t, gemini.DefaultModel, client.Model())
}

func TestClient_ImplementsGenerator(t *testing.T) {
	var _ itinerary.Generator = gemini.NewClient(gemini.ClientConfig{})
}
