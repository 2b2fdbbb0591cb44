// Package gemini is the generation client for the Gemini generateContent
// REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
	"github.com/akshita-as02/wanderwise/internal/provider/resilience"
)

const (
	// ProviderName identifies this upstream in the registry and metrics.
	ProviderName = "gemini"

	// DefaultBaseURL is the Generative Language API base URL.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second

	// CredentialSetting names the environment variable holding the API key.
	CredentialSetting = "GEMINI_API_KEY"

	operationGenerate = "generate_content"

	// maxErrorBody caps how much of an upstream error body is kept.
	maxErrorBody = 512
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini returned no candidates")

// RequestRecorder receives the outcome of each upstream call.
type RequestRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the Gemini client.
type ClientConfig struct {
	// APIKey is required; without it every call fails with a configuration error.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Model defaults to DefaultModel.
	Model string

	// HTTPClient defaults to a resilient client with retries disabled.
	HTTPClient *resilience.Client

	// Registry receives success and failure outcomes (optional).
	Registry *resilience.Registry

	// Metrics records call durations (optional).
	Metrics RequestRecorder

	Logger zerolog.Logger
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *resilience.Client
	registry   *resilience.Registry
	metrics    RequestRecorder
	logger     zerolog.Logger
}

// NewHTTPClient returns the resilient client used for generation calls.
// Generation is not idempotent in cost, so failed calls are never retried.
func NewHTTPClient(timeout time.Duration, registry *resilience.Registry, logger zerolog.Logger) *resilience.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cfg := resilience.DefaultClientConfig(ProviderName)
	cfg.Timeout = timeout
	cfg.MaxRetries = 0
	cfg.Registry = registry
	cfg.Logger = logger
	return resilience.NewClient(cfg)
}

// NewClient creates a new Gemini client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout, cfg.Registry, cfg.Logger)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		registry:   cfg.Registry,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With().Str("provider", ProviderName).Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the system and user instruction blocks as a single
// multi-part request and returns the concatenated response text.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", &itinerary.ConfigurationError{Setting: CredentialSetting}
	}

	start := time.Now()
	text, err := c.generate(ctx, systemPrompt, userPrompt)
	duration := time.Since(start)

	if c.metrics != nil {
		c.metrics.RecordRequest(ProviderName, operationGenerate, duration, err)
	}
	if c.registry != nil {
		if err != nil {
			c.registry.RecordFailure(ProviderName, err)
		} else {
			c.registry.RecordSuccess(ProviderName)
		}
	}

	if err != nil {
		c.logger.Warn().Err(err).Str("model", c.model).Dur("duration", duration).Msg("generation request failed")
		return "", err
	}

	c.logger.Debug().Str("model", c.model).Int("response_length", len(text)).Dur("duration", duration).Msg("generation request completed")
	return text, nil
}

func (c *Client) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: systemPrompt}, {Text: userPrompt}},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return genResp.text()
}

// APIError is a non-200 answer from the Gemini API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini API error: status %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Status = envelope.Error.Status
		apiErr.Message = envelope.Error.Message
		return apiErr
	}

	apiErr.Message = truncateUTF8(strings.TrimSpace(string(data)), maxErrorBody)
	return apiErr
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
