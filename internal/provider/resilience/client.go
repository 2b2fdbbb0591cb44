package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrBodyNotReplayable is returned when a request with a body would be
	// retried but the body cannot be rewound.
	ErrBodyNotReplayable = errors.New("request body cannot be replayed")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies the upstream in the breaker, the registry and logs.
	Name string

	// Timeout bounds a single HTTP attempt. Default: 10 seconds.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first one
	// on network errors and 5xx responses. Zero disables retries.
	MaxRetries uint64

	// InitialInterval is the first retry backoff. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff. Default: 5 seconds.
	MaxInterval time.Duration

	// CircuitBreaker defaults to DefaultCircuitBreakerConfig(Name).
	CircuitBreaker *CircuitBreakerConfig

	// Registry, when set, receives the client on construction.
	Registry *Registry

	// Transport overrides the underlying round tripper.
	Transport http.RoundTripper

	Logger zerolog.Logger
}

// DefaultClientConfig returns defaults suitable for idempotent upstream lookups.
func DefaultClientConfig(name string) ClientConfig {
	cbConfig := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		CircuitBreaker:  &cbConfig,
		Logger:          zerolog.Nop(),
	}
}

// Client is an HTTP client guarded by a circuit breaker with optional retries.
type Client struct {
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[*http.Response]
	config         ClientConfig
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	cbConfig := DefaultCircuitBreakerConfig(cfg.Name)
	if cfg.CircuitBreaker != nil {
		cbConfig = *cfg.CircuitBreaker
	}
	if cbConfig.OnStateChange == nil {
		logger := cfg.Logger
		cbConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		circuitBreaker: NewCircuitBreaker[*http.Response](cbConfig), //nolint:bodyclose // type param, not response
		config:         cfg,
	}

	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}
	return c
}

// Name returns the upstream name.
func (c *Client) Name() string {
	return c.config.Name
}

// Do executes an HTTP request through the circuit breaker.
//
// 5xx and 429 answers count as upstream failures: they feed the breaker and
// are retried with exponential backoff up to MaxRetries times. Once retries
// are exhausted the last such response is returned without error so callers
// can read the upstream's error body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithContext(req.Context(), req)
}

// DoWithContext executes an HTTP request with the given context.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	var (
		last    *http.Response
		attempt int
	)
	keep := func(resp *http.Response) {
		if last != nil {
			_ = last.Body.Close()
		}
		last = resp
	}

	err := backoff.Retry(func() error {
		attempt++
		attemptReq, err := c.prepare(ctx, req, attempt)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.circuitBreaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // kept in last
			return c.roundTrip(attemptReq)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(ErrCircuitOpen)
		}
		keep(resp)
		return err
	}, c.retryPolicy(ctx))

	var statusErr *StatusError
	switch {
	case err == nil:
		return last, nil
	case last != nil && errors.As(err, &statusErr):
		return last, nil
	default:
		keep(nil)
		return nil, err
	}
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if upstreamFailure(resp.StatusCode) {
		return resp, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (c *Client) retryPolicy(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)
}

// prepare clones req for one attempt, rewinding the body on retries.
func (c *Client) prepare(ctx context.Context, req *http.Request, attempt int) (*http.Request, error) {
	clone := req.Clone(ctx)
	if attempt == 1 || req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, ErrBodyNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewinding request body: %w", err)
	}
	clone.Body = body
	return clone, nil
}

func upstreamFailure(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

// StatusError is an upstream answer that counts as a failure.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// CircuitBreakerCounts returns the current counts of the circuit breaker.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.circuitBreaker.Counts()
}
