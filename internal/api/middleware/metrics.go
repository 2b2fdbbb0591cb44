package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/akshita-as02/wanderwise/internal/itinerary"
)

// Metrics holds the HTTP server instruments.
type Metrics struct {
	requestDuration  metric.Float64Histogram
	requestTotal     metric.Int64Counter
	requestsInFlight metric.Int64UpDownCounter
	responseSize     metric.Int64Histogram
}

// NewMetrics creates the HTTP server instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	b := instrumentBuilder{meter: otel.Meter(instrumentationName)}
	m := &Metrics{
		requestDuration:  b.seconds("http.server.request.duration", "Duration of HTTP server requests"),
		requestTotal:     b.counter("http.server.request.total", "HTTP server requests"),
		requestsInFlight: b.gauge("http.server.requests_in_flight", "HTTP requests currently being served"),
		responseSize:     b.bytes("http.server.response.size", "Size of HTTP server response bodies"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// instrumentBuilder keeps the first instrument creation error.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) seconds(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	b.keep(err)
	return h
}

func (b *instrumentBuilder) bytes(name, desc string) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc), metric.WithUnit("By"))
	b.keep(err)
	return h
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{request}"))
	b.keep(err)
	return c
}

func (b *instrumentBuilder) gauge(name, desc string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit("{request}"))
	b.keep(err)
	return c
}

func (b *instrumentBuilder) keep(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// Middleware returns an HTTP middleware that records metrics for each request.
// Routes are labelled with the chi pattern so that itinerary IDs do not
// explode cardinality.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			method := metric.WithAttributes(attribute.String("http.method", r.Method))
			m.requestsInFlight.Add(ctx, 1, method)
			defer m.requestsInFlight.Add(ctx, -1, method)

			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", routePattern(r)),
				attribute.String("http.status_code", strconv.Itoa(wrapped.statusCode)),
			}
			if wrapped.statusCode >= http.StatusBadRequest {
				attrs = append(attrs, attribute.Bool("error", true))
			}

			opt := metric.WithAttributes(attrs...)
			m.requestDuration.Record(ctx, time.Since(start).Seconds(), opt)
			m.requestTotal.Add(ctx, 1, opt)
			m.responseSize.Record(ctx, wrapped.written, opt)
		})
	}
}

// ProviderMetrics records calls to the generative service.
type ProviderMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewProviderMetrics creates the provider instruments on the global meter provider.
func NewProviderMetrics() (*ProviderMetrics, error) {
	b := instrumentBuilder{meter: otel.Meter(instrumentationName)}
	m := &ProviderMetrics{
		requestDuration: b.seconds("provider.request.duration", "Duration of provider requests"),
		requestTotal:    b.counter("provider.request.total", "Provider requests"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// RecordRequest records one provider call. Failed calls also carry the
// pipeline error type so configuration and upstream failures can be told apart.
func (m *ProviderMetrics) RecordRequest(provider, operation string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
		attribute.String("provider.operation", operation),
		attribute.String("outcome", "success"),
	}
	if err != nil {
		attrs[2] = attribute.String("outcome", "error")
		attrs = append(attrs, attribute.String("error.type", string(itinerary.TypeOf(err))))
	}
	opt := metric.WithAttributes(attrs...)

	// The request context may already be cancelled.
	ctx := context.Background()
	m.requestDuration.Record(ctx, duration.Seconds(), opt)
	m.requestTotal.Add(ctx, 1, opt)
}
