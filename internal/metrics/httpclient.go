package metrics

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ErrUnexpectedStatus is recorded for answers with a 4xx or 5xx status.
var ErrUnexpectedStatus = errors.New("unexpected response status code")

// HTTPClientCollector records outbound calls to Push.co per host, together
// with the state of the breaker guarding each host.
type HTTPClientCollector struct {
	requestCount          metric.Int64Counter
	requestDuration       metric.Float64Histogram
	errorCount            metric.Int64Counter
	circuitBreakerState   metric.Int64Gauge
	circuitBreakerChanges metric.Int64Counter
}

func NewHTTPClientCollector(meter metric.Meter) (*HTTPClientCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}
	requestCount, err := meter.Int64Counter(
		"http.client.requests",
		metric.WithDescription("Total HTTP client requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.client.duration",
		metric.WithDescription("HTTP client request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"http.client.errors",
		metric.WithDescription("Total HTTP client errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerState, err := meter.Int64Gauge(
		"http.client.circuit_breaker.state",
		metric.WithDescription("Circuit breaker state (0=Closed, 1=Open, 2=HalfOpen)"),
		metric.WithUnit("{state}"),
	)
	if err != nil {
		return nil, err
	}

	circuitBreakerChanges, err := meter.Int64Counter(
		"http.client.circuit_breaker.state_changes",
		metric.WithDescription("Circuit breaker state changes"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPClientCollector{
		requestCount:          requestCount,
		requestDuration:       requestDuration,
		errorCount:            errorCount,
		circuitBreakerState:   circuitBreakerState,
		circuitBreakerChanges: circuitBreakerChanges,
	}, nil
}

// RecordRequest records one request. statusCode is 0 when no response
// arrived.
func (c *HTTPClientCollector) RecordRequest(
	ctx context.Context,
	method string,
	host string,
	statusCode int,
	duration time.Duration,
	err error,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.host", host),
		attribute.Int("http.status_code", statusCode),
		attribute.String("http.status_class", statusClass(statusCode)),
	}

	c.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))

	if err != nil {
		errorAttrs := []attribute.KeyValue{
			attribute.String("http.host", host),
			attribute.String("error.type", getErrorType(err)),
		}
		c.errorCount.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
	}
}

func (c *HTTPClientCollector) RecordCircuitBreakerState(
	ctx context.Context,
	host string,
	state string,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.state", state),
	}

	stateValue := circuitBreakerStateToInt(state)
	c.circuitBreakerState.Record(ctx, stateValue, metric.WithAttributes(attrs...))
}

func (c *HTTPClientCollector) RecordCircuitBreakerStateChange(
	ctx context.Context,
	host string,
	fromState string,
	toState string,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.host", host),
		attribute.String("circuit_breaker.from_state", fromState),
		attribute.String("circuit_breaker.to_state", toState),
	}

	c.circuitBreakerChanges.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func statusClass(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "none"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}

func circuitBreakerStateToInt(state string) int64 {
	switch state {
	case "closed":
		return 0
	case "open":
		return 1
	case "half-open":
		return 2
	default:
		return -1
	}
}

// getErrorType classifies err for the error.type attribute
func getErrorType(err error) string {
	if err == nil {
		return "none"
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrUnexpectedStatus):
		return "invalid_status"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_breaker_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "unknown"
	}
}
