package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMeter() (*metric.ManualReader, *metric.MeterProvider) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	return reader, provider
}

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewHTTPClientCollector(t *testing.T) {
	_, provider := newTestMeter()

	collector, err := NewHTTPClientCollector(provider.Meter("test"))

	require.NoError(t, err)
	assert.NotNil(t, collector.requestCount)
	assert.NotNil(t, collector.requestDuration)
	assert.NotNil(t, collector.errorCount)
	assert.NotNil(t, collector.circuitBreakerState)
	assert.NotNil(t, collector.circuitBreakerChanges)
}

func TestHTTPClientCollector_RecordRequest(t *testing.T) {
	tests := []struct {
		name              string
		statusCode        int
		err               error
		expectedErrorType string
		expectedClass     string
	}{
		{name: "push accepted", statusCode: 200, expectedClass: "2xx"},
		{name: "rejected credentials", statusCode: 401, err: ErrUnexpectedStatus, expectedErrorType: "invalid_status", expectedClass: "4xx"},
		{name: "breaker open", statusCode: 0, err: gobreaker.ErrOpenState, expectedErrorType: "circuit_breaker_open", expectedClass: "none"},
		{name: "deadline", statusCode: 0, err: fmt.Errorf("post: %w", context.DeadlineExceeded), expectedErrorType: "timeout", expectedClass: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, provider := newTestMeter()
			collector, err := NewHTTPClientCollector(provider.Meter("test"))
			require.NoError(t, err)

			collector.RecordRequest(context.Background(), "POST", "api.push.co", tt.statusCode, 25*time.Millisecond, tt.err)

			got := collect(t, reader)

			requests := got["http.client.requests"].Data.(metricdata.Sum[int64])
			require.Len(t, requests.DataPoints, 1)
			assert.Equal(t, int64(1), requests.DataPoints[0].Value)
			status, ok := requests.DataPoints[0].Attributes.Value(attribute.Key("http.status_code"))
			require.True(t, ok)
			assert.Equal(t, int64(tt.statusCode), status.AsInt64())
			class, ok := requests.DataPoints[0].Attributes.Value(attribute.Key("http.status_class"))
			require.True(t, ok)
			assert.Equal(t, tt.expectedClass, class.AsString())

			duration := got["http.client.duration"].Data.(metricdata.Histogram[float64])
			require.Len(t, duration.DataPoints, 1)
			assert.InDelta(t, 0.025, duration.DataPoints[0].Sum, 0.0001)

			errorsMetric, found := got["http.client.errors"]
			if tt.err == nil {
				assert.False(t, found, "no error should be recorded")
				return
			}
			require.True(t, found)
			errSum := errorsMetric.Data.(metricdata.Sum[int64])
			require.Len(t, errSum.DataPoints, 1)
			errType, _ := errSum.DataPoints[0].Attributes.Value(attribute.Key("error.type"))
			assert.Equal(t, tt.expectedErrorType, errType.AsString())
		})
	}
}

func TestHTTPClientCollector_CircuitBreaker(t *testing.T) {
	t.Run("records state gauge", func(t *testing.T) {
		for _, state := range []gobreaker.State{gobreaker.StateClosed, gobreaker.StateOpen, gobreaker.StateHalfOpen} {
			reader, provider := newTestMeter()
			collector, err := NewHTTPClientCollector(provider.Meter("test"))
			require.NoError(t, err)

			collector.RecordCircuitBreakerState(context.Background(), "api.push.co", state.String())

			gauge := collect(t, reader)["http.client.circuit_breaker.state"].Data.(metricdata.Gauge[int64])
			require.Len(t, gauge.DataPoints, 1)
			assert.Equal(t, circuitBreakerStateToInt(state.String()), gauge.DataPoints[0].Value, state.String())
		}
	})

	t.Run("counts state changes", func(t *testing.T) {
		reader, provider := newTestMeter()
		collector, err := NewHTTPClientCollector(provider.Meter("test"))
		require.NoError(t, err)

		collector.RecordCircuitBreakerStateChange(context.Background(), "api.push.co", "closed", "open")
		collector.RecordCircuitBreakerStateChange(context.Background(), "api.push.co", "closed", "open")

		sum := collect(t, reader)["http.client.circuit_breaker.state_changes"].Data.(metricdata.Sum[int64])
		require.Len(t, sum.DataPoints, 1)
		assert.Equal(t, int64(2), sum.DataPoints[0].Value)
	})
}

func TestCircuitBreakerStateToInt(t *testing.T) {
	tests := []struct {
		state    string
		expected int64
	}{
		{"closed", 0},
		{"open", 1},
		{"half-open", 2},
		{"unknown", -1},
		{"", -1},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.expected, circuitBreakerStateToInt(tt.state))
		})
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		0:   "none",
		200: "2xx",
		302: "3xx",
		422: "4xx",
		503: "5xx",
		600: "none",
	}

	for code, expected := range tests {
		assert.Equal(t, expected, statusClass(code), code)
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: "none"},
		{name: "unexpected status", err: ErrUnexpectedStatus, expected: "invalid_status"},
		{name: "wrapped unexpected status", err: fmt.Errorf("push: %w", ErrUnexpectedStatus), expected: "invalid_status"},
		{name: "breaker open", err: gobreaker.ErrOpenState, expected: "circuit_breaker_open"},
		{name: "breaker half-open limit", err: gobreaker.ErrTooManyRequests, expected: "circuit_breaker_open"},
		{name: "cancelled", err: context.Canceled, expected: "canceled"},
		{name: "deadline", err: context.DeadlineExceeded, expected: "timeout"},
		{name: "net timeout", err: fmt.Errorf("dial: %w", timeoutError{}), expected: "timeout"},
		{name: "unknown error", err: errors.New("connection refused"), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getErrorType(tt.err))
		})
	}
}

func TestNewHTTPClientCollectorWithNilMeter(t *testing.T) {
	collector, err := NewHTTPClientCollector(nil)
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		collector.RecordRequest(ctx, "POST", "api.push.co", 200, time.Second, nil)
		collector.RecordCircuitBreakerState(ctx, "api.push.co", "closed")
		collector.RecordCircuitBreakerStateChange(ctx, "api.push.co", "closed", "open")
	})
}
