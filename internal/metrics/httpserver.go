package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// HTTPServerCollector records inbound relay requests grouped by route.
type HTTPServerCollector struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func NewHTTPServerCollector(meter metric.Meter) (*HTTPServerCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	requestCount, err := meter.Int64Counter(
		"http.server.requests",
		metric.WithDescription("Total HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPServerCollector{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}, nil
}

// Middleware labels each request with its route template. Requests on the
// push route also carry the application name.
func (m *HTTPServerCollector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		c.Next()

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", c.Writer.Status()),
		}
		if app := c.Param("app"); app != "" {
			attrs = append(attrs, attribute.String("push.application", app))
		}

		ctx := c.Request.Context()
		m.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
		m.requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}
}
