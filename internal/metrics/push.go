package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// PushCollector counts notifications relayed to Push.co.
type PushCollector struct {
	sendCount    metric.Int64Counter
	sendDuration metric.Float64Histogram
}

func NewPushCollector(meter metric.Meter) (*PushCollector, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("noop")
	}

	sendCount, err := meter.Int64Counter(
		"push.sends",
		metric.WithDescription("Total push notifications relayed"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	sendDuration, err := meter.Float64Histogram(
		"push.send.duration",
		metric.WithDescription("Push notification send duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PushCollector{
		sendCount:    sendCount,
		sendDuration: sendDuration,
	}, nil
}

// RecordSend records one send attempt. errorKind is empty on success.
func (c *PushCollector) RecordSend(
	ctx context.Context,
	application string,
	viewMode string,
	errorKind string,
	duration time.Duration,
) {
	outcome := "sent"
	if errorKind != "" {
		outcome = "failed"
	}

	attrs := []attribute.KeyValue{
		attribute.String("push.application", application),
		attribute.String("push.view_mode", viewMode),
		attribute.String("push.outcome", outcome),
	}
	if errorKind != "" {
		attrs = append(attrs, attribute.String("error.type", errorKind))
	}

	c.sendCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.sendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
