package metrics

import (
	"context"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushco/pkg/push"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"
)

// NewMeterProvider exports every relay meter on the default prometheus
// registry served at /metrics.
func NewMeterProvider(cfg MetricConfig) (*sdkmetric.MeterProvider, error) {
	provider, err := newMeterProvider(cfg, promclient.DefaultRegisterer)
	if err != nil {
		return nil, err
	}

	otel.SetMeterProvider(provider)
	return provider, nil
}

func newMeterProvider(cfg MetricConfig, registerer promclient.Registerer) (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registerer))
	if err != nil {
		return nil, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.AppName),
		attribute.String("service.version", push.Version),
	)

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	), nil
}

type MetricParams struct {
	fx.In

	Config        MetricConfig
	MeterProvider *sdkmetric.MeterProvider
}

func NewMetric(lc fx.Lifecycle, params MetricParams) (metric.Meter, error) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.MeterProvider.Shutdown(ctx)
		},
	})

	return params.MeterProvider.Meter(params.Config.AppName), nil
}

type MetricConfig struct {
	AppName string `envconfig:"APP_NAME" default:"pushco-relay"`
}

func NewMetricConfig() MetricConfig {
	var cfg MetricConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}
