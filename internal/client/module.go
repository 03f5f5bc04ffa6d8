package client

import "go.uber.org/fx"

// Module provides the outbound Push.co transport guarded by per-host
// circuit breakers.
var Module = fx.Module("http_client",
	transportModule,
	breakerModule,
)

var (
	transportModule = fx.Provide(
		fx.Annotate(
			NewHTTPClient,
			fx.As(new(HTTPClientProvider)),
		),
		NewHTTPClientConfig,
	)

	breakerModule = fx.Provide(
		NewCircuitBreakerRegistry,
		NewCircuitBreakerRegistryConfig,
	)
)
