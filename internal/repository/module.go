package repository

import "go.uber.org/fx"

// Module provides application lookup and delivery history: postgres through
// gorm, fronted by a ristretto cache of applications.
var Module = fx.Module("repository",
	applicationStoreModule,
	applicationCacheModule,
)

var (
	applicationStoreModule = fx.Provide(
		fx.Annotate(
			NewPersistent,
			fx.As(new(PersistentProvider)),
		),
		NewPersistentConfig,
	)

	applicationCacheModule = fx.Provide(
		fx.Annotate(
			NewCache,
			fx.As(new(CacheProvider)),
		),
		NewCacheConfig,
	)
)
