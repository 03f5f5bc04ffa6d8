package main

import (
	"log"

	"github.com/koungkub/pushco/internal/client"
	"github.com/koungkub/pushco/internal/handler"
	"github.com/koungkub/pushco/internal/metrics"
	"github.com/koungkub/pushco/internal/repository"
	"github.com/koungkub/pushco/internal/server"
	"github.com/koungkub/pushco/internal/service"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	logger, err := newLogger(newLoggerConfig())
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	fx.New(
		fx.Provide(func() *zap.Logger { return logger }),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		metrics.Module,
		server.Module,
		handler.Module,
		service.Module,
		repository.Module,
		client.Module,
		fx.Invoke(func(*server.HTTPServer) {}),
	).Run()
}
