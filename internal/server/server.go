package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushco/internal/handler"
	"github.com/koungkub/pushco/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http_server",
	fx.Provide(
		NewHTTP,
		NewConfig,
	),
)

type HTTPParams struct {
	fx.In

	Config      HTTPConfig
	Handler     *handler.Push
	HTTPMetrics *metrics.HTTPServerCollector
	Logger      *zap.Logger
}

type HTTPServer struct {
	router *gin.Engine
	srv    *http.Server

	handler     *handler.Push
	httpMetrics *metrics.HTTPServerCollector
	logger      *zap.Logger
}

func NewHTTP(lc fx.Lifecycle, params HTTPParams) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery())

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpServer := &HTTPServer{
		router: router,
		srv: &http.Server{
			Addr:    params.Config.Port,
			Handler: router,
		},
		httpMetrics: params.HTTPMetrics,
		handler:     params.Handler,
		logger:      logger,
	}

	httpServer.setupRoutes()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", httpServer.srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting http server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := httpServer.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping http server")
			return httpServer.srv.Shutdown(ctx)
		},
	})

	return httpServer
}

type HTTPConfig struct {
	Port string `envconfig:"HTTP_SERVER_PORT" default:":8080"`
}

func NewConfig() HTTPConfig {
	var cfg HTTPConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}
