package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushco/internal/client"
	"github.com/koungkub/pushco/internal/metrics"
	"github.com/koungkub/pushco/internal/repository"
	"github.com/koungkub/pushco/pkg/push"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("service",
	fx.Provide(
		fx.Annotate(
			NewPushService,
			fx.As(new(PushProvider)),
		),
		NewPushServiceConfig,
	),
)

const (
	ErrorKindValidation    = "validation"
	ErrorKindConfiguration = "configuration"
	ErrorKindNetwork       = "network"
	ErrorKindDecode        = "decode"
	ErrorKindUnknown       = "unknown"
)

// PushRequest carries the optional fields of one notification. A nil field
// is never set on the builder.
type PushRequest struct {
	Message          string
	NotificationType *string
	ViewMode         *push.ViewMode
	Article          *string
	Image            *string
	URL              *string
	Latitude         *string
	Longitude        *string
}

//go:generate mockgen -package mockservice -destination ./mock/mockservice.go . PushProvider
type PushProvider interface {
	Send(ctx context.Context, application string, req PushRequest) (any, error)
}

var _ PushProvider = (*PushService)(nil)

type PushService struct {
	cacheProvider      repository.CacheProvider
	persistentProvider repository.PersistentProvider
	httpclient         client.HTTPClientProvider
	pushMetrics        *metrics.PushCollector
	logger             *zap.Logger
	config             PushServiceConfig
}

type PushServiceConfig struct {
	BaseURL   string `envconfig:"PUSH_BASE_URL" default:"http://api.push.co/1.0/"`
	UserAgent string `envconfig:"PUSH_USER_AGENT"`
}

func NewPushServiceConfig() PushServiceConfig {
	var cfg PushServiceConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

type PushServiceParams struct {
	fx.In

	Config             PushServiceConfig
	CacheProvider      repository.CacheProvider
	PersistentProvider repository.PersistentProvider
	HTTPclient         client.HTTPClientProvider
	PushMetrics        *metrics.PushCollector
	Logger             *zap.Logger
}

func NewPushService(params PushServiceParams) *PushService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PushService{
		cacheProvider:      params.CacheProvider,
		persistentProvider: params.PersistentProvider,
		httpclient:         params.HTTPclient,
		pushMetrics:        params.PushMetrics,
		logger:             logger,
		config:             params.Config,
	}
}

// Send relays one notification on behalf of application. Every attempt that
// reaches the builder is recorded as a Delivery.
func (s *PushService) Send(ctx context.Context, application string, req PushRequest) (any, error) {
	app, err := s.getApplication(ctx, application)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.send(ctx, app, req)
	duration := time.Since(start)

	kind := ErrorKind(err)
	viewMode := push.ViewModeMessage
	if req.ViewMode != nil {
		viewMode = *req.ViewMode
	}

	if s.pushMetrics != nil {
		s.pushMetrics.RecordSend(ctx, app.Name, viewMode.String(), kind, duration)
	}
	s.recordDelivery(ctx, app, req, viewMode, err, duration)

	if err != nil {
		s.logger.Warn("push send failed",
			zap.String("application", app.Name),
			zap.String("view_mode", viewMode.String()),
			zap.String("error_kind", kind),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("push sent",
		zap.String("application", app.Name),
		zap.String("view_mode", viewMode.String()),
		zap.Duration("duration", duration),
	)
	return result, nil
}

func (s *PushService) send(ctx context.Context, app repository.Application, req PushRequest) (any, error) {
	opts := []push.Option{
		push.WithTransport(s.httpclient),
		push.WithBaseURL(s.config.BaseURL),
	}
	if s.config.UserAgent != "" {
		opts = append(opts, push.WithUserAgent(s.config.UserAgent))
	}

	p, err := push.New(app.APIKey, app.APISecret, opts...)
	if err != nil {
		return nil, err
	}

	if err := p.SetMessage(req.Message); err != nil {
		return nil, err
	}

	switch {
	case req.NotificationType != nil:
		p.SetNotificationType(*req.NotificationType)
	case app.NotificationType != "":
		p.SetNotificationType(app.NotificationType)
	}

	if req.ViewMode != nil {
		if err := p.SetViewMode(*req.ViewMode); err != nil {
			return nil, err
		}
	}
	if req.Article != nil {
		if err := p.SetArticle(*req.Article); err != nil {
			return nil, err
		}
	}
	if req.Image != nil {
		if err := p.SetImage(*req.Image); err != nil {
			return nil, err
		}
	}
	if req.URL != nil {
		p.SetURL(*req.URL)
	}
	if req.Latitude != nil {
		p.SetLatitude(*req.Latitude)
	}
	if req.Longitude != nil {
		p.SetLongitude(*req.Longitude)
	}

	return p.Send(ctx)
}

func (s *PushService) getApplication(ctx context.Context, name string) (repository.Application, error) {
	app, err := s.cacheProvider.Get(name)
	if err == nil {
		return app, nil
	}

	app, err = s.persistentProvider.FindApplicationByName(ctx, name)
	if err != nil {
		return repository.Application{}, fmt.Errorf("find application %q: %w", name, err)
	}

	if err := s.cacheProvider.Set(name, app); err != nil {
		s.logger.Warn("cache application failed", zap.String("application", name), zap.Error(err))
	}
	return app, nil
}

// recordDelivery never fails the send; a lost audit row is only logged.
func (s *PushService) recordDelivery(
	ctx context.Context,
	app repository.Application,
	req PushRequest,
	viewMode push.ViewMode,
	sendErr error,
	duration time.Duration,
) {
	delivery := &repository.Delivery{
		ApplicationName: app.Name,
		ViewMode:        viewMode.String(),
		Message:         req.Message,
		Status:          repository.DeliveryStatusSent,
		Duration:        duration,
	}
	switch {
	case req.NotificationType != nil:
		delivery.NotificationType = *req.NotificationType
	default:
		delivery.NotificationType = app.NotificationType
	}
	if sendErr != nil {
		delivery.Status = repository.DeliveryStatusFailed
		delivery.ErrorKind = ErrorKind(sendErr)
		delivery.ErrorMessage = sendErr.Error()
	}

	if err := s.persistentProvider.CreateDelivery(context.WithoutCancel(ctx), delivery); err != nil {
		s.logger.Error("record delivery failed",
			zap.String("application", app.Name),
			zap.Error(err),
		)
	}
}

// ErrorKind names the class of a push error, empty for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, push.ErrValidation):
		return ErrorKindValidation
	case errors.Is(err, push.ErrConfiguration):
		return ErrorKindConfiguration
	case errors.Is(err, push.ErrNetwork):
		return ErrorKindNetwork
	case errors.Is(err, push.ErrDecode):
		return ErrorKindDecode
	default:
		return ErrorKindUnknown
	}
}
