package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushco/internal/metrics"
	"github.com/koungkub/pushco/pkg/push"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -package mockclient -destination ./mock/mockclient.go . HTTPClientProvider
type HTTPClientProvider interface {
	PostForm(ctx context.Context, u string, form url.Values, userAgent string) (*push.Response, error)
}

var (
	_ HTTPClientProvider = (*HTTPClient)(nil)
	_ push.Transport     = (*HTTPClient)(nil)
)

// errServerStatus marks a 5xx answer as a breaker failure. The response
// itself still reaches the caller.
var errServerStatus = errors.New("response status code is a server error")

type HTTPClient struct {
	httpclient             *http.Client
	circuitBreakerRegistry *CircuitBreakerRegistry
	metricsCollector       *metrics.HTTPClientCollector
	logger                 *zap.Logger
}

type HTTPClientConfig struct {
	Timeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	ConnectTimeout time.Duration `envconfig:"HTTP_CLIENT_CONNECT_TIMEOUT" default:"10s"`
}

type HTTPClientParams struct {
	fx.In

	Config                 HTTPClientConfig
	CircuitBreakerRegistry *CircuitBreakerRegistry
	MetricsCollector       *metrics.HTTPClientCollector
	Logger                 *zap.Logger
}

func NewHTTPClient(params HTTPClientParams) *HTTPClient {
	timeout := params.Config.Timeout
	if timeout <= 0 {
		timeout = push.DefaultTimeout
	}
	connectTimeout := params.Config.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = push.DefaultConnectTimeout
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HTTPClient{
		httpclient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
				DisableKeepAlives:   true,
			},
		},
		circuitBreakerRegistry: params.CircuitBreakerRegistry,
		metricsCollector:       params.MetricsCollector,
		logger:                 logger,
	}
}

func NewHTTPClientConfig() HTTPClientConfig {
	var cfg HTTPClientConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

// PostForm sends one form-encoded POST through the breaker of the target
// host. Any HTTP status is returned to the caller; only transport failures
// and an open breaker are errors.
func (c *HTTPClient) PostForm(ctx context.Context, u string, form url.Values, userAgent string) (*push.Response, error) {
	start := time.Now()
	host, err := extractHost(u)
	if err != nil {
		return nil, err
	}

	circuitBreaker := c.circuitBreakerRegistry.GetOrCreate(host)

	cbState := circuitBreaker.State().String()
	c.metricsCollector.RecordCircuitBreakerState(ctx, host, cbState)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := circuitBreaker.Execute(func() (CircuitBreakerResponse, error) {
		resp, err := c.httpclient.Do(req)
		if err != nil {
			return CircuitBreakerResponse{}, err
		}
		defer resp.Body.Close()

		rawBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return CircuitBreakerResponse{}, err
		}

		cbResp := CircuitBreakerResponse{
			Body:       rawBody,
			StatusCode: resp.StatusCode,
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return cbResp, errServerStatus
		}
		return cbResp, nil
	})

	duration := time.Since(start)

	if err != nil && !errors.Is(err, errServerStatus) {
		c.metricsCollector.RecordRequest(ctx, http.MethodPost, host, 0, duration, err)
		c.logger.Warn("push request failed",
			zap.String("host", host),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	var statusErr error
	if resp.StatusCode >= http.StatusBadRequest {
		statusErr = metrics.ErrUnexpectedStatus
	}
	c.metricsCollector.RecordRequest(ctx, http.MethodPost, host, resp.StatusCode, duration, statusErr)

	return &push.Response{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}

func extractHost(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
