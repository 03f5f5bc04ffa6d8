package push

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout        = 10 * time.Second
	DefaultConnectTimeout = 10 * time.Second
)

// Transport posts a form-encoded body and hands back the raw response.
// Implementations must not retry.
type Transport interface {
	PostForm(ctx context.Context, endpoint string, form url.Values, userAgent string) (*Response, error)
}

// Response is the undecoded answer of the API.
type Response struct {
	StatusCode int
	Body       []byte
}

var _ Transport = (*RestyTransport)(nil)

// RestyTransport is the default Transport. Connections are never reused,
// every call dials afresh.
type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(timeout, connectTimeout time.Duration) *RestyTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	client := resty.New()
	client.SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: connectTimeout,
		DisableKeepAlives:   true,
	})
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	return &RestyTransport{client: client}
}

// NewRestyTransportWithClient wraps a caller-owned client. Retries are
// switched off on it.
func NewRestyTransportWithClient(client *resty.Client) (*RestyTransport, error) {
	if client == nil {
		return nil, errors.New("resty client is required")
	}
	client.SetRetryCount(0)

	return &RestyTransport{client: client}, nil
}

func (t *RestyTransport) PostForm(ctx context.Context, endpoint string, form url.Values, userAgent string) (*Response, error) {
	req := t.client.R().
		SetContext(ctx).
		SetFormDataFromValues(form)
	if userAgent != "" {
		req.SetHeader("User-Agent", userAgent)
	}

	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
