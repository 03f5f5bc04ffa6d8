package push

import "time"

type options struct {
	baseURL        string
	userAgent      string
	timeout        time.Duration
	connectTimeout time.Duration
	transport      Transport
	transportSet   bool
}

type Option func(*options)

// WithTransport replaces the default resty transport. Passing nil makes New
// fail with a ConfigurationError.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
		o.transportSet = true
	}
}

// WithBaseURL points the client at another API root, e.g. a staging host.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTimeout sets the overall and connect timeouts of the default transport.
// It has no effect together with WithTransport.
func WithTimeout(timeout, connectTimeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
		o.connectTimeout = connectTimeout
	}
}
