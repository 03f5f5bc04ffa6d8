// Package push is a client for the Push.co notification API.
//
// A Push is created with the application's API key and secret, filled in
// through its setters and delivered with Send:
//
//	p, err := push.New(apiKey, apiSecret)
//	if err != nil {
//		return err
//	}
//	if err := p.SetMessage("Test message."); err != nil {
//		return err
//	}
//	_ = p.SetViewMode(push.ViewModeWeb)
//	p.SetURL("http://push.co/")
//	result, err := p.Send(ctx)
//
// A Push is not safe for concurrent use.
package push

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

const (
	Version          = "0.1"
	DefaultBaseURL   = "http://api.push.co/1.0/"
	DefaultUserAgent = "pushco-go/" + Version

	MaxMessageLength = 140

	pushEndpoint = "push"
)

// Form keys understood by the API.
const (
	FieldMessage          = "message"
	FieldAPIKey           = "api_key"
	FieldAPISecret        = "api_secret"
	FieldNotificationType = "notification_type"
	FieldArticle          = "article"
	FieldImage            = "image"
	FieldURL              = "url"
	FieldLatitude         = "latitude"
	FieldLongitude        = "longitude"
)

// The view mode only selects fields and is never posted.
const fieldViewMode = "view_mode"

// ViewMode selects how the app renders the notification.
type ViewMode int

const (
	// ViewModeMessage shows the message with optional article and image.
	ViewModeMessage ViewMode = iota
	// ViewModeWeb loads URL in a web view.
	ViewModeWeb
	// ViewModeMap drops a pin at latitude/longitude.
	ViewModeMap
)

var viewModeName = map[ViewMode]string{
	ViewModeMessage: "message",
	ViewModeWeb:     "web",
	ViewModeMap:     "map",
}

func (m ViewMode) String() string {
	if name, ok := viewModeName[m]; ok {
		return name
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

func (m ViewMode) Valid() bool {
	_, ok := viewModeName[m]
	return ok
}

// Push accumulates the fields of one notification.
type Push struct {
	apiKey    string
	apiSecret string

	message          *string
	notificationType *string
	viewMode         *ViewMode
	article          *string
	image            *string
	url              *string
	latitude         *string
	longitude        *string

	endpoint  string
	userAgent string
	transport Transport
}

// New validates the credentials and the transport. Both credentials must be
// non-empty hexadecimal strings.
func New(apiKey, apiSecret string, opts ...Option) (*Push, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !isHex(apiKey) {
		return nil, &ConfigurationError{Message: "expected api_key to be a hexadecimal"}
	}
	if !isHex(apiSecret) {
		return nil, &ConfigurationError{Message: "expected api_secret to be a hexadecimal"}
	}

	endpoint, err := resolveEndpoint(o.baseURL)
	if err != nil {
		return nil, err
	}

	transport := o.transport
	if !o.transportSet {
		transport = NewRestyTransport(o.timeout, o.connectTimeout)
	}
	if isNilTransport(transport) {
		return nil, &ConfigurationError{Message: "http transport is not available"}
	}

	return &Push{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		endpoint:  endpoint,
		userAgent: o.userAgent,
		transport: transport,
	}, nil
}

// SetMessage sets the notification text, at most 140 characters.
func (p *Push) SetMessage(message string) error {
	if !utf8.ValidString(message) {
		return &ValidationError{Field: FieldMessage, Message: "expected message to be a string"}
	}
	if n := utf8.RuneCountInString(message); n > MaxMessageLength {
		return &ValidationError{
			Field:   FieldMessage,
			Message: fmt.Sprintf("expected message to be at most %d characters, got %d", MaxMessageLength, n),
		}
	}

	p.message = &message
	return nil
}

// SetNotificationType targets every subscription stored with the same tag.
func (p *Push) SetNotificationType(notificationType string) {
	p.notificationType = &notificationType
}

func (p *Push) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return &ValidationError{
			Field:   fieldViewMode,
			Message: fmt.Sprintf("expected view mode to be either 0, 1, 2, got %d", int(mode)),
		}
	}

	p.viewMode = &mode
	return nil
}

// SetArticle sets additional content shown under the message in message view.
func (p *Push) SetArticle(article string) error {
	if !utf8.ValidString(article) {
		return &ValidationError{Field: FieldArticle, Message: "expected article to be a string"}
	}

	p.article = &article
	return nil
}

// SetImage sets the URL of an image shown in message view.
func (p *Push) SetImage(image string) error {
	if !utf8.ValidString(image) {
		return &ValidationError{Field: FieldImage, Message: "expected image to be a string"}
	}

	p.image = &image
	return nil
}

// SetURL sets the page loaded in web view. Required for ViewModeWeb.
func (p *Push) SetURL(u string) {
	p.url = &u
}

func (p *Push) SetLatitude(latitude string) {
	p.latitude = &latitude
}

func (p *Push) SetLongitude(longitude string) {
	p.longitude = &longitude
}

// ViewMode reports the mode Send will use.
func (p *Push) ViewMode() ViewMode {
	if p.viewMode == nil {
		return ViewModeMessage
	}
	return *p.viewMode
}

// Endpoint is the URL Send posts to.
func (p *Push) Endpoint() string {
	return p.endpoint
}

// Payload builds the form Send would post. Fields that do not belong to the
// resolved view mode are left out.
func (p *Push) Payload() (url.Values, error) {
	if p.message == nil {
		return nil, &ValidationError{Field: FieldMessage, Message: `"message" not set`}
	}

	form := url.Values{}
	form.Set(FieldMessage, *p.message)
	form.Set(FieldAPIKey, p.apiKey)
	form.Set(FieldAPISecret, p.apiSecret)

	setIf(form, FieldNotificationType, p.notificationType)

	switch p.ViewMode() {
	case ViewModeMessage:
		setIf(form, FieldArticle, p.article)
		setIf(form, FieldImage, p.image)
	case ViewModeWeb:
		if p.url == nil {
			return nil, &ValidationError{Field: FieldURL, Message: `"url" not set`}
		}
		form.Set(FieldURL, *p.url)
	case ViewModeMap:
		setIf(form, FieldLatitude, p.latitude)
		setIf(form, FieldLongitude, p.longitude)
	}

	return form, nil
}

// Send posts the notification and returns the decoded JSON response as
// map[string]any, []any or a scalar. The response is not interpreted.
func (p *Push) Send(ctx context.Context) (any, error) {
	form, err := p.Payload()
	if err != nil {
		return nil, err
	}

	resp, err := p.transport.PostForm(ctx, p.endpoint, form, p.userAgent)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return nil, err
		}
		return nil, &NetworkError{Endpoint: p.endpoint, Cause: err}
	}
	if resp == nil {
		return nil, &NetworkError{Endpoint: p.endpoint, Cause: errors.New("empty response")}
	}

	return decode(resp)
}

func decode(resp *Response) (any, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, &DecodeError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Cause:      errors.New("empty response body"),
		}
	}

	var result any
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, &DecodeError{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Cause:      err,
		}
	}

	return result, nil
}

func resolveEndpoint(baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", &ConfigurationError{Message: fmt.Sprintf("invalid base url %q: %v", baseURL, err)}
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return "", &ConfigurationError{Message: fmt.Sprintf("invalid base url %q: expected an absolute http(s) url", baseURL)}
	}

	return base.JoinPath(pushEndpoint).String(), nil
}

func setIf(form url.Values, key string, value *string) {
	if value != nil {
		form.Set(key, *value)
	}
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// isNilTransport also catches a nil pointer stored in the interface.
func isNilTransport(t Transport) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
