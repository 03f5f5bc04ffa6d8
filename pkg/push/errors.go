package push

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("push: configuration error")
	ErrValidation    = errors.New("push: validation error")
	ErrNetwork       = errors.New("push: network error")
	ErrDecode        = errors.New("push: decode error")
)

// ConfigurationError reports malformed credentials or a missing transport.
// A Push that failed construction cannot be used.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "push: configuration error: " + e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidationError reports a field that violates one of its constraints.
// The caller can correct the input and call again.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "push: validation error: " + e.Message
	}
	return fmt.Sprintf("push: validation error: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NetworkError wraps a transport failure: refused connection, timeout, DNS
// failure or a cancelled context.
type NetworkError struct {
	Endpoint string
	Cause    error
}

func (e *NetworkError) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, "push: network error")
	if e.Endpoint != "" {
		parts = append(parts, "POST "+e.Endpoint)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// DecodeError is returned when the response body is not valid JSON. Body
// holds the raw response for diagnostics.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Cause      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("push: decode error: status=%d", e.StatusCode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		msg += ": body=" + truncate(body, 256)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
