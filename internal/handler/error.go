package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/koungkub/pushco/internal/repository"
	"github.com/koungkub/pushco/pkg/push"
)

const (
	ErrorCodeRequest  = "E101"
	ErrorCodeInternal = "E102"
	ErrorCodeUpstream = "E103"
	ErrorCodeDecode   = "E104"
	ErrorCodeNotFound = "E105"
)

type ErrorHandler struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func (e *ErrorHandler) Error() string {
	return fmt.Sprintf("error code: %s, message: %s", e.ErrorCode, e.Message)
}

func GetRequestError(err error) error {
	return &ErrorHandler{
		ErrorCode: ErrorCodeRequest,
		Message:   err.Error(),
	}
}

func GetInternalError(err error) error {
	return &ErrorHandler{
		ErrorCode: ErrorCodeInternal,
		Message:   err.Error(),
	}
}

func GetUpstreamError(err error) error {
	return &ErrorHandler{
		ErrorCode: ErrorCodeUpstream,
		Message:   err.Error(),
	}
}

func GetDecodeError(err error) error {
	return &ErrorHandler{
		ErrorCode: ErrorCodeDecode,
		Message:   err.Error(),
	}
}

func GetNotFoundError(err error) error {
	return &ErrorHandler{
		ErrorCode: ErrorCodeNotFound,
		Message:   err.Error(),
	}
}

// GetSendError maps a failed send to its status code and response body.
func GetSendError(err error) (int, error) {
	switch {
	case errors.Is(err, repository.ErrApplicationNotFound):
		return http.StatusNotFound, GetNotFoundError(err)
	case errors.Is(err, push.ErrValidation):
		return http.StatusUnprocessableEntity, GetRequestError(err)
	case errors.Is(err, push.ErrNetwork):
		return http.StatusBadGateway, GetUpstreamError(err)
	case errors.Is(err, push.ErrDecode):
		return http.StatusBadGateway, GetDecodeError(err)
	default:
		return http.StatusInternalServerError, GetInternalError(err)
	}
}
