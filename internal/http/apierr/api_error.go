package apierr

import (
	"errors"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

// ErrorResponse is the error response for the API.
//
// Exactly one of Error, Message or Errors is set, depending on the kind of failure.
type ErrorResponse struct {
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details string                 `json:"details,omitempty"`
	Errors  []validator.FieldError `json:"errors,omitempty"`

	// StatusCode is the status code for the error response.
	StatusCode int `json:"-"`
}

func New(err error) ErrorResponse {
	return errorToErrorResponse(err)
}

var InternalServerErr = ErrorResponse{
	Error:      "an unknown error occurred",
	StatusCode: http.StatusInternalServerError,
}

func errorToErrorResponse(err error) ErrorResponse {
	var fieldErrs validator.FieldErrors
	if errors.As(err, &fieldErrs) {
		return ErrorResponse{
			Errors:     fieldErrs,
			StatusCode: http.StatusBadRequest,
		}
	}

	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		status := ZErrorStatusToHTTPStatus(zErr.Status())
		if zErr.Status() == zerror.StatusNotFound {
			return ErrorResponse{
				Message:    zErr.Msg(),
				StatusCode: status,
			}
		}

		return ErrorResponse{
			Error:      zErr.Msg(),
			Details:    zErr.Details(),
			StatusCode: status,
		}
	}

	return InternalServerErr
}

func ZErrorStatusToHTTPStatus(status zerror.Status) int {
	switch status {
	case zerror.StatusUnauthorized:
		return http.StatusUnauthorized
	case zerror.StatusForbidden:
		return http.StatusForbidden
	case zerror.StatusNotFound:
		return http.StatusNotFound
	case zerror.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case zerror.StatusConflict:
		return http.StatusConflict
	case zerror.StatusTooManyRequests:
		return http.StatusTooManyRequests
	case zerror.StatusBadRequest:
		return http.StatusBadRequest
	case zerror.StatusValidationFailed:
		return http.StatusBadRequest
	case zerror.StatusUnknown, zerror.StatusInternalServerError:
		return http.StatusInternalServerError
	case zerror.StatusTimeout:
		return http.StatusGatewayTimeout
	case zerror.StatusNotImplemented:
		return http.StatusNotImplemented
	case zerror.StatusBadGateway:
		return http.StatusBadGateway
	case zerror.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
