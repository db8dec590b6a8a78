package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind says where a failure originated.
type ErrorKind string

const (
	KindClientValidation ErrorKind = "CLIENT_VALIDATION"
	KindGateway          ErrorKind = "GATEWAY"
	KindTransport        ErrorKind = "TRANSPORT"
)

// ErrorCategory classifies a failure by the HTTP status class it arrived with.
type ErrorCategory string

const (
	CategoryRedirection        ErrorCategory = "REDIRECTION"
	CategoryInvalidRequest     ErrorCategory = "INVALID_REQUEST"
	CategoryUnauthorized       ErrorCategory = "UNAUTHORIZED"
	CategoryBusinessRule       ErrorCategory = "BUSINESS_RULE"
	CategoryForbidden          ErrorCategory = "FORBIDDEN"
	CategoryInternalServer     ErrorCategory = "INTERNAL_SERVER"
	CategoryUnexpected         ErrorCategory = "UNEXPECTED"
	CategoryUnexpectedResponse ErrorCategory = "UNEXPECTED_RESPONSE"
	CategoryTransport          ErrorCategory = "TRANSPORT"
)

// ClientValidationCode is used for both code and category of errors raised
// before a request leaves the client.
const ClientValidationCode = -1

// APIError is the single error shape surfaced by the payments client.
type APIError struct {
	Kind       ErrorKind
	Category   ErrorCategory
	StatusCode int
	Response   BeanstreamResponse
	Err        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("beanstream %s error [%s] code=%d category=%d: %s (status: %d)",
		strings.ToLower(string(e.Kind)), e.Category, e.Response.Code, e.Response.Category, e.Response.Message, e.StatusCode)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Code() int {
	return e.Response.Code
}

func (e *APIError) Message() string {
	return e.Response.Message
}

// NewClientValidationError reports input rejected before any network call.
func NewClientValidationError(message string) *APIError {
	return &APIError{
		Kind:       KindClientValidation,
		Category:   CategoryInvalidRequest,
		StatusCode: http.StatusBadRequest,
		Response: BeanstreamResponse{
			Code:     ClientValidationCode,
			Category: ClientValidationCode,
			Message:  message,
		},
	}
}

func NewGatewayError(statusCode int, category ErrorCategory, resp BeanstreamResponse) *APIError {
	return &APIError{
		Kind:       KindGateway,
		Category:   category,
		StatusCode: statusCode,
		Response:   resp,
	}
}

// NewUnexpectedResponseError covers a success status whose body could not be used.
func NewUnexpectedResponseError(statusCode int, err error) *APIError {
	return &APIError{
		Kind:       KindGateway,
		Category:   CategoryUnexpectedResponse,
		StatusCode: statusCode,
		Response: BeanstreamResponse{
			Code:     statusCode,
			Category: ClientValidationCode,
			Message:  "unexpected response shape from gateway",
		},
		Err: err,
	}
}

func NewTransportError(err error) *APIError {
	return &APIError{
		Kind:     KindTransport,
		Category: CategoryTransport,
		Response: BeanstreamResponse{
			Code:     ClientValidationCode,
			Category: ClientValidationCode,
			Message:  "gateway request failed",
		},
		Err: err,
	}
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func IsClientValidation(err error) bool {
	return isKind(err, KindClientValidation)
}

func IsGatewayError(err error) bool {
	return isKind(err, KindGateway)
}

func IsTransportError(err error) bool {
	return isKind(err, KindTransport)
}

func isKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}
