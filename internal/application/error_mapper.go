package application

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
)

var (
	errEmptyBody = errors.New("empty response body")
	errMissingID = errors.New("response carries no transaction id")
)

// validatable results can tell a real gateway answer from a decoded but empty object.
type validatable interface {
	Valid() bool
}

// CategoryForStatus maps every HTTP status code to exactly one error category.
func CategoryForStatus(status int) domain.ErrorCategory {
	switch {
	case status >= 300 && status < 400:
		return domain.CategoryRedirection
	case status == http.StatusUnauthorized:
		return domain.CategoryUnauthorized
	case status == http.StatusPaymentRequired:
		return domain.CategoryBusinessRule
	case status == http.StatusForbidden:
		return domain.CategoryForbidden
	case status >= 400 && status < 500:
		return domain.CategoryInvalidRequest
	case status >= 500 && status < 600:
		return domain.CategoryInternalServer
	}
	return domain.CategoryUnexpected
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// MapResponse turns a completed exchange into either a decoded T or an *domain.APIError.
func MapResponse[T any](codec Codec, resp *RawResponse) (*T, error) {
	if resp == nil {
		return nil, domain.NewUnexpectedResponseError(0, errEmptyBody)
	}

	if !isSuccess(resp.StatusCode) {
		return nil, MapError(codec, resp.StatusCode, resp.Body)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, domain.NewUnexpectedResponseError(resp.StatusCode, errEmptyBody)
	}

	var out T
	if err := codec.Unmarshal(body, &out); err != nil {
		return nil, domain.NewUnexpectedResponseError(resp.StatusCode, err)
	}

	if v, ok := any(&out).(validatable); ok && !v.Valid() {
		return nil, domain.NewUnexpectedResponseError(resp.StatusCode, errMissingID)
	}

	return &out, nil
}

// MapError builds the gateway error for a non-success status. Bodies that do not
// carry the gateway's error shape get a synthesized one.
func MapError(codec Codec, status int, body []byte) *domain.APIError {
	var gatewayResp domain.BeanstreamResponse
	err := codec.Unmarshal(body, &gatewayResp)
	if err != nil || (gatewayResp.Code == 0 && gatewayResp.Message == "") {
		gatewayResp = domain.BeanstreamResponse{
			Code:     status,
			Category: domain.ClientValidationCode,
			Message:  fmt.Sprintf("unexpected gateway response (HTTP %d)", status),
		}
	}

	return domain.NewGatewayError(status, CategoryForStatus(status), gatewayResp)
}
