package application_test

import (
	"net/http"
	"testing"

	"github.com/DanielPopoola/beanstream-payments/internal/application"
	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   domain.ErrorCategory
	}{
		{0, domain.CategoryUnexpected},
		{http.StatusContinue, domain.CategoryUnexpected},
		{http.StatusMovedPermanently, domain.CategoryRedirection},
		{http.StatusFound, domain.CategoryRedirection},
		{http.StatusBadRequest, domain.CategoryInvalidRequest},
		{http.StatusUnauthorized, domain.CategoryUnauthorized},
		{http.StatusPaymentRequired, domain.CategoryBusinessRule},
		{http.StatusForbidden, domain.CategoryForbidden},
		{http.StatusNotFound, domain.CategoryInvalidRequest},
		{http.StatusMethodNotAllowed, domain.CategoryInvalidRequest},
		{http.StatusConflict, domain.CategoryInvalidRequest},
		{http.StatusUnsupportedMediaType, domain.CategoryInvalidRequest},
		{http.StatusTeapot, domain.CategoryInvalidRequest},
		{http.StatusInternalServerError, domain.CategoryInternalServer},
		{http.StatusBadGateway, domain.CategoryInternalServer},
		{http.StatusServiceUnavailable, domain.CategoryInternalServer},
		{599, domain.CategoryInternalServer},
		{600, domain.CategoryUnexpected},
		{999, domain.CategoryUnexpected},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, application.CategoryForStatus(tt.status), "status %d", tt.status)
		})
	}
}

func TestMapResponse_Success(t *testing.T) {
	resp, err := application.MapResponse[domain.PaymentResponse](codec.NewJSON(), &application.RawResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"id":"10000001","approved":"0","message":"DECLINE","type":"P"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.PaymentResponse{ID: "10000001", Approved: "0", Message: "DECLINE", Type: "P"}, resp)
	assert.False(t, resp.IsApproved())
}

func TestMapResponse_UnusableSuccessBody(t *testing.T) {
	for name, body := range map[string]string{
		"empty":        "",
		"whitespace":   "  \n",
		"null":         "null",
		"not json":     "OK",
		"wrong type":   `"approved"`,
		"empty object": "{}",
		"wrong shape":  `{"unexpected":"shape"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := application.MapResponse[domain.PaymentResponse](codec.NewJSON(), &application.RawResponse{
				StatusCode: http.StatusOK,
				Body:       []byte(body),
			})

			assert.Nil(t, resp)
			apiErr, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, domain.KindGateway, apiErr.Kind)
			assert.Equal(t, domain.CategoryUnexpectedResponse, apiErr.Category)
		})
	}
}

func TestMapResponse_GatewayError(t *testing.T) {
	t.Run("decodes gateway error body", func(t *testing.T) {
		_, err := application.MapResponse[domain.PaymentResponse](codec.NewJSON(), &application.RawResponse{
			StatusCode: http.StatusPaymentRequired,
			Body:       []byte(`{"code":7,"category":1,"message":"DECLINE","reference":"","details":[{"field":"card.cvd","message":"invalid"}]}`),
		})

		apiErr, ok := domain.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, domain.KindGateway, apiErr.Kind)
		assert.Equal(t, domain.CategoryBusinessRule, apiErr.Category)
		assert.Equal(t, 7, apiErr.Response.Code)
		assert.Equal(t, 1, apiErr.Response.Category)
		assert.Equal(t, "DECLINE", apiErr.Response.Message)
		require.Len(t, apiErr.Response.Details, 1)
		assert.Equal(t, "card.cvd", apiErr.Response.Details[0].Field)
	})

	for name, body := range map[string]string{
		"html":         "<html>Bad Gateway</html>",
		"empty":        "",
		"empty object": "{}",
	} {
		t.Run("synthesizes error for "+name, func(t *testing.T) {
			_, err := application.MapResponse[domain.PaymentResponse](codec.NewJSON(), &application.RawResponse{
				StatusCode: http.StatusBadGateway,
				Body:       []byte(body),
			})

			apiErr, ok := domain.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, domain.CategoryInternalServer, apiErr.Category)
			assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
			assert.Equal(t, http.StatusBadGateway, apiErr.Response.Code)
			assert.Contains(t, apiErr.Response.Message, "502")
		})
	}
}

func TestMapResponse_NilResponse(t *testing.T) {
	_, err := application.MapResponse[domain.PaymentResponse](codec.NewJSON(), nil)

	assert.True(t, domain.IsGatewayError(err))
}
