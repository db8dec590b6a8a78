package transport_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/beanstream-payments/internal/application"
	"github.com/DanielPopoola/beanstream-payments/internal/application/mocks"
	"github.com/DanielPopoola/beanstream-payments/internal/config"
	"github.com/DanielPopoola/beanstream-payments/internal/infrastructure/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const paymentsURL = "https://www.beanstream.com/api/v1/payments"

var body = []byte(`{"merchant_id":"300200578"}`)

func newRetryTransport(inner application.Transport, maxRetries int) application.Transport {
	return transport.NewRetryTransport(inner, config.RetryConfig{
		BaseDelay:  time.Millisecond,
		MaxRetries: maxRetries,
	}, testLogger)
}

func TestRetryTransport_Success(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	expected := &application.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"1"}`)}
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(expected, nil).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	require.NoError(t, err)
	assert.Equal(t, expected, resp)
}

func TestRetryTransport_RetriesOn5xx(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	expected := &application.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"1"}`)}

	// First two calls fail with 503
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(&application.RawResponse{StatusCode: http.StatusServiceUnavailable}, nil).
		Twice()

	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(expected, nil).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	require.NoError(t, err)
	assert.Equal(t, expected, resp)
}

func TestRetryTransport_DoesNotRetryOn4xx(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	declined := &application.RawResponse{StatusCode: http.StatusPaymentRequired, Body: []byte(`{"code":7}`)}

	// Should only be called once (no retry on 4xx)
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(declined, nil).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	require.NoError(t, err)
	assert.Equal(t, declined, resp)
}

func TestRetryTransport_ReturnsLast5xxWhenExhausted(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 2)

	unavailable := &application.RawResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{"code":500}`)}
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(unavailable, nil).
		Twice()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	require.NoError(t, err)
	assert.Equal(t, unavailable, resp)
}

func TestRetryTransport_ExhaustsRetriesOnNetworkError(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	networkErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(nil, fmt.Errorf("error making request: %w", networkErr)).
		Times(3)

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, networkErr)
	assert.Contains(t, err.Error(), "maximum retries exceeded")
}

func TestRetryTransport_SingleAttemptByDefault(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 0)

	networkErr := errors.New("connection reset")
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(nil, networkErr).
		Once()

	_, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	assert.ErrorIs(t, err, networkErr)
}

func TestRetryTransport_StopsOnCancellation(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(nil, context.Canceled).
		Once()

	_, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryTransport_ContextAlreadyDone(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := retry.Send(ctx, http.MethodPost, paymentsURL, body)

	assert.ErrorIs(t, err, context.Canceled)
	inner.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetryTransport_DoesNotResendPostAfterConnecting(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(nil, fmt.Errorf("error making request: %w", context.DeadlineExceeded)).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), "maximum retries exceeded")
}

func TestRetryTransport_RetriesLookupOnNetworkError(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := newRetryTransport(inner, 3)

	lookupURL := paymentsURL + "/10000001"
	expected := &application.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"10000001"}`)}

	inner.EXPECT().
		Send(mock.Anything, http.MethodGet, lookupURL, []byte(nil)).
		Return(nil, errors.New("connection reset by peer")).
		Once()
	inner.EXPECT().
		Send(mock.Anything, http.MethodGet, lookupURL, []byte(nil)).
		Return(expected, nil).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodGet, lookupURL, nil)

	require.NoError(t, err)
	assert.Equal(t, expected, resp)
}

func TestRetryTransport_NilLogger(t *testing.T) {
	inner := mocks.NewMockTransport(t)
	retry := transport.NewRetryTransport(inner, config.RetryConfig{MaxRetries: 2}, nil)

	expected := &application.RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"1"}`)}
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(&application.RawResponse{StatusCode: http.StatusBadGateway}, nil).
		Once()
	inner.EXPECT().
		Send(mock.Anything, http.MethodPost, paymentsURL, body).
		Return(expected, nil).
		Once()

	resp, err := retry.Send(context.Background(), http.MethodPost, paymentsURL, body)

	require.NoError(t, err)
	assert.Equal(t, expected, resp)
}
