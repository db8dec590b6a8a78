package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DanielPopoola/beanstream-payments/internal/application"
	"github.com/DanielPopoola/beanstream-payments/internal/config"
	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// HTTPTransport sends requests to the gateway with the merchant's passcode
// credentials attached.
type HTTPTransport struct {
	authorization string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewHTTPTransport builds the transport. Redirects are not followed: a 3xx is
// handed back as-is so a redirected POST is never replayed as a GET.
func NewHTTPTransport(merchant domain.Configuration, cfg config.GatewayConfig, logger *slog.Logger) application.Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPTransport{
		authorization: PasscodeAuthorization(merchant.MerchantID, merchant.APIPasscode),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// PasscodeAuthorization builds the Authorization header value for the
// gateway's "Passcode" scheme.
func PasscodeAuthorization(merchantID int, passcode string) string {
	token := base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(merchantID) + ":" + passcode))
	return "Passcode " + token
}

func (t *HTTPTransport) Send(ctx context.Context, method, url string, body []byte) (*application.RawResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Authorization", t.authorization)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.WarnContext(ctx, "gateway request failed",
			"method", method,
			"url", url,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	t.logger.DebugContext(ctx, "gateway exchange",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	return &application.RawResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
