package application

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentsClient runs card payment operations against the gateway. Every call
// is a single blocking round trip; nothing is retried or cached here.
type PaymentsClient struct {
	merchantID string
	transport  Transport
	codec      Codec
	urls       URLResolver
	logger     *slog.Logger
}

func NewPaymentsClient(cfg domain.Configuration, transport Transport, codec Codec, urls URLResolver, logger *slog.Logger) *PaymentsClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentsClient{
		merchantID: cfg.MerchantIDString(),
		transport:  transport,
		codec:      codec,
		urls:       urls,
		logger:     logger,
	}
}

// MakePayment charges the card immediately. The request is sent without local
// validation; the gateway is the authority on what a valid charge looks like.
func (c *PaymentsClient) MakePayment(ctx context.Context, req *domain.CardPaymentRequest) (*domain.PaymentResponse, error) {
	payload := buildCardPayment(req, c.merchantID, true)
	return send[domain.PaymentResponse](ctx, c, domain.OperationCharge, http.MethodPost, "", payload)
}

// VoidPayment cancels a charge or pre-authorization. The gateway only accepts
// voids until its end-of-day cutoff; that rule is left to the caller.
func (c *PaymentsClient) VoidPayment(ctx context.Context, paymentID string, amount decimal.Decimal) (*domain.PaymentResponse, error) {
	if err := requireNonEmpty(paymentID, msgInvalidPaymentID); err != nil {
		return nil, err
	}
	payload := buildVoid(c.merchantID, amount)
	return send[domain.PaymentResponse](ctx, c, domain.OperationVoid, http.MethodPost, paymentID, payload)
}

// PreAuth places a hold on the card without capturing funds. The returned id is
// what PreAuthCompletion needs later.
func (c *PaymentsClient) PreAuth(ctx context.Context, req *domain.CardPaymentRequest) (*domain.PaymentResponse, error) {
	if err := requireCardPayment(req); err != nil {
		return nil, err
	}
	payload := buildCardPayment(req, c.merchantID, false)
	return send[domain.PaymentResponse](ctx, c, domain.OperationPreAuth, http.MethodPost, "", payload)
}

// PreAuthCompletion captures a pre-authorized payment for amount, which may be
// less than the amount held. orderNumber is optional.
func (c *PaymentsClient) PreAuthCompletion(ctx context.Context, paymentID string, amount decimal.Decimal, orderNumber *string) (*domain.PaymentResponse, error) {
	if err := requireNonEmpty(paymentID, msgInvalidPaymentID); err != nil {
		return nil, err
	}
	payload := buildCompletion(c.merchantID, amount, orderNumber)
	return send[domain.PaymentResponse](ctx, c, domain.OperationCompletion, http.MethodPost, paymentID, payload)
}

// ReturnPayment refunds amount of a settled payment.
func (c *PaymentsClient) ReturnPayment(ctx context.Context, paymentID string, amount decimal.Decimal, orderNumber *string) (*domain.PaymentResponse, error) {
	if err := requireNonEmpty(paymentID, msgInvalidPaymentID); err != nil {
		return nil, err
	}
	payload := buildReturn(c.merchantID, amount, orderNumber)
	return send[domain.PaymentResponse](ctx, c, domain.OperationReturn, http.MethodPost, paymentID, payload)
}

func (c *PaymentsClient) GetTransaction(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	if err := requireNonEmpty(paymentID, msgInvalidPaymentID); err != nil {
		return nil, err
	}
	return send[domain.Transaction](ctx, c, domain.OperationLookup, http.MethodGet, paymentID, nil)
}

func send[T any](ctx context.Context, c *PaymentsClient, op domain.Operation, method, paymentID string, payload any) (*T, error) {
	url, err := c.urls.Resolve(op, paymentID)
	if err != nil {
		apiErr := domain.NewClientValidationError("could not resolve endpoint")
		apiErr.Err = err
		return nil, apiErr
	}

	var body []byte
	if payload != nil {
		body, err = c.codec.Marshal(payload)
		if err != nil {
			apiErr := domain.NewClientValidationError("could not encode request")
			apiErr.Err = err
			return nil, apiErr
		}
	}

	c.logger.DebugContext(ctx, "sending gateway request",
		"operation", op,
		"method", method,
		"url", url,
	)

	raw, err := c.transport.Send(ctx, method, url, body)
	if err != nil {
		c.logger.DebugContext(ctx, "gateway request failed", "operation", op, "error", err)
		if apiErr, ok := domain.AsAPIError(err); ok {
			return nil, apiErr
		}
		return nil, domain.NewTransportError(err)
	}

	result, err := MapResponse[T](c.codec, raw)
	if err != nil {
		c.logger.DebugContext(ctx, "gateway rejected request",
			"operation", op,
			"status", raw.StatusCode,
			"error", err,
		)
		return nil, err
	}

	c.logger.DebugContext(ctx, "gateway request completed", "operation", op, "status", raw.StatusCode)
	return result, nil
}
