package application

import (
	"strings"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
)

const (
	msgInvalidPaymentID      = "invalid payment id"
	msgInvalidPaymentRequest = "invalid payment request"
)

// requireNonEmpty rejects empty and whitespace-only values.
func requireNonEmpty(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewClientValidationError(message)
	}
	return nil
}

func requireCardPayment(req *domain.CardPaymentRequest) error {
	if req == nil || req.Card == nil {
		return domain.NewClientValidationError(msgInvalidPaymentRequest)
	}
	return nil
}
