package application

import (
	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/shopspring/decimal"
)

// buildCardPayment copies req into a payload carrying the merchant id and the
// given complete flag. req and its card are left untouched.
func buildCardPayment(req *domain.CardPaymentRequest, merchantID string, complete bool) domain.CardPaymentPayload {
	payload := domain.CardPaymentPayload{
		MerchantID:    merchantID,
		Amount:        domain.FormatAmount(decimal.Zero),
		PaymentMethod: domain.PaymentMethodCard,
	}
	if req == nil {
		return payload
	}

	payload.OrderNumber = req.OrderNumber
	payload.Amount = domain.FormatAmount(req.Amount)
	if req.PaymentMethod != "" {
		payload.PaymentMethod = req.PaymentMethod
	}
	if req.Card != nil {
		card := *req.Card
		card.Complete = complete
		payload.Card = &card
	}

	return payload
}

func buildVoid(merchantID string, amount decimal.Decimal) domain.VoidRequest {
	return domain.VoidRequest{
		MerchantID: merchantID,
		Amount:     domain.FormatAmount(amount),
	}
}

func buildCompletion(merchantID string, amount decimal.Decimal, orderNumber *string) domain.CompletionRequest {
	return domain.CompletionRequest{
		MerchantID:  merchantID,
		Amount:      domain.FormatAmount(amount),
		OrderNumber: orderNumber,
	}
}

func buildReturn(merchantID string, amount decimal.Decimal, orderNumber *string) domain.ReturnRequest {
	return domain.ReturnRequest{
		MerchantID:  merchantID,
		Amount:      domain.FormatAmount(amount),
		OrderNumber: orderNumber,
	}
}
