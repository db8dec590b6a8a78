package domain

import "github.com/shopspring/decimal"

const PaymentMethodCard = "card"

type Card struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVD         string `json:"cvd"`
	Complete    bool   `json:"complete"`
}

// CardPaymentRequest is what a caller fills in to charge or pre-authorize a card.
// The merchant id and the card's complete flag are set by the client, not the caller.
type CardPaymentRequest struct {
	OrderNumber   string
	Amount        decimal.Decimal
	PaymentMethod string
	Card          *Card
}

// CardPaymentPayload is the body POSTed to the payments endpoint.
type CardPaymentPayload struct {
	MerchantID    string `json:"merchant_id"`
	OrderNumber   string `json:"order_number,omitempty"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Card          *Card  `json:"card,omitempty"`
}

type VoidRequest struct {
	MerchantID string `json:"merchant_id"`
	Amount     string `json:"amount"`
}

// CompletionRequest finalizes a pre-authorization. OrderNumber is left out of the
// body entirely when nil.
type CompletionRequest struct {
	MerchantID  string  `json:"merchant_id"`
	Amount      string  `json:"amount"`
	OrderNumber *string `json:"order_number,omitempty"`
}

// ReturnRequest refunds all or part of a settled payment.
type ReturnRequest struct {
	MerchantID  string  `json:"merchant_id"`
	Amount      string  `json:"amount"`
	OrderNumber *string `json:"order_number,omitempty"`
}

// FormatAmount renders an amount the way the gateway expects it in string fields.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
