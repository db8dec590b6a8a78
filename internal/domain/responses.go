package domain

import "github.com/shopspring/decimal"

type CardResponse struct {
	CardType string `json:"card_type"`
	LastFour string `json:"last_four"`
}

type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// PaymentResponse is returned by every payment-changing operation.
type PaymentResponse struct {
	ID            string        `json:"id"`
	Approved      string        `json:"approved"`
	MessageID     string        `json:"message_id"`
	Message       string        `json:"message"`
	AuthCode      string        `json:"auth_code"`
	Created       string        `json:"created"`
	OrderNumber   string        `json:"order_number"`
	Type          string        `json:"type"`
	PaymentMethod string        `json:"payment_method"`
	Card          *CardResponse `json:"card,omitempty"`
	Links         []Link        `json:"links,omitempty"`
}

// Valid reports whether the gateway identified the transaction.
func (r *PaymentResponse) Valid() bool {
	return r.ID != ""
}

func (r *PaymentResponse) IsApproved() bool {
	return r.Approved == "1"
}

type Adjustment struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Created string          `json:"created"`
}

// Transaction is the gateway's full view of a payment, including later voids,
// completions and returns applied to it.
type Transaction struct {
	ID            string          `json:"id"`
	Approved      string          `json:"approved"`
	MessageID     string          `json:"message_id"`
	Message       string          `json:"message"`
	AuthCode      string          `json:"auth_code"`
	Created       string          `json:"created"`
	Amount        decimal.Decimal `json:"amount"`
	OrderNumber   string          `json:"order_number"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"payment_method"`
	Card          *CardResponse   `json:"card,omitempty"`
	Adjustments   []Adjustment    `json:"adjusted_by,omitempty"`
	Links         []Link          `json:"links,omitempty"`
}

func (t *Transaction) Valid() bool {
	return t.ID != ""
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BeanstreamResponse is the body the gateway sends with a failed request.
type BeanstreamResponse struct {
	Code      int          `json:"code"`
	Category  int          `json:"category"`
	Message   string       `json:"message"`
	Reference string       `json:"reference,omitempty"`
	Details   []FieldError `json:"details,omitempty"`
}
