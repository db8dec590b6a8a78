package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry records the outcome of one gateway call.
type JournalEntry struct {
	ID            string
	PaymentID     string
	Operation     Operation
	Amount        decimal.NullDecimal
	OrderNumber   string
	State         TransactionState
	Approved      bool
	ErrorKind     *ErrorKind
	ErrorCode     *int
	ErrorCategory *int
	Message       string
	CreatedAt     time.Time
}

// NewJournalEntry builds the entry for an operation's result. When err is non-nil
// the transaction keeps its previous state.
func NewJournalEntry(id string, op Operation, paymentID string, previous TransactionState, resp *PaymentResponse, err error) *JournalEntry {
	entry := &JournalEntry{
		ID:        id,
		PaymentID: paymentID,
		Operation: op,
		State:     previous,
		CreatedAt: time.Now().UTC(),
	}

	if err != nil {
		entry.Message = err.Error()
		if apiErr, ok := AsAPIError(err); ok {
			kind := apiErr.Kind
			code := apiErr.Response.Code
			category := apiErr.Response.Category
			entry.ErrorKind = &kind
			entry.ErrorCode = &code
			entry.ErrorCategory = &category
			entry.Message = apiErr.Response.Message
		}
		return entry
	}

	if resp != nil {
		if entry.PaymentID == "" {
			entry.PaymentID = resp.ID
		}
		entry.OrderNumber = resp.OrderNumber
		entry.Approved = resp.IsApproved()
		entry.Message = resp.Message
		if next, ok := op.ResultingState(); ok && entry.Approved {
			entry.State = next
		}
	}

	return entry
}
