package postgres

import "time"

// JournalModel is one row of payment_journal.
type JournalModel struct {
	ID            string
	PaymentID     *string
	Operation     string
	Amount        *string
	OrderNumber   *string
	State         string
	Approved      bool
	ErrorKind     *string
	ErrorCode     *int
	ErrorCategory *int
	Message       *string
	CreatedAt     time.Time
}
