package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/jackc/pgx/v5"
)

var ErrDuplicateJournalEntry = errors.New("journal entry already recorded")

const journalSchema = `
	CREATE TABLE IF NOT EXISTS payment_journal (
		seq            BIGSERIAL PRIMARY KEY,
		id             TEXT NOT NULL UNIQUE,
		payment_id     TEXT,
		operation      TEXT NOT NULL,
		amount         NUMERIC(12, 2),
		order_number   TEXT,
		state          TEXT NOT NULL,
		approved       BOOLEAN NOT NULL DEFAULT FALSE,
		error_kind     TEXT,
		error_code     INTEGER,
		error_category INTEGER,
		message        TEXT,
		created_at     TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payment_journal_payment_id ON payment_journal (payment_id, seq);
`

// Journal keeps a local record of every gateway call made through the CLI and
// the advisory state each payment reached.
type Journal struct {
	db Executor
}

func NewJournal(db Executor) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Migrate(ctx context.Context) error {
	if _, err := j.db.Exec(ctx, journalSchema); err != nil {
		return fmt.Errorf("failed to migrate payment journal: %w", err)
	}
	return nil
}

func (j *Journal) Record(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO payment_journal (
			id, payment_id, operation, amount, order_number, state, approved,
			error_kind, error_code, error_category, message, created_at
		) VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	m := toDBModel(entry)
	_, err := j.db.Exec(ctx, query,
		m.ID,
		m.PaymentID,
		m.Operation,
		m.Amount,
		m.OrderNumber,
		m.State,
		m.Approved,
		m.ErrorKind,
		m.ErrorCode,
		m.ErrorCategory,
		m.Message,
		m.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateJournalEntry
		}
		return fmt.Errorf("failed to record journal entry: %w", err)
	}

	return nil
}

// LatestState returns the state recorded by the most recent entry for a
// payment, or StateNone when the payment has never been seen.
func (j *Journal) LatestState(ctx context.Context, paymentID string) (domain.TransactionState, error) {
	query := `
		SELECT state FROM payment_journal
		WHERE payment_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	var state string
	err := j.db.QueryRow(ctx, query, paymentID).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StateNone, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read latest state: %w", err)
	}

	return domain.TransactionState(state), nil
}

// History lists a payment's entries oldest first.
func (j *Journal) History(ctx context.Context, paymentID string) ([]*domain.JournalEntry, error) {
	query := `
		SELECT id, payment_id, operation, amount::text, order_number, state, approved,
		       error_kind, error_code, error_category, message, created_at
		FROM payment_journal
		WHERE payment_id = $1
		ORDER BY seq ASC
	`

	rows, err := j.db.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []*domain.JournalEntry
	for rows.Next() {
		var m JournalModel
		if err := rows.Scan(
			&m.ID,
			&m.PaymentID,
			&m.Operation,
			&m.Amount,
			&m.OrderNumber,
			&m.State,
			&m.Approved,
			&m.ErrorKind,
			&m.ErrorCode,
			&m.ErrorCategory,
			&m.Message,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		entry, err := toDomainModel(&m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal: %w", err)
	}

	return entries, nil
}
