package postgres

import (
	"fmt"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/shopspring/decimal"
)

func toDBModel(e *domain.JournalEntry) *JournalModel {
	m := &JournalModel{
		ID:            e.ID,
		PaymentID:     nullable(e.PaymentID),
		Operation:     string(e.Operation),
		OrderNumber:   nullable(e.OrderNumber),
		State:         string(e.State),
		Approved:      e.Approved,
		ErrorCode:     e.ErrorCode,
		ErrorCategory: e.ErrorCategory,
		Message:       nullable(e.Message),
		CreatedAt:     e.CreatedAt,
	}
	if e.Amount.Valid {
		amount := domain.FormatAmount(e.Amount.Decimal)
		m.Amount = &amount
	}
	if e.ErrorKind != nil {
		kind := string(*e.ErrorKind)
		m.ErrorKind = &kind
	}
	return m
}

func toDomainModel(m *JournalModel) (*domain.JournalEntry, error) {
	e := &domain.JournalEntry{
		ID:            m.ID,
		PaymentID:     deref(m.PaymentID),
		Operation:     domain.Operation(m.Operation),
		OrderNumber:   deref(m.OrderNumber),
		State:         domain.TransactionState(m.State),
		Approved:      m.Approved,
		ErrorCode:     m.ErrorCode,
		ErrorCategory: m.ErrorCategory,
		Message:       deref(m.Message),
		CreatedAt:     m.CreatedAt,
	}
	if m.Amount != nil {
		amount, err := decimal.NewFromString(*m.Amount)
		if err != nil {
			return nil, fmt.Errorf("parse journal amount %q: %w", *m.Amount, err)
		}
		e.Amount = decimal.NewNullDecimal(amount)
	}
	if m.ErrorKind != nil {
		kind := domain.ErrorKind(*m.ErrorKind)
		e.ErrorKind = &kind
	}
	return e, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
