package domain

import (
	"errors"
	"slices"
)

var ErrInvalidTransition = errors.New("invalid transaction state transition")

// Operation names a call the client can make against the gateway.
type Operation string

const (
	OperationCharge     Operation = "CHARGE"
	OperationPreAuth    Operation = "PRE_AUTH"
	OperationVoid       Operation = "VOID"
	OperationCompletion Operation = "COMPLETION"
	OperationReturn     Operation = "RETURN"
	OperationLookup     Operation = "LOOKUP"
)

// TransactionState is where a payment sits in its lifecycle as seen by the caller.
// The client itself is stateless; this is advisory bookkeeping for callers that
// track a sequence of calls.
type TransactionState string

const (
	StateNone          TransactionState = "NONE"
	StateCharged       TransactionState = "CHARGED"
	StatePreAuthorized TransactionState = "PRE_AUTHORIZED"
	StateCompleted     TransactionState = "COMPLETED"
	StateVoided        TransactionState = "VOIDED"
	StateReturned      TransactionState = "RETURNED"
)

// ResultingState is the state a successful operation moves a transaction into.
// Lookups do not change state.
func (op Operation) ResultingState() (TransactionState, bool) {
	switch op {
	case OperationCharge:
		return StateCharged, true
	case OperationPreAuth:
		return StatePreAuthorized, true
	case OperationCompletion:
		return StateCompleted, true
	case OperationVoid:
		return StateVoided, true
	case OperationReturn:
		return StateReturned, true
	}
	return "", false
}

// CheckTransition returns ErrInvalidTransition when to is not reachable from from.
func CheckTransition(from, to TransactionState) error {
	switch from {
	case StateNone:
		return allow(to, StateCharged, StatePreAuthorized)
	case StatePreAuthorized:
		return allow(to, StateCompleted, StateVoided)
	case StateCharged:
		return allow(to, StateVoided, StateReturned)
	case StateCompleted:
		return allow(to, StateVoided, StateReturned)
	case StateReturned:
		// partial returns can be repeated
		return allow(to, StateReturned)
	}
	return ErrInvalidTransition
}

func allow(target TransactionState, allowed ...TransactionState) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return ErrInvalidTransition
}
