package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentsAPI is the subset of the payments client the CLI drives.
type PaymentsAPI interface {
	MakePayment(ctx context.Context, req *domain.CardPaymentRequest) (*domain.PaymentResponse, error)
	PreAuth(ctx context.Context, req *domain.CardPaymentRequest) (*domain.PaymentResponse, error)
	PreAuthCompletion(ctx context.Context, paymentID string, amount decimal.Decimal, orderNumber *string) (*domain.PaymentResponse, error)
	VoidPayment(ctx context.Context, paymentID string, amount decimal.Decimal) (*domain.PaymentResponse, error)
	ReturnPayment(ctx context.Context, paymentID string, amount decimal.Decimal, orderNumber *string) (*domain.PaymentResponse, error)
	GetTransaction(ctx context.Context, paymentID string) (*domain.Transaction, error)
}

// Journal records the outcome of each mutating call.
type Journal interface {
	Record(ctx context.Context, entry *domain.JournalEntry) error
	LatestState(ctx context.Context, paymentID string) (domain.TransactionState, error)
}

var errUnknownCommand = errors.New("unknown command")

type CLI struct {
	client  PaymentsAPI
	journal Journal
	out     io.Writer
	logger  *slog.Logger
}

// call is one parsed mutating command, ready to send.
type call struct {
	op          domain.Operation
	paymentID   string
	amount      decimal.Decimal
	orderNumber *string
	card        *domain.Card
}

func (c *CLI) Run(ctx context.Context, command string, args []string) error {
	if command == "get" {
		id, err := parseLookup(args)
		if err != nil {
			return err
		}
		tx, err := c.client.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		return c.print(tx)
	}

	cl, err := parseCall(command, args)
	if err != nil {
		return err
	}

	previous := c.previousState(ctx, cl)

	resp, err := c.send(ctx, cl)
	c.record(ctx, cl, previous, resp, err)
	if err != nil {
		return err
	}

	return c.print(resp)
}

func (c *CLI) send(ctx context.Context, cl *call) (*domain.PaymentResponse, error) {
	switch cl.op {
	case domain.OperationCharge, domain.OperationPreAuth:
		req := &domain.CardPaymentRequest{
			Amount: cl.amount,
			Card:   cl.card,
		}
		if cl.orderNumber != nil {
			req.OrderNumber = *cl.orderNumber
		}
		if cl.op == domain.OperationCharge {
			return c.client.MakePayment(ctx, req)
		}
		return c.client.PreAuth(ctx, req)
	case domain.OperationCompletion:
		return c.client.PreAuthCompletion(ctx, cl.paymentID, cl.amount, cl.orderNumber)
	case domain.OperationVoid:
		return c.client.VoidPayment(ctx, cl.paymentID, cl.amount)
	case domain.OperationReturn:
		return c.client.ReturnPayment(ctx, cl.paymentID, cl.amount, cl.orderNumber)
	}
	return nil, fmt.Errorf("%w: %s", errUnknownCommand, cl.op)
}

// previousState looks up the journaled state of the payment and warns when the
// requested operation is not a valid next step. The gateway stays the
// authority, so the call is sent regardless.
func (c *CLI) previousState(ctx context.Context, cl *call) domain.TransactionState {
	if c.journal == nil {
		return domain.StateNone
	}

	previous := domain.StateNone
	if cl.paymentID != "" {
		state, err := c.journal.LatestState(ctx, cl.paymentID)
		if err != nil {
			c.logger.WarnContext(ctx, "could not read journaled state", "payment_id", cl.paymentID, "error", err)
			return domain.StateNone
		}
		previous = state
	}

	if next, ok := cl.op.ResultingState(); ok {
		if err := domain.CheckTransition(previous, next); err != nil {
			c.logger.WarnContext(ctx, "operation does not follow journaled state",
				"payment_id", cl.paymentID,
				"operation", cl.op,
				"from", previous,
				"to", next,
			)
		}
	}

	return previous
}

func (c *CLI) record(ctx context.Context, cl *call, previous domain.TransactionState, resp *domain.PaymentResponse, callErr error) {
	if c.journal == nil {
		return
	}

	entry := domain.NewJournalEntry(uuid.NewString(), cl.op, cl.paymentID, previous, resp, callErr)
	entry.Amount = decimal.NewNullDecimal(cl.amount)
	if entry.OrderNumber == "" && cl.orderNumber != nil {
		entry.OrderNumber = *cl.orderNumber
	}

	if err := c.journal.Record(ctx, entry); err != nil {
		c.logger.ErrorContext(ctx, "failed to record journal entry", "entry_id", entry.ID, "error", err)
	}
}

func (c *CLI) print(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(out))
	return err
}

type errorOutput struct {
	Kind     domain.ErrorKind           `json:"kind,omitempty"`
	Category domain.ErrorCategory       `json:"category,omitempty"`
	Status   int                        `json:"status,omitempty"`
	Response *domain.BeanstreamResponse `json:"response,omitempty"`
	Error    string                     `json:"error"`
}

func (c *CLI) printError(err error) {
	out := errorOutput{Error: err.Error()}
	if apiErr, ok := domain.AsAPIError(err); ok {
		out.Kind = apiErr.Kind
		out.Category = apiErr.Category
		out.Status = apiErr.StatusCode
		out.Response = &apiErr.Response
	}
	if printErr := c.print(out); printErr != nil {
		c.logger.Error("failed to print error", "error", printErr, "cause", err)
	}
}

func parseLookup(args []string) (string, error) {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	id := fs.String("id", "", "payment id")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *id, nil
}

func parseCall(command string, args []string) (*call, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	amount := fs.String("amount", "", "amount, e.g. 10.00")
	order := fs.String("order", "", "merchant order number")

	cl := &call{}
	var card domain.Card
	var id *string

	switch command {
	case "charge", "preauth":
		cl.op = domain.OperationCharge
		if command == "preauth" {
			cl.op = domain.OperationPreAuth
		}
		fs.StringVar(&card.Name, "name", "", "cardholder name")
		fs.StringVar(&card.Number, "number", "", "card number")
		fs.StringVar(&card.ExpiryMonth, "expiry-month", "", "expiry month, MM")
		fs.StringVar(&card.ExpiryYear, "expiry-year", "", "expiry year, YY")
		fs.StringVar(&card.CVD, "cvd", "", "card verification digits")
	case "complete", "void", "return":
		switch command {
		case "complete":
			cl.op = domain.OperationCompletion
		case "void":
			cl.op = domain.OperationVoid
		default:
			cl.op = domain.OperationReturn
		}
		id = fs.String("id", "", "payment id")
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(*amount) != "" {
		parsed, err := decimal.NewFromString(*amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", *amount, err)
		}
		cl.amount = parsed
	}

	if id != nil {
		cl.paymentID = *id
	}

	// An unset order number stays out of the request body entirely.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "order" {
			cl.orderNumber = order
		}
	})

	if cl.op == domain.OperationCharge || cl.op == domain.OperationPreAuth {
		if card != (domain.Card{}) {
			cl.card = &card
		}
		if cl.orderNumber == nil {
			generated := uuid.NewString()[:8]
			cl.orderNumber = &generated
		}
	}

	return cl, nil
}
