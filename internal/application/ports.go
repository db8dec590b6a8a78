package application

import (
	"context"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
)

// RawResponse is what the transport hands back for any completed exchange,
// whatever the status code.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Transport is the port for the HTTPS connection to the gateway. Credentials,
// TLS and timeouts belong to the implementation. Send returns an error only
// when no response was received.
type Transport interface {
	Send(ctx context.Context, method, url string, body []byte) (*RawResponse, error)
}

// Codec is the port for payload serialization.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// URLResolver is the port for the per-operation endpoint templates.
type URLResolver interface {
	Resolve(op domain.Operation, id string) (string, error)
}
