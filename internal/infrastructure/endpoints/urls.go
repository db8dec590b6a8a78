package endpoints

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/DanielPopoola/beanstream-payments/internal/domain"
)

// DefaultBaseURL is the production gateway; {platform} selects the host.
const DefaultBaseURL = "https://{platform}.beanstream.com/api"

const (
	paymentsPath    = "{base}/{version}/payments"
	voidPath        = paymentsPath + "/{id}/void"
	completionsPath = paymentsPath + "/{id}/completions"
	returnsPath     = paymentsPath + "/{id}/returns"
	transactionPath = paymentsPath + "/{id}"
)

var ErrMissingTransactionID = errors.New("endpoint requires a transaction id")

var templates = map[domain.Operation]string{
	domain.OperationCharge:     paymentsPath,
	domain.OperationPreAuth:    paymentsPath,
	domain.OperationVoid:       voidPath,
	domain.OperationCompletion: completionsPath,
	domain.OperationReturn:     returnsPath,
	domain.OperationLookup:     transactionPath,
}

// Resolver fills the URL templates for one platform and API version.
type Resolver struct {
	base    string
	version string
}

// NewResolver builds a resolver. An empty baseURL selects DefaultBaseURL.
func NewResolver(baseURL, platform, version string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base := strings.ReplaceAll(strings.TrimRight(baseURL, "/"), "{platform}", url.PathEscape(platform))
	return &Resolver{
		base:    base,
		version: url.PathEscape(version),
	}
}

func (r *Resolver) Resolve(op domain.Operation, id string) (string, error) {
	tmpl, ok := templates[op]
	if !ok {
		return "", fmt.Errorf("no endpoint for operation %q", op)
	}

	needsID := strings.Contains(tmpl, "{id}")
	if needsID && strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingTransactionID)
	}

	replacer := strings.NewReplacer(
		"{base}", r.base,
		"{version}", r.version,
		"{id}", url.PathEscape(id),
	)
	return replacer.Replace(tmpl), nil
}
