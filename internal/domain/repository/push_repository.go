package repository

import (
	"context"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
)

// PushRepository defines the interface for forwarding the summary payload to
// an external HTTP endpoint.
type PushRepository interface {
	// Push POSTs the payload as JSON and returns the response status code and
	// body. Non-2xx responses are returned as errors.
	Push(ctx context.Context, payload entity.PushPayload, url string) (int, string, error)
}
