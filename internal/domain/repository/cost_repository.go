package repository

import (
	"context"

	"github.com/gregohare/finout-top-costs/internal/domain/entity"
)

// CostSourceRepository defines the interface for fetching cost rows for a view.
type CostSourceRepository interface {
	// QueryViewCosts returns all rows of the view, including the sentinel
	// total row when the source reports one.
	QueryViewCosts(ctx context.Context, query entity.CostQuery) (entity.ViewCosts, error)

	// Name is the human-readable source name used in the output payload.
	Name() string
}
