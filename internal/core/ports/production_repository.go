package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
)

// ProductionOrderRepository defines the persistence contract for production
// order aggregates. The claim write follows the same conditional-update
// shape as fulfillment orders.
type ProductionOrderRepository interface {
	// Add persists a new production order.
	Add(ctx context.Context, aggregate *production.Order) error

	// Update persists changes to an existing production order.
	Update(ctx context.Context, aggregate *production.Order) error

	// Get retrieves a production order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*production.Order, error)

	// Claim attempts RELEASED -> IN_PROGRESS for the given operator as a
	// single conditional update. Losers get order.ErrClaimConflict.
	Claim(ctx context.Context, orderID, workerID kernel.UUID) (*production.Order, error)
}
