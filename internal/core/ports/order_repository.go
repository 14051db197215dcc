package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for fulfillment order
// aggregates. Beyond plain CRUD it exposes the conditional claim write that
// arbitrates contested assignments.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Claim attempts the stage's contested assignment as a single
	// conditional update: the row must still hold the stage's required
	// status with an empty assignee slot. Exactly one concurrent caller
	// wins; losers get order.ErrClaimConflict. On success the full row is
	// re-read and returned.
	Claim(ctx context.Context, orderID, workerID kernel.UUID, stage order.ClaimStage) (*order.Order, error)

	// GetAllClaimable retrieves orders eligible for the stage's claim,
	// highest priority first. Used by the claim UI to re-poll after a
	// lost race.
	GetAllClaimable(ctx context.Context, stage order.ClaimStage) ([]*order.Order, error)

	// GetRecentForWorker retrieves the orders a worker touched most
	// recently, newest first. Presence inference cross-references these to
	// recover a progress percentage.
	GetRecentForWorker(ctx context.Context, workerID kernel.UUID, limit int) ([]*order.Order, error)
}
