// Package queries contains read-only operations over the persistence layer,
// the read side of the CQRS split. Capacity and alert views read their
// projection tables straight from the database; order and worker activity
// views go through the repository read methods so the listing rules live in
// one place.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetClaimableOrdersQueryIsNotConstructed = errors.New(
	"GetClaimableOrdersQuery must be created via NewGetClaimableOrdersQuery constructor",
)

// GetClaimableOrdersQuery retrieves the orders a worker may still claim for
// one stage: PENDING orders with no picker, or PICKED orders with no
// packer. Clients re-poll this list after losing a claim race.
type GetClaimableOrdersQuery struct {
	stage order.ClaimStage

	guard guard.ConstructorGuard
}

// NewGetClaimableOrdersQuery creates a query for one claim stage.
func NewGetClaimableOrdersQuery(stage order.ClaimStage) (GetClaimableOrdersQuery, error) {
	if err := stage.Validate(); err != nil {
		return GetClaimableOrdersQuery{}, err
	}

	return GetClaimableOrdersQuery{
		stage: stage,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetClaimableOrdersQueryIsNotConstructed if validation fails.
func (q GetClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClaimableOrdersQueryIsNotConstructed)
}

// Stage returns the claim stage being listed.
func (q GetClaimableOrdersQuery) Stage() order.ClaimStage {
	return q.stage
}

// GetClaimableOrdersQueryResponse is one claimable order row.
type GetClaimableOrdersQueryResponse struct {
	ID        kernel.UUID
	Number    string
	Status    string
	Priority  string
	UpdatedAt time.Time
}
