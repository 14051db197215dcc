package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/presence"
	"fulfillment/internal/pkg/guard"
)

var ErrGetWorkerActivityQueryIsNotConstructed = errors.New(
	"GetWorkerActivityQuery must be created via NewGetWorkerActivityQuery constructor",
)

// GetWorkerActivityQuery builds the live dashboard read model: every known
// worker's presence record run through activity inference, with the order
// they are currently touching when one can be determined.
type GetWorkerActivityQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWorkerActivityQuery creates a query for the worker activity
// dashboard. This is a parameterless query covering all known workers.
func NewGetWorkerActivityQuery() GetWorkerActivityQuery {
	return GetWorkerActivityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWorkerActivityQueryIsNotConstructed if validation fails.
func (q GetWorkerActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerActivityQueryIsNotConstructed)
}

// GetWorkerActivityQueryResponse is one worker's inferred activity.
type GetWorkerActivityQueryResponse struct {
	WorkerID string
	Role     string
	Status   presence.ActivityStatus

	// OrderNumber is empty and Progress nil unless the worker is on a
	// working screen touching a recognizable order.
	OrderNumber string
	Progress    *int
}
