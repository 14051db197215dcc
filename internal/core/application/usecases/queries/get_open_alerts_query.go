package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOpenAlertsQueryIsNotConstructed = errors.New(
	"GetOpenAlertsQuery must be created via NewGetOpenAlertsQuery constructor",
)

// GetOpenAlertsQuery retrieves all unacknowledged capacity alerts for the
// alert inbox, newest first.
type GetOpenAlertsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenAlertsQuery creates a query for the open alert list.
// This is a parameterless query.
func NewGetOpenAlertsQuery() GetOpenAlertsQuery {
	return GetOpenAlertsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenAlertsQueryIsNotConstructed if validation fails.
func (q GetOpenAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenAlertsQueryIsNotConstructed)
}

// GetOpenAlertsQueryResponse is one open capacity alert.
type GetOpenAlertsQueryResponse struct {
	ID           kernel.UUID
	LocationCode string
	Zone         string
	Dimension    string
	AlertType    string
	Utilization  float64
	MaxCapacity  float64
	Percent      float64
	Message      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
