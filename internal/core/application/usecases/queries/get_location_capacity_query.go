package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetLocationCapacityQueryIsNotConstructed = errors.New(
	"GetLocationCapacityQuery must be created via NewGetLocationCapacityQuery constructor",
)

// GetLocationCapacityQuery retrieves the current capacity records of one
// storage location, one row per tracked dimension.
type GetLocationCapacityQuery struct {
	locationCode string

	guard guard.ConstructorGuard
}

// NewGetLocationCapacityQuery creates a query for one location's capacity.
func NewGetLocationCapacityQuery(locationCode string) (GetLocationCapacityQuery, error) {
	locationCode = strings.TrimSpace(locationCode)
	if locationCode == "" {
		return GetLocationCapacityQuery{}, errs.NewValueIsRequiredError("locationCode")
	}

	return GetLocationCapacityQuery{
		locationCode: locationCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLocationCapacityQueryIsNotConstructed if validation fails.
func (q GetLocationCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationCapacityQueryIsNotConstructed)
}

// LocationCode returns the code of the queried location.
func (q GetLocationCapacityQuery) LocationCode() string {
	return q.locationCode
}

// GetLocationCapacityQueryResponse is one (location, dimension) capacity
// record.
type GetLocationCapacityQueryResponse struct {
	LocationCode     string
	Zone             string
	Dimension        string
	MaxCapacity      float64
	WarningThreshold float64
	Utilization      float64
	Percent          float64
	Status           string
	ExceededAt       *time.Time
	UpdatedAt        time.Time
}
