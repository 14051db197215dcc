package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"
)

// CapacityRepository defines the persistence contract for capacity rules,
// per-(location, dimension) utilization records, and alerts.
type CapacityRepository interface {
	// SumOnHand measures current utilization per dimension for a
	// location by summing its inventory rows. The sum is recomputed in
	// full on every call.
	SumOnHand(ctx context.Context, loc kernel.BinLocation) (map[capacity.Dimension]float64, error)

	// GetRulesFor retrieves the rules whose scope can match the location,
	// in priority order.
	GetRulesFor(ctx context.Context, loc kernel.BinLocation) ([]*capacity.Rule, error)

	// GetCapacities retrieves the existing capacity records for a
	// location, keyed by dimension.
	GetCapacities(ctx context.Context, loc kernel.BinLocation) (map[capacity.Dimension]*capacity.LocationCapacity, error)

	// GetCapacitiesByLocation retrieves a location's capacity records as a
	// list for read models.
	GetCapacitiesByLocation(ctx context.Context, loc kernel.BinLocation) ([]*capacity.LocationCapacity, error)

	// ListTrackedLocations returns every location that has at least one
	// capacity record, with its stored zone and type so rule matching
	// during the reconciliation sweep sees the same location the explicit
	// recalculation hook saw.
	ListTrackedLocations(ctx context.Context) ([]kernel.BinLocation, error)

	// SaveCapacity upserts a capacity record keyed by
	// (location, dimension).
	SaveCapacity(ctx context.Context, record *capacity.LocationCapacity) error

	// UpsertOpenAlert inserts the alert. When an unacknowledged alert
	// already exists for the same (location, dimension), it refreshes that
	// row's snapshot in place instead. The dedup is expressed as a single
	// conditional upsert, not read-then-write, so concurrent
	// recalculations for one location cannot produce duplicate open
	// alerts.
	UpsertOpenAlert(ctx context.Context, alert *capacity.Alert) error

	// GetOpenAlerts retrieves all unacknowledged alerts, newest first.
	GetOpenAlerts(ctx context.Context) ([]*capacity.Alert, error)

	// AcknowledgeAlert marks an alert seen via a conditional update
	// (WHERE acknowledged is false). Returns errs.ErrObjectNotFound when
	// the alert does not exist or was already acknowledged.
	AcknowledgeAlert(ctx context.Context, alertID, userID kernel.UUID, at time.Time) (*capacity.Alert, error)
}
