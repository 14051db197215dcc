package services

import (
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"
)

// CapacityCalculator recomputes a location's capacity records from freshly
// measured utilization and the applicable rule set.
//
// The calculator is pure: it takes everything it needs as input and returns
// the updated records. Persistence and alerting happen in the calling
// command handler.
type CapacityCalculator struct{}

// NewCapacityCalculator creates a CapacityCalculator.
func NewCapacityCalculator() CapacityCalculator {
	return CapacityCalculator{}
}

// Calculate produces one LocationCapacity per capacity dimension constrained
// by an applicable rule.
//
// Rules must be supplied in priority order; when several rules for the same
// dimension apply to the location, the first one governs (a location-specific
// rule shadows a zone-wide one). Existing records are recalculated in place
// so the sticky exceeded-at stamp survives; missing records are created
// lazily.
//
// Parameters:
//   - loc: the location whose inventory changed
//   - measurements: freshly summed utilization per dimension
//   - rules: candidate rules in priority order
//   - existing: current records keyed by dimension, possibly empty
//   - now: classification instant for exceeded-at stamping
func (c CapacityCalculator) Calculate(
	loc kernel.BinLocation,
	measurements map[capacity.Dimension]float64,
	rules []*capacity.Rule,
	existing map[capacity.Dimension]*capacity.LocationCapacity,
	now time.Time,
) ([]*capacity.LocationCapacity, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	results := make([]*capacity.LocationCapacity, 0, len(rules))
	seen := make(map[capacity.Dimension]bool, len(rules))

	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if seen[rule.Dimension()] || !rule.AppliesTo(loc) {
			continue
		}
		seen[rule.Dimension()] = true

		record, ok := existing[rule.Dimension()]
		if !ok {
			created, err := capacity.NewLocationCapacity(loc, rule)
			if err != nil {
				return nil, err
			}
			record = created
		} else if err := record.SyncRule(rule); err != nil {
			return nil, err
		}

		if err := record.Recalculate(measurements[rule.Dimension()], now); err != nil {
			return nil, err
		}

		results = append(results, record)
	}

	return results, nil
}
