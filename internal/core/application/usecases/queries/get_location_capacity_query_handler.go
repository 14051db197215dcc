package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetLocationCapacityQueryHandler reads a location's capacity records
// straight from the projection table maintained by recalculation.
type GetLocationCapacityQueryHandler struct {
	db *gorm.DB
}

// NewGetLocationCapacityQueryHandler creates a handler for location
// capacity queries. Requires a GORM database connection for query execution.
func NewGetLocationCapacityQueryHandler(db *gorm.DB) GetLocationCapacityQueryHandler {
	return GetLocationCapacityQueryHandler{db: db}
}

// Handle executes the query. An unknown location yields an empty list, not
// an error: no rule has ever matched it, so nothing is tracked.
func (h GetLocationCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetLocationCapacityQuery,
) ([]GetLocationCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	capacities := make([]GetLocationCapacityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			location_code,
			zone,
			dimension,
			max_capacity,
			warning_threshold,
			utilization,
			status,
			exceeded_at,
			updated_at
		FROM location_capacities
		WHERE location_code = ?
		ORDER BY dimension
	`, query.LocationCode()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var capResp GetLocationCapacityQueryResponse

		err = rows.Scan(
			&capResp.LocationCode,
			&capResp.Zone,
			&capResp.Dimension,
			&capResp.MaxCapacity,
			&capResp.WarningThreshold,
			&capResp.Utilization,
			&capResp.Status,
			&capResp.ExceededAt,
			&capResp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if capResp.MaxCapacity > 0 {
			capResp.Percent = capResp.Utilization / capResp.MaxCapacity * 100
		}

		capacities = append(capacities, capResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return capacities, nil
}
