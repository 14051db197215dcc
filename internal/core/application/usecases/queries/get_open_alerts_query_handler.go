package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenAlertsQueryHandler reads the open alert inbox. Dedup during
// recalculation guarantees at most one row per (location, dimension) here.
type GetOpenAlertsQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenAlertsQueryHandler creates a handler for open alert queries.
// Requires a GORM database connection for query execution.
func NewGetOpenAlertsQueryHandler(db *gorm.DB) GetOpenAlertsQueryHandler {
	return GetOpenAlertsQueryHandler{db: db}
}

// Handle executes the query, newest alerts first.
func (h GetOpenAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenAlertsQuery,
) ([]GetOpenAlertsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	alerts := make([]GetOpenAlertsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location_code,
			zone,
			dimension,
			alert_type,
			utilization,
			max_capacity,
			message,
			created_at,
			updated_at
		FROM capacity_alerts
		WHERE NOT acknowledged
		ORDER BY created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var alertResp GetOpenAlertsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&alertResp.LocationCode,
			&alertResp.Zone,
			&alertResp.Dimension,
			&alertResp.AlertType,
			&alertResp.Utilization,
			&alertResp.MaxCapacity,
			&alertResp.Message,
			&alertResp.CreatedAt,
			&alertResp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		alertID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		alertResp.ID = alertID

		if alertResp.MaxCapacity > 0 {
			alertResp.Percent = alertResp.Utilization / alertResp.MaxCapacity * 100
		}

		alerts = append(alerts, alertResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}
