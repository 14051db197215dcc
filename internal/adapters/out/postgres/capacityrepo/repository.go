package capacityrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCapacityRepository implements CapacityRepository using GORM.
type GormCapacityRepository struct {
	db *gorm.DB
}

// NewGormCapacityRepository creates a new GORM capacity repository.
func NewGormCapacityRepository(db *gorm.DB) *GormCapacityRepository {
	return &GormCapacityRepository{db: db}
}

// SumOnHand recomputes the location's utilization per dimension from its
// inventory rows. Always a full aggregation, never an incremental delta, so
// repeated calls converge to the same numbers.
func (r *GormCapacityRepository) SumOnHand(
	ctx context.Context, loc kernel.BinLocation,
) (map[capacity.Dimension]float64, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var sums struct {
		Quantity float64
		Weight   float64
		Volume   float64
	}

	err := r.db.WithContext(ctx).Model(&InventoryItemDTO{}).
		Select("COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(weight), 0) AS weight, COALESCE(SUM(volume), 0) AS volume").
		Where("location_code = ?", loc.Code()).
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	return map[capacity.Dimension]float64{
		capacity.DimensionQuantity: sums.Quantity,
		capacity.DimensionWeight:   sums.Weight,
		capacity.DimensionVolume:   sums.Volume,
	}, nil
}

// GetRulesFor retrieves every rule whose scope can match the location, in
// ascending priority order. Dimension resolution (first match wins) happens
// in the domain calculator, not here.
func (r *GormCapacityRepository) GetRulesFor(
	ctx context.Context, loc kernel.BinLocation,
) ([]*capacity.Rule, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var dtos []CapacityRuleDTO
	err := r.db.WithContext(ctx).
		Where("scope = ?", capacity.ScopeAll.String()).
		Or("scope = ? AND scope_value = ?", capacity.ScopeZone.String(), loc.Zone()).
		Or("scope = ? AND scope_value = ?", capacity.ScopeType.String(), loc.Type()).
		Or("scope = ? AND scope_value = ?", capacity.ScopeLocation.String(), loc.Code()).
		Order("priority").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	rules := make([]*capacity.Rule, 0, len(dtos))
	for _, dto := range dtos {
		rule, ruleErr := ruleToDomain(dto)
		if ruleErr != nil {
			return nil, ruleErr
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// GetCapacities retrieves the location's capacity records keyed by dimension.
func (r *GormCapacityRepository) GetCapacities(
	ctx context.Context, loc kernel.BinLocation,
) (map[capacity.Dimension]*capacity.LocationCapacity, error) {
	records, err := r.GetCapacitiesByLocation(ctx, loc)
	if err != nil {
		return nil, err
	}

	byDimension := make(map[capacity.Dimension]*capacity.LocationCapacity, len(records))
	for _, record := range records {
		byDimension[record.Dimension()] = record
	}

	return byDimension, nil
}

// GetCapacitiesByLocation retrieves the location's capacity records as a list.
func (r *GormCapacityRepository) GetCapacitiesByLocation(
	ctx context.Context, loc kernel.BinLocation,
) ([]*capacity.LocationCapacity, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationCapacityDTO
	err := r.db.WithContext(ctx).
		Where("location_code = ?", loc.Code()).
		Order("dimension").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*capacity.LocationCapacity, 0, len(dtos))
	for _, dto := range dtos {
		record, recErr := capacityToDomain(dto)
		if recErr != nil {
			return nil, recErr
		}
		records = append(records, record)
	}

	return records, nil
}

// ListTrackedLocations returns the distinct locations having capacity
// records, rebuilt with their stored zone and type. The reconciliation
// sweep iterates these; matching TYPE-scoped rules requires the full
// location, not just its code.
func (r *GormCapacityRepository) ListTrackedLocations(ctx context.Context) ([]kernel.BinLocation, error) {
	var rows []struct {
		LocationCode string
		Zone         string
		LocationType string
	}
	err := r.db.WithContext(ctx).Model(&LocationCapacityDTO{}).
		Distinct("location_code", "zone", "location_type").
		Order("location_code").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	locations := make([]kernel.BinLocation, 0, len(rows))
	for _, row := range rows {
		loc, locErr := kernel.NewBinLocation(row.LocationCode, row.Zone, row.LocationType)
		if locErr != nil {
			return nil, locErr
		}
		locations = append(locations, loc)
	}

	return locations, nil
}

// SaveCapacity upserts one capacity record keyed by (location, dimension).
func (r *GormCapacityRepository) SaveCapacity(ctx context.Context, record *capacity.LocationCapacity) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := capacityFromDomain(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "location_code"}, {Name: "dimension"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"zone", "location_type", "max_capacity", "warning_threshold",
			"utilization", "status", "exceeded_at", "updated_at",
		}),
	}).Create(&dto).Error
}

// UpsertOpenAlert raises the alert, deduplicated against the partial unique
// index on (location_code, dimension) WHERE NOT acknowledged. A concurrent
// recalculation that raced us lands on the same open row and refreshes its
// snapshot; no read-then-write window exists.
func (r *GormCapacityRepository) UpsertOpenAlert(ctx context.Context, alert *capacity.Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}

	dto := alertFromDomain(alert)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "location_code"}, {Name: "dimension"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "NOT acknowledged"}}},
		DoUpdates: clause.AssignmentColumns([]string{
			"alert_type", "utilization", "max_capacity", "percent", "message", "updated_at",
		}),
	}).Create(&dto).Error
}

// GetOpenAlerts retrieves all unacknowledged alerts, newest first.
func (r *GormCapacityRepository) GetOpenAlerts(ctx context.Context) ([]*capacity.Alert, error) {
	var dtos []CapacityAlertDTO
	err := r.db.WithContext(ctx).
		Where("NOT acknowledged").
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*capacity.Alert, 0, len(dtos))
	for _, dto := range dtos {
		alert, alertErr := alertToDomain(dto)
		if alertErr != nil {
			return nil, alertErr
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

// AcknowledgeAlert stamps the alert seen via a conditional update scoped to
// unacknowledged rows. A repeat acknowledge matches nothing and reports the
// alert as not found instead of overwriting the first stamp.
func (r *GormCapacityRepository) AcknowledgeAlert(
	ctx context.Context, alertID, userID kernel.UUID, at time.Time,
) (*capacity.Alert, error) {
	if err := errors.Join(alertID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&CapacityAlertDTO{}).
		Where("id = ? AND NOT acknowledged", alertID.Bytes()).
		Updates(map[string]any{
			"acknowledged":    true,
			"acknowledged_by": userID.Bytes(),
			"acknowledged_at": at,
			"updated_at":      at,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("alert", alertID.String())
	}

	var dto CapacityAlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", alertID.Bytes()).Error; err != nil {
		return nil, err
	}

	return alertToDomain(dto)
}
