// Package capacityrepo persists capacity rules, per-location utilization
// records, inventory measurements, and capacity alerts.
package capacityrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/capacity"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CapacityRuleDTO represents a configured capacity limit. Rules are matched
// against locations by scope and resolved by ascending priority.
type CapacityRuleDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Dimension        string    `gorm:"index"`
	Scope            string
	ScopeValue       string
	MaxCapacity      float64
	WarningThreshold float64
	Priority         int
}

// TableName specifies the database table name for capacity rules.
func (CapacityRuleDTO) TableName() string {
	return "capacity_rules"
}

// LocationCapacityDTO is the per-(location, dimension) utilization
// projection maintained by recalculation.
type LocationCapacityDTO struct {
	LocationCode     string `gorm:"primaryKey"`
	Dimension        string `gorm:"primaryKey"`
	Zone             string `gorm:"index"`
	LocationType     string
	MaxCapacity      float64
	WarningThreshold float64
	Utilization      float64
	Status           string
	ExceededAt       *time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for location capacities.
func (LocationCapacityDTO) TableName() string {
	return "location_capacities"
}

// CapacityAlertDTO is a raised capacity alert. A partial unique index on
// (location_code, dimension) WHERE NOT acknowledged enforces at most one
// open alert per pair; see the migration in the postgres package.
type CapacityAlertDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationCode   string
	Zone           string
	LocationType   string
	Dimension      string
	AlertType      string
	Utilization    float64
	MaxCapacity    float64
	Percent        float64
	Message        string
	Acknowledged   bool `gorm:"index"`
	AcknowledgedBy *uuid.UUID `gorm:"type:uuid"`
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for capacity alerts.
func (CapacityAlertDTO) TableName() string {
	return "capacity_alerts"
}

// InventoryItemDTO is one stocked item at a location. Recalculation sums
// these rows per dimension; this package never mutates them.
type InventoryItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationCode string    `gorm:"index"`
	Zone         string
	LocationType string
	SKU          string
	Quantity     float64
	Weight       float64
	Volume       float64
	UpdatedAt    time.Time
}

// TableName specifies the database table name for inventory items.
func (InventoryItemDTO) TableName() string {
	return "inventory_items"
}

func ruleToDomain(dto CapacityRuleDTO) (*capacity.Rule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dimension, err := capacity.DimensionFromString(dto.Dimension)
	if err != nil {
		return nil, err
	}

	scope, err := capacity.ScopeFromString(dto.Scope)
	if err != nil {
		return nil, err
	}

	return capacity.RestoreRule(
		id, dimension, scope, dto.ScopeValue,
		dto.MaxCapacity, dto.WarningThreshold, dto.Priority,
	)
}

func capacityFromDomain(record *capacity.LocationCapacity) LocationCapacityDTO {
	return LocationCapacityDTO{
		LocationCode:     record.Location().Code(),
		Dimension:        record.Dimension().String(),
		Zone:             record.Location().Zone(),
		LocationType:     record.Location().Type(),
		MaxCapacity:      record.MaxCapacity(),
		WarningThreshold: record.WarningThreshold(),
		Utilization:      record.Utilization(),
		Status:           record.Status().String(),
		ExceededAt:       record.ExceededAt(),
		UpdatedAt:        time.Now().UTC(),
	}
}

func capacityToDomain(dto LocationCapacityDTO) (*capacity.LocationCapacity, error) {
	loc, err := kernel.NewBinLocation(dto.LocationCode, dto.Zone, dto.LocationType)
	if err != nil {
		return nil, err
	}

	dimension, err := capacity.DimensionFromString(dto.Dimension)
	if err != nil {
		return nil, err
	}

	status, err := capacity.CapacityStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return capacity.RestoreLocationCapacity(
		loc, dimension, dto.MaxCapacity, dto.WarningThreshold,
		dto.Utilization, status, dto.ExceededAt,
	)
}

func alertFromDomain(alert *capacity.Alert) CapacityAlertDTO {
	var acknowledgedBy *uuid.UUID
	if id := alert.AcknowledgedBy(); id != nil {
		raw := id.Bytes()
		acknowledgedBy = &raw
	}

	return CapacityAlertDTO{
		ID:             alert.ID().Bytes(),
		LocationCode:   alert.Location().Code(),
		Zone:           alert.Location().Zone(),
		LocationType:   alert.Location().Type(),
		Dimension:      alert.Dimension().String(),
		AlertType:      alert.Type().String(),
		Utilization:    alert.Utilization(),
		MaxCapacity:    alert.MaxCapacity(),
		Percent:        alert.Percent(),
		Message:        alert.Message(),
		Acknowledged:   alert.IsAcknowledged(),
		AcknowledgedBy: acknowledgedBy,
		AcknowledgedAt: alert.AcknowledgedAt(),
		CreatedAt:      alert.CreatedAt(),
		UpdatedAt:      alert.UpdatedAt(),
	}
}

func alertToDomain(dto CapacityAlertDTO) (*capacity.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewBinLocation(dto.LocationCode, dto.Zone, dto.LocationType)
	if err != nil {
		return nil, err
	}

	dimension, err := capacity.DimensionFromString(dto.Dimension)
	if err != nil {
		return nil, err
	}

	alertType, err := capacity.CapacityStatusFromString(dto.AlertType)
	if err != nil {
		return nil, err
	}

	var acknowledgedBy *kernel.UUID
	if dto.AcknowledgedBy != nil {
		aID, ackErr := kernel.UUIDFromBytes((*dto.AcknowledgedBy)[:])
		if ackErr != nil {
			return nil, ackErr
		}
		acknowledgedBy = &aID
	}

	return capacity.RestoreAlert(
		id, loc, dimension, alertType,
		dto.Utilization, dto.MaxCapacity, dto.Percent,
		dto.Message, dto.Acknowledged, acknowledgedBy, dto.AcknowledgedAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
