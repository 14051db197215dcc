// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// fulfillment order aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status and priority are stored as their wire strings so the
// conditional claim SQL and the read-side queries stay legible.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number    string     `gorm:"uniqueIndex"`
	Status    string     `gorm:"index"`
	Priority  string     `gorm:"index"`
	PickerID  *uuid.UUID `gorm:"type:uuid;index"`
	PackerID  *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		Number:    aggregate.Number(),
		Status:    aggregate.Status().String(),
		Priority:  aggregate.Priority().String(),
		PickerID:  uuidPtr(aggregate.Picker()),
		PackerID:  uuidPtr(aggregate.Packer()),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, re-running the status/assignee invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	pickerID, err := kernelUUIDPtr(dto.PickerID)
	if err != nil {
		return nil, err
	}

	packerID, err := kernelUUIDPtr(dto.PackerID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.Number, status, priority, pickerID, packerID, dto.UpdatedAt)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
