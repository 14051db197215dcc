// Package productionrepo persists production order aggregates, mirroring
// the orderrepo mapping conventions.
package productionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"

	"github.com/google/uuid"
)

// ProductionOrderDTO represents the database structure for persisting
// production order aggregates.
type ProductionOrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number     string     `gorm:"uniqueIndex"`
	Status     string     `gorm:"index"`
	AssigneeID *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedAt  time.Time
}

// TableName specifies the database table name for production order entities.
func (ProductionOrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(aggregate *production.Order) ProductionOrderDTO {
	var assigneeID *uuid.UUID
	if id := aggregate.Assignee(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	return ProductionOrderDTO{
		ID:         aggregate.ID().Bytes(),
		Number:     aggregate.Number(),
		Status:     aggregate.Status().String(),
		AssigneeID: assigneeID,
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

func toDomain(dto ProductionOrderDTO) (*production.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := production.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	return production.RestoreOrder(id, dto.Number, status, assigneeID, dto.UpdatedAt)
}
