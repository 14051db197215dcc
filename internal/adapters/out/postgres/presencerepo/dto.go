// Package presencerepo persists worker presence records, one row per
// worker, overwritten on every heartbeat.
package presencerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/presence"
)

// PresenceRecordDTO represents the database structure for the latest
// heartbeat per worker.
type PresenceRecordDTO struct {
	WorkerID             string `gorm:"primaryKey"`
	Role                 string
	Active               bool
	CurrentView          *string
	CurrentViewUpdatedAt *time.Time
	UpdatedAt            time.Time
}

// TableName specifies the database table name for presence records.
func (PresenceRecordDTO) TableName() string {
	return "presence_records"
}

func fromDomain(record presence.Record) PresenceRecordDTO {
	return PresenceRecordDTO{
		WorkerID:             record.WorkerID(),
		Role:                 record.Role().String(),
		Active:               record.IsActive(),
		CurrentView:          record.CurrentView(),
		CurrentViewUpdatedAt: record.CurrentViewUpdatedAt(),
		UpdatedAt:            time.Now().UTC(),
	}
}

func toDomain(dto PresenceRecordDTO) (presence.Record, error) {
	role, err := kernel.RoleFromString(dto.Role)
	if err != nil {
		return presence.Record{}, err
	}

	return presence.NewRecord(dto.WorkerID, role, dto.Active, dto.CurrentView, dto.CurrentViewUpdatedAt)
}
