package presencerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/presence"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPresenceRepository implements PresenceRepository using GORM.
type GormPresenceRepository struct {
	db *gorm.DB
}

// NewGormPresenceRepository creates a new GORM presence repository.
func NewGormPresenceRepository(db *gorm.DB) *GormPresenceRepository {
	return &GormPresenceRepository{db: db}
}

// Upsert replaces the worker's row wholesale. The latest heartbeat wins; no
// history is kept.
func (r *GormPresenceRepository) Upsert(ctx context.Context, record presence.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "worker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"role", "active", "current_view", "current_view_updated_at", "updated_at",
		}),
	}).Create(&dto).Error
}

// Get retrieves a worker's presence record.
func (r *GormPresenceRepository) Get(ctx context.Context, workerID string) (presence.Record, error) {
	if workerID == "" {
		return presence.Record{}, errs.NewValueIsRequiredError("workerID")
	}

	var dto PresenceRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "worker_id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return presence.Record{}, errs.NewObjectNotFoundError("presence record", workerID)
		}
		return presence.Record{}, err
	}

	return toDomain(dto)
}

// GetAll retrieves every known presence record.
func (r *GormPresenceRepository) GetAll(ctx context.Context) ([]presence.Record, error) {
	var dtos []PresenceRecordDTO
	if err := r.db.WithContext(ctx).Order("worker_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]presence.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
