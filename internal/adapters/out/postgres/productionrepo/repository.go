package productionrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ProductionOrderRepository using GORM.
type GormProductionOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductionOrderRepository creates a new GORM production order repository.
func NewGormProductionOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new production order to the database.
func (r *GormProductionOrderRepository) Add(ctx context.Context, aggregate *production.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing production order to the database.
func (r *GormProductionOrderRepository) Update(ctx context.Context, aggregate *production.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProductionOrderDTO{}).Where("id = ?", dto.ID).
		Select("number", "status", "assignee_id", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a production order by ID.
func (r *GormProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*production.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductionOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim performs RELEASED -> IN_PROGRESS as one conditional UPDATE. The
// WHERE clause requires RELEASED status and no assignee, so exactly one
// concurrent claimer matches the row; losers get order.ErrClaimConflict.
func (r *GormProductionOrderRepository) Claim(
	ctx context.Context, orderID, workerID kernel.UUID,
) (*production.Order, error) {
	if err := errors.Join(orderID.Validate(), workerID.Validate()); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&ProductionOrderDTO{}).
		Where("id = ? AND status = ? AND assignee_id IS NULL",
			orderID.Bytes(), production.Released.String()).
		Updates(map[string]any{
			"status":      production.InProgress.String(),
			"assignee_id": workerID.Bytes(),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, order.ErrClaimConflict
	}

	claimed, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}
