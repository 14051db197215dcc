package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).
		Select("number", "status", "priority", "picker_id", "packer_id", "updated_at").
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Claim performs the contested stage assignment as one conditional UPDATE.
// The WHERE clause requires the stage's current status and an empty
// assignee slot, so of N concurrent claimers exactly one matches the row.
// RowsAffected = 0 means the claim lost; the caller must not retry the same
// id. On success the full row is re-read and returned.
func (r *GormOrderRepository) Claim(
	ctx context.Context, orderID, workerID kernel.UUID, stage order.ClaimStage,
) (*order.Order, error) {
	if err := errors.Join(orderID.Validate(), workerID.Validate(), stage.Validate()); err != nil {
		return nil, err
	}

	assigneeColumn := "picker_id"
	if stage == order.ClaimStagePack {
		assigneeColumn = "packer_id"
	}

	updates := map[string]any{
		"status":       stage.TargetStatus().String(),
		assigneeColumn: workerID.Bytes(),
		"updated_at":   time.Now().UTC(),
	}
	if stage == order.ClaimStagePack {
		// Entering the pack phase closes the picking claim.
		updates["picker_id"] = nil
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND "+assigneeColumn+" IS NULL",
			orderID.Bytes(), stage.RequiredStatus().String()).
		Updates(updates)
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

// GetAllClaimable retrieves orders still open for the stage's claim,
// urgent first, then oldest first.
func (r *GormOrderRepository) GetAllClaimable(
	ctx context.Context, stage order.ClaimStage,
) ([]*order.Order, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	assigneeColumn := "picker_id"
	if stage == order.ClaimStagePack {
		assigneeColumn = "packer_id"
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND "+assigneeColumn+" IS NULL", stage.RequiredStatus().String()).
		Order("CASE priority WHEN 'URGENT' THEN 0 WHEN 'HIGH' THEN 1 WHEN 'NORMAL' THEN 2 ELSE 3 END").
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetRecentForWorker retrieves the orders a worker touched most recently as
// picker or packer, newest first.
func (r *GormOrderRepository) GetRecentForWorker(
	ctx context.Context, workerID kernel.UUID, limit int,
) ([]*order.Order, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("picker_id = ? OR packer_id = ?", workerID.Bytes(), workerID.Bytes()).
		Order("updated_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
