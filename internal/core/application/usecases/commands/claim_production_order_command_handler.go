package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/core/ports"
)

// ClaimProductionOrderCommandHandler arbitrates production order claims.
// The conditional write targets RELEASED rows with no assignee, so exactly
// one concurrent claimer wins.
type ClaimProductionOrderCommandHandler struct {
	uowFactory ProductionUoWFactory
	publisher  ports.EventPublisher
}

// NewClaimProductionOrderCommandHandler creates a handler for production
// order claim arbitration.
func NewClaimProductionOrderCommandHandler(
	uowFactory ProductionUoWFactory, publisher ports.EventPublisher,
) ClaimProductionOrderCommandHandler {
	return ClaimProductionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim. On loss returns ErrClaimFailed; on win
// re-reads the row and broadcasts order:claimed.
func (h ClaimProductionOrderCommandHandler) Handle(
	ctx context.Context, cmd ClaimProductionOrderCommand,
) (*production.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productionRepo := uow.ProductionOrderRepository()

	claimed, err := productionRepo.Claim(ctx, cmd.OrderID(), cmd.WorkerID())
	if errors.Is(err, order.ErrClaimConflict) {
		return nil, ErrClaimFailed
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	_ = h.publisher.Publish(ctx, ports.TopicOrderClaimed, map[string]any{
		"orderId":     claimed.ID().String(),
		"orderNumber": claimed.Number(),
		"workerId":    cmd.WorkerID().String(),
		"status":      claimed.Status().String(),
	})

	return claimed, nil
}
