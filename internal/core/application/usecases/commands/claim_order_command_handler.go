package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ErrClaimFailed is returned when the conditional claim write matched no
// row: another worker won the race or the order already moved on. The
// caller should refresh its claimable list and try a different order.
var ErrClaimFailed = errors.New("order was claimed by another worker")

// ClaimOrderCommandHandler arbitrates contested order claims. The claim is a
// single conditional update, so exactly one of N concurrent claimers wins
// and the rest receive ErrClaimFailed without any retry loop.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory, publisher)
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrClaimFailed):
//	    // lost the race
//	case err != nil:
//	    // infrastructure failure
//	default:
//	    fmt.Printf("claimed %s", claimed.Number())
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewClaimOrderCommandHandler creates a handler for claim arbitration.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for the order:claimed notification.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim. Enforces the stage's role requirement, runs
// the conditional claim write, and on success re-reads the row and
// broadcasts order:claimed. On loss returns ErrClaimFailed.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Role() != cmd.Stage().RequiredRole() && cmd.Role() != kernel.RoleSupervisor {
		return nil, order.ErrRoleNotPermitted
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	claimed, err := orderRepo.Claim(ctx, cmd.OrderID(), cmd.WorkerID(), cmd.Stage())
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
		"stage":       cmd.Stage().String(),
		"status":      claimed.Status().String(),
	})

	return claimed, nil
}
