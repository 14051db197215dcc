package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/core/ports"
)

// TransitionProductionOrderCommandHandler drives the production order state
// machine, mirroring the fulfillment transition handler over the production
// set. Accepted transitions are broadcast on pick:updated; cancellations on
// order:cancelled.
type TransitionProductionOrderCommandHandler struct {
	uowFactory ProductionUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionProductionOrderCommandHandler creates a handler for
// production order transitions.
func NewTransitionProductionOrderCommandHandler(
	uowFactory ProductionUoWFactory, publisher ports.EventPublisher,
) TransitionProductionOrderCommandHandler {
	return TransitionProductionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the production transition command. Domain rejections pass
// through unchanged for the transport layer to map.
func (h TransitionProductionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionProductionOrderCommand,
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

	orderAggregate, err := productionRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = orderAggregate.TransitionTo(cmd.Target(), cmd.Role()); err != nil {
		return nil, err
	}

	if err = productionRepo.Update(ctx, orderAggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	topic := ports.TopicPickUpdated
	switch orderAggregate.Status() {
	case production.Completed:
		topic = ports.TopicOrderCompleted
	case production.Cancelled:
		topic = ports.TopicOrderCancelled
	}

	_ = h.publisher.Publish(ctx, topic, map[string]any{
		"orderId":     orderAggregate.ID().String(),
		"orderNumber": orderAggregate.Number(),
		"status":      orderAggregate.Status().String(),
		"actorId":     cmd.ActorID().String(),
	})

	return orderAggregate, nil
}
