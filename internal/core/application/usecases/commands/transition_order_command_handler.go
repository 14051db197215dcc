package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler drives the order lifecycle state machine.
// Loads the aggregate, applies the transition (which validates the edge,
// the actor's role, and clears released assignee slots), and persists the
// result. Broadcasts order:completed on SHIPPED, order:cancelled on
// CANCELLED, and pick:updated for every other accepted transition.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition command. Domain rejections
// (order.ErrInvalidTransition, order.ErrAlreadyTerminal,
// order.ErrRoleNotPermitted) pass through unchanged so the transport layer
// can map them; the aggregate is left untouched in those cases.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = orderAggregate.TransitionTo(cmd.Target(), cmd.Role()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishTransition(ctx, orderAggregate, cmd)

	return orderAggregate, nil
}

func (h TransitionOrderCommandHandler) publishTransition(
	ctx context.Context, orderAggregate *order.Order, cmd TransitionOrderCommand,
) {
	payload := map[string]any{
		"orderId":     orderAggregate.ID().String(),
		"orderNumber": orderAggregate.Number(),
		"status":      orderAggregate.Status().String(),
		"progress":    orderAggregate.Progress(),
		"actorId":     cmd.ActorID().String(),
	}

	topic := ports.TopicPickUpdated
	switch orderAggregate.Status() {
	case order.Shipped:
		topic = ports.TopicOrderCompleted
	case order.Cancelled:
		topic = ports.TopicOrderCancelled
	}

	_ = h.publisher.Publish(ctx, topic, payload)
}
