package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionProductionOrderCommandIsNotConstructed = errors.New(
	"TransitionProductionOrderCommand must be created via NewTransitionProductionOrderCommand constructor",
)

// TransitionProductionOrderCommand requests moving a production order to a
// new lifecycle status, subject to the production state machine and the
// actor's role.
type TransitionProductionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  production.Status
	role    kernel.Role
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransitionProductionOrderCommand creates a command to transition a
// production order. Validates the order id, target status, role, and actor id.
func NewTransitionProductionOrderCommand(
	orderID kernel.UUID, target production.Status, role kernel.Role, actorID kernel.UUID,
) (TransitionProductionOrderCommand, error) {
	transitionCommand := TransitionProductionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
		transitionCommand.setRole(role),
		transitionCommand.setActorID(actorID),
	); err != nil {
		return TransitionProductionOrderCommand{}, err
	}

	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionProductionOrderCommandIsNotConstructed if validation fails.
func (c TransitionProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionProductionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the production order.
func (c TransitionProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested destination status.
func (c TransitionProductionOrderCommand) Target() production.Status {
	return c.target
}

// Role returns the acting worker's role.
func (c TransitionProductionOrderCommand) Role() kernel.Role {
	return c.role
}

// ActorID returns the identifier of the acting worker.
func (c TransitionProductionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *TransitionProductionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionProductionOrderCommand) setTarget(target production.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionProductionOrderCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *TransitionProductionOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
