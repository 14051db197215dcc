package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a worker's attempt to take exclusive ownership
// of one stage of an order. Stage PICK moves a PENDING order to PICKING and
// records the picker; stage PACK moves a PICKED order to PACKING and records
// the packer.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, workerID, order.ClaimStagePick, kernel.RolePicker)
//	if err != nil {
//	    return fmt.Errorf("invalid claim: %w", err)
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrClaimFailed) {
//	    // someone else won the race, refresh the list
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID
	stage    order.ClaimStage
	role     kernel.Role

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command to claim one stage of an order.
// Validates both identifiers, the stage, and the claiming worker's role.
func NewClaimOrderCommand(
	orderID kernel.UUID, workerID kernel.UUID, stage order.ClaimStage, role kernel.Role,
) (ClaimOrderCommand, error) {
	claimCommand := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setWorkerID(workerID),
		claimCommand.setStage(stage),
		claimCommand.setRole(role),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the identifier of the claiming worker.
func (c ClaimOrderCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Stage returns the claimed stage (PICK or PACK).
func (c ClaimOrderCommand) Stage() order.ClaimStage {
	return c.stage
}

// Role returns the claiming worker's role.
func (c ClaimOrderCommand) Role() kernel.Role {
	return c.role
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *ClaimOrderCommand) setStage(stage order.ClaimStage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *ClaimOrderCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
