package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimProductionOrderCommandIsNotConstructed = errors.New(
	"ClaimProductionOrderCommand must be created via NewClaimProductionOrderCommand constructor",
)

// ClaimProductionOrderCommand represents a worker's attempt to take a
// RELEASED production order into IN_PROGRESS. Like fulfillment claims it is
// arbitrated by a single conditional write.
type ClaimProductionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimProductionOrderCommand creates a command to claim a production order.
func NewClaimProductionOrderCommand(
	orderID kernel.UUID, workerID kernel.UUID,
) (ClaimProductionOrderCommand, error) {
	claimCommand := ClaimProductionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setWorkerID(workerID),
	); err != nil {
		return ClaimProductionOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimProductionOrderCommandIsNotConstructed if validation fails.
func (c ClaimProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimProductionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the production order being claimed.
func (c ClaimProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// WorkerID returns the identifier of the claiming worker.
func (c ClaimProductionOrderCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c *ClaimProductionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimProductionOrderCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
