package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecalculateCapacityCommandIsNotConstructed = errors.New(
	"RecalculateCapacityCommand must be created via NewRecalculateCapacityCommand constructor",
)

// RecalculateCapacityCommand requests a full recomputation of one location's
// capacity utilization. Fired after every inventory movement touching the
// location and by the periodic reconciliation sweep; the recomputation is
// idempotent, so duplicate firings converge to the same state.
type RecalculateCapacityCommand struct { //nolint:recvcheck //using for validation
	location kernel.BinLocation

	guard guard.ConstructorGuard
}

// NewRecalculateCapacityCommand creates a command to recalculate one
// location. Validates that the location was properly constructed.
func NewRecalculateCapacityCommand(location kernel.BinLocation) (RecalculateCapacityCommand, error) {
	recalcCommand := RecalculateCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := recalcCommand.setLocation(location); err != nil {
		return RecalculateCapacityCommand{}, err
	}

	return recalcCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecalculateCapacityCommandIsNotConstructed if validation fails.
func (c RecalculateCapacityCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateCapacityCommandIsNotConstructed)
}

// Location returns the storage location to recalculate.
func (c RecalculateCapacityCommand) Location() kernel.BinLocation {
	return c.location
}

func (c *RecalculateCapacityCommand) setLocation(location kernel.BinLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
