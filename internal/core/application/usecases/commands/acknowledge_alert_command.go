package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcknowledgeAlertCommandIsNotConstructed = errors.New(
	"AcknowledgeAlertCommand must be created via NewAcknowledgeAlertCommand constructor",
)

// AcknowledgeAlertCommand marks a capacity alert as seen by a user.
// Acknowledging only silences the alert row; it never changes the capacity
// record, so the next recalculation may open a fresh alert if the condition
// persists.
type AcknowledgeAlertCommand struct { //nolint:recvcheck //using for validation
	alertID kernel.UUID
	userID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcknowledgeAlertCommand creates a command to acknowledge an alert.
// Validates both identifiers.
func NewAcknowledgeAlertCommand(alertID, userID kernel.UUID) (AcknowledgeAlertCommand, error) {
	ackCommand := AcknowledgeAlertCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ackCommand.setAlertID(alertID),
		ackCommand.setUserID(userID),
	); err != nil {
		return AcknowledgeAlertCommand{}, err
	}

	return ackCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcknowledgeAlertCommandIsNotConstructed if validation fails.
func (c AcknowledgeAlertCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeAlertCommandIsNotConstructed)
}

// AlertID returns the identifier of the alert to acknowledge.
func (c AcknowledgeAlertCommand) AlertID() kernel.UUID {
	return c.alertID
}

// UserID returns the identifier of the acknowledging user.
func (c AcknowledgeAlertCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *AcknowledgeAlertCommand) setAlertID(alertID kernel.UUID) error {
	if err := alertID.Validate(); err != nil {
		return err
	}

	c.alertID = alertID
	return nil
}

func (c *AcknowledgeAlertCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
