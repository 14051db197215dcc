package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordHeartbeatCommandIsNotConstructed = errors.New(
		"RecordHeartbeatCommand must be created via NewRecordHeartbeatCommand constructor",
	)
	ErrWorkerIDIsRequired = errors.New("worker id is required")
)

// RecordHeartbeatCommand carries one client heartbeat: the worker's session
// flag and, optionally, the screen they are currently looking at. The
// latest heartbeat wins; no history is kept.
type RecordHeartbeatCommand struct { //nolint:recvcheck //using for validation
	workerID    string
	role        kernel.Role
	active      bool
	currentView *string

	guard guard.ConstructorGuard
}

// NewRecordHeartbeatCommand creates a command from a heartbeat payload.
// The role is the one the client session authenticated with; currentView
// may be nil for a bare session ping.
func NewRecordHeartbeatCommand(
	workerID string, role kernel.Role, active bool, currentView *string,
) (RecordHeartbeatCommand, error) {
	heartbeatCommand := RecordHeartbeatCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		heartbeatCommand.setWorkerID(workerID),
		heartbeatCommand.setRole(role),
	); err != nil {
		return RecordHeartbeatCommand{}, err
	}

	heartbeatCommand.active = active
	heartbeatCommand.currentView = currentView

	return heartbeatCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordHeartbeatCommandIsNotConstructed if validation fails.
func (c RecordHeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrRecordHeartbeatCommandIsNotConstructed)
}

// WorkerID returns the reporting worker's identifier.
func (c RecordHeartbeatCommand) WorkerID() string {
	return c.workerID
}

// Role returns the reporting worker's role.
func (c RecordHeartbeatCommand) Role() kernel.Role {
	return c.role
}

// Active reports whether the worker's session is open.
func (c RecordHeartbeatCommand) Active() bool {
	return c.active
}

// CurrentView returns the free-form screen string, or nil.
func (c RecordHeartbeatCommand) CurrentView() *string {
	return c.currentView
}

func (c *RecordHeartbeatCommand) setWorkerID(workerID string) error {
	workerID = strings.TrimSpace(workerID)
	if workerID == "" {
		return ErrWorkerIDIsRequired
	}

	// Worker ids that are UUIDs get stored in canonical text form so read
	// models can equate them with the picker and packer columns.
	if id, err := kernel.UUIDFromString(workerID); err == nil {
		workerID = id.String()
	}

	c.workerID = workerID
	return nil
}

func (c *RecordHeartbeatCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
