// Package production implements the production order aggregate. Production
// orders share the contested-update shape of fulfillment orders (claim pool,
// status state machine, assignee released on hold) over a separate status
// vocabulary.
package production

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("production Order must be created via NewOrder or RestoreOrder")

	// ErrAssigneeAlreadySet is returned when claiming an order whose
	// operator slot is already taken.
	ErrAssigneeAlreadySet = errs.NewValueIsInvalidError("production order already has an operator")

	// ErrRoleNotPermitted mirrors the fulfillment order role gate.
	ErrRoleNotPermitted = errs.NewValueIsInvalidError("actor role is not permitted to perform this transition")

	// ErrClaimRequired is returned when a transition targets IN_PROGRESS
	// directly. That status carries an operator and is only entered
	// through Claim.
	ErrClaimRequired = errs.NewValueIsInvalidError("status is entered by claiming the production order, not by transition")
)

// Order is the aggregate root for a production order. At most one operator
// holds the claim; IN_PROGRESS implies an operator is assigned.
type Order struct {
	id         kernel.UUID
	number     string
	status     Status
	assigneeID *kernel.UUID

	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a DRAFT production order with no operator.
func NewOrder(id kernel.UUID, number string) (*Order, error) {
	o := &Order{
		status:        Draft,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := o.setID(id); err != nil {
		return nil, err
	}
	if err := o.setNumber(number); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs a production order from persistence.
func RestoreOrder(
	id kernel.UUID,
	number string,
	status Status,
	assigneeID *kernel.UUID,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		assigneeID:    assigneeID,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status == InProgress && assigneeID == nil {
		return nil, errs.NewValueIsRequiredError("assigneeID")
	}

	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the production order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable production order number.
func (o *Order) Number() string {
	return o.number
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Assignee returns the claiming operator's ID, or nil.
func (o *Order) Assignee() *kernel.UUID {
	return o.assigneeID
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Claim assigns an operator and moves RELEASED -> IN_PROGRESS. The slot
// must be empty; the winning write is arbitrated by the store's conditional
// update, exactly as for fulfillment order claims.
func (o *Order) Claim(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.assigneeID != nil {
		return ErrAssigneeAlreadySet
	}

	next, err := o.status.TransitionTo(InProgress)
	if err != nil {
		return err
	}

	o.status = next
	o.assigneeID = &workerID
	o.touch()
	return nil
}

// TransitionTo applies a requested transition for the given actor role.
// Holds, resumes and cancellations are supervisor-only; completing the
// order is open to the claiming roles. Transitions that release the claim
// (ON_HOLD -> RELEASED, any -> CANCELLED) clear the assignee.
func (o *Order) TransitionTo(target Status, role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	// IN_PROGRESS carries an operator and is claim-only.
	if target == InProgress {
		return ErrClaimRequired
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	supervisorOnly := target == OnHold || target == Cancelled || o.status == OnHold ||
		o.status == Draft || o.status == Planned
	if supervisorOnly && role != kernel.RoleSupervisor {
		return ErrRoleNotPermitted
	}

	if o.status.ReleasesAssignee(target) {
		o.assigneeID = nil
	}

	o.status = next
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}
