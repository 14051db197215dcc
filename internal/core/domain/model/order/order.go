package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAssigneeAlreadySet is returned when claiming a phase whose
	// assignee slot is already taken.
	ErrAssigneeAlreadySet = errs.NewValueIsInvalidError("order already has an assignee for this phase")

	// ErrClaimRequired is returned when a transition targets PICKING or
	// PACKING directly. Those statuses carry an assignee and are only
	// entered through ClaimPicking or ClaimPacking.
	ErrClaimRequired = errs.NewValueIsInvalidError("status is entered by claiming the order, not by transition")
)

// Order is the aggregate root for a fulfillment order moving through
// pick, pack and ship.
//
// Invariants:
//   - at most one picker and at most one packer at any instant
//   - PICKING implies a picker is assigned
//   - PACKING implies a packer is assigned and the picking phase is closed
//   - SHIPPED and CANCELLED are immutable
//
// The aggregate validates transitions in memory; contested writes (claims)
// are additionally guarded by the store's conditional update, which is the
// actual arbitration point. Progress percent is derived from status and
// never stored.
type Order struct {
	id       kernel.UUID
	number   string
	status   Status
	priority Priority
	pickerID *kernel.UUID
	packerID *kernel.UUID

	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a PENDING order with no assignees.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - number: human-readable order number, e.g. "ORD-20250101-0007"
//   - priority: claim-pool ordering hint
func NewOrder(id kernel.UUID, number string, priority Priority) (*Order, error) {
	o := &Order{
		status:        Pending,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, re-checking the
// status/assignee consistency invariants.
func RestoreOrder(
	id kernel.UUID,
	number string,
	status Status,
	priority Priority,
	pickerID *kernel.UUID,
	packerID *kernel.UUID,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPriority(priority),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.pickerID = pickerID
	o.packerID = packerID

	if status == Picking && pickerID == nil {
		return nil, errs.NewValueIsRequiredError("pickerID")
	}
	if status == Packing && packerID == nil {
		return nil, errs.NewValueIsRequiredError("packerID")
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

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the claim-pool priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// Picker returns the assigned picker's ID, or nil.
func (o *Order) Picker() *kernel.UUID {
	return o.pickerID
}

// Packer returns the assigned packer's ID, or nil.
func (o *Order) Packer() *kernel.UUID {
	return o.packerID
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Progress returns the derived completion percentage (0-100).
func (o *Order) Progress() int {
	return o.status.Progress()
}

// ClaimPicking assigns a picker and moves PENDING -> PICKING.
// The picker slot must be empty; the winning write is still arbitrated by
// the store's conditional update.
func (o *Order) ClaimPicking(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.pickerID != nil {
		return ErrAssigneeAlreadySet
	}

	next, err := o.status.TransitionTo(Picking)
	if err != nil {
		return err
	}

	o.status = next
	o.pickerID = &workerID
	o.touch()
	return nil
}

// ClaimPacking assigns a packer and moves PICKED -> PACKING. Entering the
// pack phase closes the picking claim.
func (o *Order) ClaimPacking(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}
	if o.packerID != nil {
		return ErrAssigneeAlreadySet
	}

	next, err := o.status.TransitionTo(Packing)
	if err != nil {
		return err
	}

	o.status = next
	o.packerID = &workerID
	o.pickerID = nil
	o.touch()
	return nil
}

// TransitionTo applies a requested transition for the given actor role.
//
// The status machine decides legality (ErrInvalidTransition,
// ErrAlreadyTerminal), the role gate decides permission
// (ErrRoleNotPermitted), and transitions that leave an in-progress phase
// release that phase's assignee. The record is untouched on any rejection.
func (o *Order) TransitionTo(target Status, role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	// PICKING and PACKING require an assignee and are claim-only.
	if target == Picking || target == Packing {
		return ErrClaimRequired
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if !roleMayTransition(role, o.status, target) {
		return ErrRoleNotPermitted
	}

	if o.status.ReleasesPicker(target) {
		o.pickerID = nil
	}
	if o.status.ReleasesPacker(target) {
		o.packerID = nil
	}
	if target == Cancelled {
		o.pickerID = nil
		o.packerID = nil
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

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}
