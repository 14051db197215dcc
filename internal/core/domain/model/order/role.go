package order

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRoleNotPermitted is returned when the actor's role may not perform the
// requested transition, even though the transition itself is legal.
var ErrRoleNotPermitted = errs.NewValueIsInvalidError("actor role is not permitted to perform this transition")

// roleMayTransition applies the role gate for an otherwise legal transition.
// Supervisors may do everything. Pickers own the pick stage, packers the
// pack and ship stages. Holding and resuming is supervisor-only. Cancelling
// a PENDING order is open to all roles (the claim UI re-polls and drops
// stale entries).
func roleMayTransition(role kernel.Role, from, target Status) bool {
	if role == kernel.RoleSupervisor {
		return true
	}

	switch {
	case target == OnHold, from == OnHold:
		return false
	case target == Cancelled:
		return from == Pending
	case from == Pending || from == Picking:
		return role == kernel.RolePicker
	case from == Picked || from == Packing || from == Packed:
		return role == kernel.RolePacker
	default:
		return false
	}
}
