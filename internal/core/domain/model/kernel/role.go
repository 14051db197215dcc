package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Role identifies the kind of warehouse actor performing an operation.
// It gates state transitions and selects the "working screen" pattern used
// by presence inference.
type Role int

const (
	// RoleUnknown is an invalid zero value.
	RoleUnknown Role = iota

	// RolePicker works the pick stage.
	RolePicker

	// RolePacker works the pack stage and confirms shipment.
	RolePacker

	// RoleSupervisor may hold, resume, cancel, and ship any order.
	RoleSupervisor
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "UNKNOWN",
		RolePicker:     "PICKER",
		RolePacker:     "PACKER",
		RoleSupervisor: "SUPERVISOR",
	}
}

// RoleFromString parses the wire representation (e.g. "PICKER").
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined actor kinds.
func (r Role) Validate() error {
	if r != RolePicker && r != RolePacker && r != RoleSupervisor {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
