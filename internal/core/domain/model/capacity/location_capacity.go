package capacity

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLocationCapacityIsNotConstructed is returned when a LocationCapacity
// was not created via NewLocationCapacity or RestoreLocationCapacity.
var ErrLocationCapacityIsNotConstructed = errors.New(
	"LocationCapacity must be created via NewLocationCapacity or RestoreLocationCapacity",
)

// CapacityStatus classifies a location's fullness on one dimension.
type CapacityStatus int

const (
	// CapacityStatusUnknown is an invalid zero value.
	CapacityStatusUnknown CapacityStatus = iota

	// CapacityStatusActive means utilization is below the warning threshold.
	CapacityStatusActive

	// CapacityStatusWarning means utilization reached the warning threshold.
	CapacityStatusWarning

	// CapacityStatusExceeded means utilization reached or passed the maximum.
	CapacityStatusExceeded
)

func getCapacityStatusStrings() map[CapacityStatus]string {
	return map[CapacityStatus]string{
		CapacityStatusUnknown:  "UNKNOWN",
		CapacityStatusActive:   "ACTIVE",
		CapacityStatusWarning:  "WARNING",
		CapacityStatusExceeded: "EXCEEDED",
	}
}

// CapacityStatusFromString parses the wire representation (e.g. "WARNING").
func CapacityStatusFromString(s string) (CapacityStatus, error) {
	for cs, str := range getCapacityStatusStrings() {
		if str == s && cs != CapacityStatusUnknown {
			return cs, nil
		}
	}
	return CapacityStatusUnknown, errs.NewValueIsInvalidErrorWithCause("capacityStatus", fmt.Errorf("%q is not a valid capacity status", s))
}

// Validate checks that the CapacityStatus is one of the defined levels.
func (s CapacityStatus) Validate() error {
	if s < CapacityStatusActive || s > CapacityStatusExceeded {
		return errs.NewValueIsInvalidErrorWithCause("capacityStatus", fmt.Errorf("%d is not a valid capacity status", s))
	}
	return nil
}

// String returns the wire representation. Implements fmt.Stringer.
func (s CapacityStatus) String() string {
	if str, ok := getCapacityStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Classify derives a capacity status from a utilization percentage and a
// warning threshold: >= 100 is EXCEEDED, >= threshold is WARNING, else
// ACTIVE.
func Classify(percent, warningThreshold float64) CapacityStatus {
	switch {
	case percent >= 100:
		return CapacityStatusExceeded
	case percent >= warningThreshold:
		return CapacityStatusWarning
	default:
		return CapacityStatusActive
	}
}

// LocationCapacity is the tracked fullness of one (location, dimension)
// pair. It is created lazily on first recalculation and never deleted.
//
// Utilization and its percentage are recomputed in full on every
// recalculation, never incremented, so the record cannot drift. The
// exceeded-at timestamp is stamped once on entering EXCEEDED and stays
// sticky until a fresh ACTIVE classification clears it.
type LocationCapacity struct {
	location         kernel.BinLocation
	dimension        Dimension
	maxCapacity      float64
	warningThreshold float64
	utilization      float64
	status           CapacityStatus
	exceededAt       *time.Time

	isConstructed bool
}

// NewLocationCapacity creates the record for a (location, dimension) pair
// from its governing rule, with zero utilization and ACTIVE status.
func NewLocationCapacity(loc kernel.BinLocation, rule *Rule) (*LocationCapacity, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return &LocationCapacity{
		location:         loc,
		dimension:        rule.Dimension(),
		maxCapacity:      rule.MaxCapacity(),
		warningThreshold: rule.WarningThreshold(),
		status:           CapacityStatusActive,
		isConstructed:    true,
	}, nil
}

// RestoreLocationCapacity reconstructs a record from persistence.
func RestoreLocationCapacity(
	loc kernel.BinLocation,
	dimension Dimension,
	maxCapacity float64,
	warningThreshold float64,
	utilization float64,
	status CapacityStatus,
	exceededAt *time.Time,
) (*LocationCapacity, error) {
	if err := errors.Join(
		loc.Validate(),
		dimension.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if maxCapacity <= 0 {
		return nil, ErrInvalidRule
	}

	return &LocationCapacity{
		location:         loc,
		dimension:        dimension,
		maxCapacity:      maxCapacity,
		warningThreshold: warningThreshold,
		utilization:      utilization,
		status:           status,
		exceededAt:       exceededAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the record was constructed via a constructor.
func (c *LocationCapacity) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrLocationCapacityIsNotConstructed
	}
	return nil
}

// Location returns the storage location.
func (c *LocationCapacity) Location() kernel.BinLocation {
	return c.location
}

// Dimension returns the tracked fullness axis.
func (c *LocationCapacity) Dimension() Dimension {
	return c.dimension
}

// MaxCapacity returns the governing rule's ceiling.
func (c *LocationCapacity) MaxCapacity() float64 {
	return c.maxCapacity
}

// WarningThreshold returns the WARNING boundary in percent.
func (c *LocationCapacity) WarningThreshold() float64 {
	return c.warningThreshold
}

// Utilization returns the current measured fullness.
func (c *LocationCapacity) Utilization() float64 {
	return c.utilization
}

// Status returns the current classification.
func (c *LocationCapacity) Status() CapacityStatus {
	return c.status
}

// ExceededAt returns when the record first entered EXCEEDED, or nil.
func (c *LocationCapacity) ExceededAt() *time.Time {
	return c.exceededAt
}

// Percent returns utilization as a percentage of maximum, computed fresh.
func (c *LocationCapacity) Percent() float64 {
	return c.utilization / c.maxCapacity * 100
}

// Available returns the remaining headroom, floored at zero.
func (c *LocationCapacity) Available() float64 {
	if avail := c.maxCapacity - c.utilization; avail > 0 {
		return avail
	}
	return 0
}

// SyncRule refreshes the record's ceiling and threshold from its governing
// rule, so edited rules take effect on the next recalculation. The rule must
// constrain the record's own dimension.
func (c *LocationCapacity) SyncRule(rule *Rule) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	if rule.Dimension() != c.dimension {
		return errs.NewValueIsInvalidError("rule dimension does not match capacity record")
	}

	c.maxCapacity = rule.MaxCapacity()
	c.warningThreshold = rule.WarningThreshold()
	return nil
}

// Recalculate replaces the utilization with a freshly measured value and
// reclassifies the record at the given instant.
//
// On the transition into EXCEEDED the exceeded-at timestamp is stamped once;
// repeated EXCEEDED recalculations keep the original stamp. Only a fresh
// ACTIVE classification clears it; WARNING leaves it in place.
func (c *LocationCapacity) Recalculate(utilization float64, now time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if utilization < 0 {
		return errs.NewValueIsOutOfRangeError("utilization", utilization, 0, c.maxCapacity)
	}

	c.utilization = utilization
	newStatus := Classify(c.Percent(), c.warningThreshold)

	switch newStatus {
	case CapacityStatusExceeded:
		if c.exceededAt == nil {
			stamped := now.UTC()
			c.exceededAt = &stamped
		}
	case CapacityStatusActive:
		c.exceededAt = nil
	}

	c.status = newStatus
	return nil
}
