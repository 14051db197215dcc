package capacity

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrAlertIsNotConstructed is returned when an Alert was not created
	// via NewAlertForCapacity or RestoreAlert.
	ErrAlertIsNotConstructed = errors.New("Alert must be created via NewAlertForCapacity or RestoreAlert")

	// ErrAlertNotAlertable is returned when creating an alert for an
	// ACTIVE capacity record: only WARNING and EXCEEDED raise alerts.
	ErrAlertNotAlertable = errs.NewValueIsInvalidError("capacity status does not warrant an alert")

	// ErrAlertAlreadyAcknowledged is returned when acknowledging an alert
	// a human has already seen.
	ErrAlertAlreadyAcknowledged = errs.NewValueIsInvalidError("alert is already acknowledged")
)

// Alert records that a (location, dimension) pair crossed its warning or
// maximum capacity. At most one unacknowledged alert exists per pair:
// recalculations refresh the open alert's snapshot in place instead of
// creating new rows, so a location hovering at the threshold does not spam.
//
// Acknowledging an alert is a human act independent of the underlying
// capacity record; the location may well still be over capacity afterward.
type Alert struct {
	id          kernel.UUID
	location    kernel.BinLocation
	dimension   Dimension
	alertType   CapacityStatus
	utilization float64
	maxCapacity float64
	percent     float64
	message     string

	acknowledged   bool
	acknowledgedBy *kernel.UUID
	acknowledgedAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewAlertForCapacity opens an alert snapshotting the given capacity record.
// The record must classify as WARNING or EXCEEDED.
func NewAlertForCapacity(id kernel.UUID, cap *LocationCapacity, now time.Time) (*Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := cap.Validate(); err != nil {
		return nil, err
	}
	if cap.Status() != CapacityStatusWarning && cap.Status() != CapacityStatusExceeded {
		return nil, ErrAlertNotAlertable
	}

	a := &Alert{
		id:            id,
		location:      cap.Location(),
		dimension:     cap.Dimension(),
		createdAt:     now.UTC(),
		isConstructed: true,
	}
	a.snapshot(cap, now)

	return a, nil
}

// RestoreAlert reconstructs an alert from persistence.
func RestoreAlert(
	id kernel.UUID,
	location kernel.BinLocation,
	dimension Dimension,
	alertType CapacityStatus,
	utilization, maxCapacity, percent float64,
	message string,
	acknowledged bool,
	acknowledgedBy *kernel.UUID,
	acknowledgedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Alert, error) {
	if err := errors.Join(
		id.Validate(),
		location.Validate(),
		dimension.Validate(),
		alertType.Validate(),
	); err != nil {
		return nil, err
	}

	return &Alert{
		id:             id,
		location:       location,
		dimension:      dimension,
		alertType:      alertType,
		utilization:    utilization,
		maxCapacity:    maxCapacity,
		percent:        percent,
		message:        message,
		acknowledged:   acknowledged,
		acknowledgedBy: acknowledgedBy,
		acknowledgedAt: acknowledgedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Alert was constructed via a constructor.
func (a *Alert) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAlertIsNotConstructed
	}
	return nil
}

// ID returns the alert's unique identifier.
func (a *Alert) ID() kernel.UUID {
	return a.id
}

// Location returns the affected storage location.
func (a *Alert) Location() kernel.BinLocation {
	return a.location
}

// Dimension returns the affected fullness axis.
func (a *Alert) Dimension() Dimension {
	return a.dimension
}

// Type returns WARNING or EXCEEDED as of the latest refresh.
func (a *Alert) Type() CapacityStatus {
	return a.alertType
}

// Utilization returns the snapshotted fullness value.
func (a *Alert) Utilization() float64 {
	return a.utilization
}

// MaxCapacity returns the snapshotted capacity ceiling.
func (a *Alert) MaxCapacity() float64 {
	return a.maxCapacity
}

// Percent returns the snapshotted utilization percentage.
func (a *Alert) Percent() float64 {
	return a.percent
}

// Message returns the human-readable alert text.
func (a *Alert) Message() string {
	return a.message
}

// IsAcknowledged reports whether a human has seen the alert.
func (a *Alert) IsAcknowledged() bool {
	return a.acknowledged
}

// AcknowledgedBy returns who acknowledged the alert, or nil.
func (a *Alert) AcknowledgedBy() *kernel.UUID {
	return a.acknowledgedBy
}

// AcknowledgedAt returns when the alert was acknowledged, or nil.
func (a *Alert) AcknowledgedAt() *time.Time {
	return a.acknowledgedAt
}

// CreatedAt returns when the alert was first opened.
func (a *Alert) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the latest snapshot refresh time.
func (a *Alert) UpdatedAt() time.Time {
	return a.updatedAt
}

// Refresh updates the open alert's snapshot and message in place from a
// fresh recalculation. This is the dedup path: no new alert row is created
// while one is still unacknowledged.
func (a *Alert) Refresh(cap *LocationCapacity, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := cap.Validate(); err != nil {
		return err
	}
	if a.acknowledged {
		return ErrAlertAlreadyAcknowledged
	}
	if cap.Status() != CapacityStatusWarning && cap.Status() != CapacityStatusExceeded {
		return ErrAlertNotAlertable
	}

	a.snapshot(cap, now)
	return nil
}

// Acknowledge marks the alert as seen by the given user. The underlying
// capacity record is deliberately untouched.
func (a *Alert) Acknowledge(userID kernel.UUID, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	if a.acknowledged {
		return ErrAlertAlreadyAcknowledged
	}

	at := now.UTC()
	a.acknowledged = true
	a.acknowledgedBy = &userID
	a.acknowledgedAt = &at
	a.updatedAt = at
	return nil
}

func (a *Alert) snapshot(cap *LocationCapacity, now time.Time) {
	a.alertType = cap.Status()
	a.utilization = cap.Utilization()
	a.maxCapacity = cap.MaxCapacity()
	a.percent = cap.Percent()
	a.message = fmt.Sprintf("%s capacity at %s is %.1f%% (%.0f of %.0f)",
		cap.Dimension(), cap.Location().Code(), a.percent, a.utilization, a.maxCapacity)
	a.updatedAt = now.UTC()
}
