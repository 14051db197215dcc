package presence

import (
	"regexp"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

// ActivityStatus is the inferred live state of a worker.
type ActivityStatus string

const (
	// StatusInactive means the session is closed.
	StatusInactive ActivityStatus = "INACTIVE"

	// StatusIdle means the session is open but no view was reported.
	StatusIdle ActivityStatus = "IDLE"

	// StatusActive means the worker is logged in but not on a working screen.
	StatusActive ActivityStatus = "ACTIVE"

	// StatusPicking means a picker is on the picking screen.
	StatusPicking ActivityStatus = "PICKING"

	// StatusPacking means a packer is on the packing screen.
	StatusPacking ActivityStatus = "PACKING"
)

// orderNumberPattern matches the order number formats embedded in view
// strings, e.g. "ORD-20250101-0007" or "PRD-20250101-0012".
var orderNumberPattern = regexp.MustCompile(`\b(?:ORD|PRD)-\d{8}-\d{4}\b`)

// Working-screen markers per role. A view containing the marker means the
// worker is mid-task on their stage's screen.
const (
	pickingScreenMarker = "Picking Order"
	packingScreenMarker = "Packing Order"
)

// OrderRef is a worker's recent order, used to cross-reference an extracted
// order number into a progress percentage.
type OrderRef struct {
	Number   string
	Progress int
}

// Activity is the inference result consumed by dashboards.
type Activity struct {
	Status ActivityStatus

	// OrderNumber is the order the worker is currently touching, or empty
	// when none could be determined. Only set for working statuses.
	OrderNumber string

	// Progress is the cross-referenced order progress percentage, nil when
	// the order was not found in the worker's recent list.
	Progress *int
}

// Infer classifies a worker's presence record.
//
// Rules, in order:
//  1. session closed -> INACTIVE, order context cleared
//  2. no current view -> IDLE, order context cleared
//  3. view on the role's working screen -> PICKING / PACKING; any other
//     view -> ACTIVE
//  4. only for working statuses, extract an order number from the view and
//     cross-reference recentOrders for progress; no match leaves the order
//     context empty rather than guessing
func Infer(record Record, role kernel.Role, recentOrders []OrderRef) Activity {
	if !record.IsActive() {
		return Activity{Status: StatusInactive}
	}

	view := record.CurrentView()
	if view == nil || strings.TrimSpace(*view) == "" {
		return Activity{Status: StatusIdle}
	}

	status := StatusActive
	switch role {
	case kernel.RolePicker:
		if strings.Contains(*view, pickingScreenMarker) {
			status = StatusPicking
		}
	case kernel.RolePacker:
		if strings.Contains(*view, packingScreenMarker) {
			status = StatusPacking
		}
	}

	if status != StatusPicking && status != StatusPacking {
		return Activity{Status: status}
	}

	activity := Activity{Status: status}
	number := orderNumberPattern.FindString(*view)
	if number == "" {
		return activity
	}

	activity.OrderNumber = number
	for _, ref := range recentOrders {
		if ref.Number == number {
			progress := ref.Progress
			activity.Progress = &progress
			break
		}
	}

	return activity
}
