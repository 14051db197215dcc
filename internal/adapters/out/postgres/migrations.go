package postgres

import (
	"fulfillment/internal/adapters/out/postgres/capacityrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/presencerepo"
	"fulfillment/internal/adapters/out/postgres/productionrepo"

	"gorm.io/gorm"
)

// openAlertIndexSQL enforces at most one unacknowledged alert per
// (location, dimension). The alert upsert's ON CONFLICT clause targets this
// index, which is what closes the duplicate-alert race between concurrent
// recalculations of the same location.
const openAlertIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_alert_per_location_dimension
	ON capacity_alerts (location_code, dimension)
	WHERE NOT acknowledged
`

// Migrate creates or updates the schema for every persisted table, plus the
// partial unique index the alert dedup relies on.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productionrepo.ProductionOrderDTO{},
		&capacityrepo.CapacityRuleDTO{},
		&capacityrepo.LocationCapacityDTO{},
		&capacityrepo.CapacityAlertDTO{},
		&capacityrepo.InventoryItemDTO{},
		&presencerepo.PresenceRecordDTO{},
	)
	if err != nil {
		return err
	}

	return db.Exec(openAlertIndexSQL).Error
}
