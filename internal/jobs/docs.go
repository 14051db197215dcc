// Package jobs provides scheduled background tasks for the fulfillment
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CapacitySweepJob - Runs every minute to recalculate capacity for every
// tracked storage location, reconciling any drift from inventory movements
// that bypassed the explicit recalculation hook.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(recalculateHandler, capacityUoWFactory, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep treats each location independently: a failed recalculation is
// logged and the sweep moves on, so one bad location cannot starve the
// rest.
package jobs
