// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for shipment fulfillment.
//
// # Available Jobs
//
// 1. ShipmentSyncJob - Runs every minute to reconcile unshipped shipment states
// against their orders' current facts
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncShipmentStatesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sync job uses the cron expression "0 * * * * *" which means it runs at
// the top of every minute. Reconciliation touches only rows whose computed
// state differs from the persisted one, so frequent runs stay cheap.
//
// # Error Handling
//
// - Sync job logs all errors; a failed pass is retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
