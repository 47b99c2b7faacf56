package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
)

// ShipmentSyncJob manages the scheduled reconciliation of shipment states.
// Runs every minute to realign unshipped shipments with their orders' current
// facts, catching rows written out-of-band or left stale by failed workflows.
type ShipmentSyncJob struct {
	handler commands.SyncShipmentStatesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewShipmentSyncJob creates a new job for reconciling shipment states.
// Uses SyncShipmentStatesCommandHandler to process the unshipped backlog every minute.
func NewShipmentSyncJob(handler commands.SyncShipmentStatesCommandHandler, logger *slog.Logger) *ShipmentSyncJob {
	return &ShipmentSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "shipment_sync_job"),
	}
}

// Start begins the shipment sync job to run every minute.
func (j *ShipmentSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncShipmentStatesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Shipment sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment sync job started (running every minute)")
	return nil
}

// Stop stops the shipment sync job.
func (j *ShipmentSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment sync job stopped")
}
