package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CapacitySweepJob periodically recalculates every tracked location. The
// sweep reconciles drift from inventory movements that skipped the explicit
// recalculation hook; since recalculation is idempotent, sweeping an
// already-correct location changes nothing.
type CapacitySweepJob struct {
	handler    commands.RecalculateCapacityCommandHandler
	uowFactory commands.CapacityUoWFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCapacitySweepJob creates the reconciliation sweep. Runs every minute.
func NewCapacitySweepJob(
	handler commands.RecalculateCapacityCommandHandler,
	uowFactory commands.CapacityUoWFactory,
	logger *slog.Logger,
) *CapacitySweepJob {
	return &CapacitySweepJob{
		handler:    handler,
		uowFactory: uowFactory,
		cron:       cron.New(),
		logger:     logger.With("component", "capacity_sweep_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *CapacitySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity sweep job started (running every minute)")
	return nil
}

// Stop stops the capacity sweep job.
func (j *CapacitySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Capacity sweep job stopped")
}

// sweep recalculates each tracked location independently. One location's
// failure is logged and skipped; it never aborts the rest of the sweep.
func (j *CapacitySweepJob) sweep() {
	ctx := context.Background()

	locations, err := j.uowFactory.Create().CapacityRepository().ListTrackedLocations(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity sweep failed to list locations", "error", err)
		return
	}

	for _, loc := range locations {
		cmd, cmdErr := commands.NewRecalculateCapacityCommand(loc)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Capacity sweep skipped location", "location", loc.Code(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Capacity sweep recalculation failed", "location", loc.Code(), "error", handleErr)
		}
	}
}
