package jobs

import (
	"context"
	"log"
	"time"

	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/services"
)

// RolloverJob runs the expiry sweep across all stations on a schedule, so
// forgotten events roll over even when nobody opens the UI.
type RolloverJob struct {
	rollover *services.RolloverService
	metrics  *metrics.MetricsRegistry
}

func NewRolloverJob(rollover *services.RolloverService, registry *metrics.MetricsRegistry) *RolloverJob {
	return &RolloverJob{
		rollover: rollover,
		metrics:  registry,
	}
}

// Run executes one all-station sweep
func (j *RolloverJob) Run(ctx context.Context) error {
	start := time.Now()

	deactivated, err := j.rollover.DeactivateExpiredEvents(ctx, "")
	if err != nil {
		return err
	}

	if j.metrics != nil {
		j.metrics.RolloverSweepDuration.Observe(time.Since(start).Seconds())
		j.metrics.EventsDeactivatedTotal.Add(float64(len(deactivated)))
	}

	if len(deactivated) > 0 {
		log.Printf("[RolloverJob] Ended %d expired events", len(deactivated))
	}

	return nil
}

// RunScheduled runs the sweep immediately, then on every tick
func (j *RolloverJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		log.Printf("[RolloverJob] Error in initial run: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[RolloverJob] Error in scheduled run: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[RolloverJob] Shutting down scheduled sweep")
			return
		}
	}
}
