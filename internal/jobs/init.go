package jobs

import (
	"context"
	"time"

	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	rollover *services.RolloverService,
	registry *metrics.MetricsRegistry,
) *RolloverJob {
	rolloverJob := NewRolloverJob(rollover, registry)

	// Sweep every 10 minutes so rollover lags the threshold by minutes, not hours
	go rolloverJob.RunScheduled(ctx, 10*time.Minute)

	return rolloverJob
}
