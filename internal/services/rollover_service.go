package services

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/logging"
	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"golang.org/x/sync/errgroup"
)

// RolloverService ends events whose start time has aged past the configured
// threshold. Expiry is a function of elapsed time only; it ignores whatever
// active flag the event currently carries.
type RolloverService struct {
	events         repositories.EventRepository
	thresholdHours int
}

func NewRolloverService(events repositories.EventRepository, thresholdHours int) *RolloverService {
	if thresholdHours <= 0 {
		thresholdHours = constants.DefaultEventMaxAgeHours
	}
	return &RolloverService{
		events:         events,
		thresholdHours: thresholdHours,
	}
}

// ThresholdHoursFromEnv reads EVENT_MAX_AGE_HOURS, falling back to the default
func ThresholdHoursFromEnv() int {
	if v := os.Getenv("EVENT_MAX_AGE_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return hours
		}
	}
	return constants.DefaultEventMaxAgeHours
}

// ThresholdHours is the single source of truth for the expiry threshold
func (s *RolloverService) ThresholdHours() int {
	return s.thresholdHours
}

// IsExpired reports whether the event's start time has aged past the
// threshold. The boundary is inclusive: an event exactly at the threshold is
// expired.
func (s *RolloverService) IsExpired(event *gormModels.Event, now time.Time) bool {
	return now.Sub(event.StartTime) >= time.Duration(s.thresholdHours)*time.Hour
}

// DeactivateExpiredEvents sweeps events flagged active and ends every expired
// one through the same EndEvent transition as manual ending. stationID == ""
// sweeps all stations. Safe to run concurrently with itself or with manual
// ends, since ending an already-ended event is a no-op. Best effort: a failed
// end is logged and skipped, it does not abort the sweep.
func (s *RolloverService) DeactivateExpiredEvents(ctx context.Context, stationID string) ([]string, error) {
	active, err := s.events.ListActive(ctx, stationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var mu sync.Mutex
	deactivated := make([]string, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, event := range active {
		if !s.IsExpired(&event, now) {
			continue
		}

		id := event.ID
		g.Go(func() error {
			if _, err := s.events.End(gctx, id, now); err != nil {
				logging.Warn("Rollover failed to end expired event",
					"event_id", id,
					"error", err.Error(),
				)
				return nil
			}
			mu.Lock()
			deactivated = append(deactivated, id)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if len(deactivated) > 0 {
		logging.Info("Rollover sweep deactivated expired events",
			"count", len(deactivated),
			"station_id", stationID,
			"threshold_hours", s.thresholdHours,
		)
	}

	return deactivated, nil
}
