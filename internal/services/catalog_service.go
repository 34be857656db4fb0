package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/models/dtos"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

// CatalogService owns the activity catalog and the per-station
// active-activity pointer.
type CatalogService struct {
	activities repositories.ActivityRepository
	cache      common.CacheInterface
}

func NewCatalogService(activities repositories.ActivityRepository, cache common.CacheInterface) *CatalogService {
	return &CatalogService{
		activities: activities,
		cache:      cache,
	}
}

// ListActivities returns the station's non-deleted activities, seeding the
// builtin set on first use.
func (s *CatalogService) ListActivities(ctx context.Context, stationID string) ([]gormModels.Activity, error) {
	list, err := s.activities.List(ctx, stationID)
	if err != nil {
		return nil, err
	}

	if len(list) > 0 {
		return list, nil
	}

	if err := s.activities.SeedBuiltins(ctx, stationID, constants.BuiltinActivities); err != nil {
		return nil, err
	}
	return s.activities.List(ctx, stationID)
}

func (s *CatalogService) CreateActivity(ctx context.Context, stationID, name string, createdBy *string) (*gormModels.Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", constants.ErrValidation, constants.MsgEmptyActivityName)
	}

	activity := &gormModels.Activity{
		StationID: stationID,
		Name:      name,
		IsCustom:  true,
		CreatedBy: createdBy,
	}

	if err := s.activities.Insert(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// GetActiveActivity returns the station's pointer joined with the activity it
// references, or (nil, nil) when no pointer is set. A pointer whose activity
// no longer resolves answers not-found; the pointer is a weak reference.
func (s *CatalogService) GetActiveActivity(ctx context.Context, stationID string) (*dtos.ActiveActivityResult, error) {
	pointer, err := s.activities.GetActivePointer(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if pointer == nil {
		return nil, nil
	}

	activity, err := s.activities.GetByID(ctx, stationID, pointer.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgActivityNotFound)
	}

	return &dtos.ActiveActivityResult{
		Pointer:  pointer,
		Activity: activity,
	}, nil
}

// SetActiveActivity validates the activity and atomically replaces the
// station's singleton pointer.
func (s *CatalogService) SetActiveActivity(ctx context.Context, stationID, activityID string, setBy *string) (*dtos.ActiveActivityResult, error) {
	activity, err := s.activities.GetByID(ctx, stationID, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.IsDeleted {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgActivityNotFound)
	}

	pointer := &gormModels.ActiveActivity{
		StationID:  stationID,
		ActivityID: activity.ID,
		SetAt:      time.Now(),
		SetBy:      setBy,
	}

	if err := s.activities.SetActivePointer(ctx, pointer); err != nil {
		return nil, err
	}

	s.cache.Delete(string(constants.CachePrefixActiveActivity) + stationID)

	return &dtos.ActiveActivityResult{
		Pointer:  pointer,
		Activity: activity,
	}, nil
}

// ResolveDefaultActivity dereferences the station's pointer for check-ins
// that don't name an activity. No pointer is a user-facing precondition
// failure, not a crash.
func (s *CatalogService) ResolveDefaultActivity(ctx context.Context, stationID string) (*gormModels.Activity, error) {
	cacheKey := string(constants.CachePrefixActiveActivity) + stationID
	if val, found := s.cache.Get(cacheKey); found {
		if activity, ok := val.(*gormModels.Activity); ok {
			return activity, nil
		}
	}

	pointer, err := s.activities.GetActivePointer(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if pointer == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrPreconditionFailed, constants.MsgNoActiveActivity)
	}

	activity, err := s.activities.GetByID(ctx, stationID, pointer.ActivityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgActivityNotFound)
	}

	s.cache.Set(cacheKey, activity, 60*time.Second)
	return activity, nil
}
