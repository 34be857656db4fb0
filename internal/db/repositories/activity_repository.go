package repositories

import (
	"context"
	"fmt"

	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityGormRepository handles the activity catalog and the per-station
// active-activity pointer using GORM
type ActivityGormRepository struct {
	db *gorm.DB
}

var _ ActivityRepository = (*ActivityGormRepository)(nil)

func NewActivityGormRepository(db *gorm.DB) *ActivityGormRepository {
	return &ActivityGormRepository{db: db}
}

func (r *ActivityGormRepository) List(ctx context.Context, stationID string) ([]gormModels.Activity, error) {
	var activities []gormModels.Activity

	err := r.db.WithContext(ctx).
		Where("station_id = ? AND is_deleted = ?", stationID, false).
		Order("is_custom asc, name asc").
		Find(&activities).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return activities, nil
}

func (r *ActivityGormRepository) GetByID(ctx context.Context, stationID, id string) (*gormModels.Activity, error) {
	var activity gormModels.Activity

	err := r.db.WithContext(ctx).
		Where("id = ? AND station_id = ?", id, stationID).
		First(&activity).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}

	return &activity, nil
}

func (r *ActivityGormRepository) Insert(ctx context.Context, activity *gormModels.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// SeedBuiltins inserts the builtin catalog for a station. The unique index on
// (station_id, name) plus DO NOTHING makes concurrent first reads converge on
// a single seeded set.
func (r *ActivityGormRepository) SeedBuiltins(ctx context.Context, stationID string, names []string) error {
	rows := make([]gormModels.Activity, 0, len(names))
	for _, name := range names {
		rows = append(rows, gormModels.Activity{
			StationID: stationID,
			Name:      name,
			IsCustom:  false,
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error

	if err != nil {
		return fmt.Errorf("failed to seed builtin activities: %w", err)
	}
	return nil
}

func (r *ActivityGormRepository) GetActivePointer(ctx context.Context, stationID string) (*gormModels.ActiveActivity, error) {
	var pointer gormModels.ActiveActivity

	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		First(&pointer).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active activity pointer: %w", err)
	}

	return &pointer, nil
}

// SetActivePointer replaces the singleton pointer with an upsert keyed on
// station_id, so two near-simultaneous calls leave exactly one row.
func (r *ActivityGormRepository) SetActivePointer(ctx context.Context, pointer *gormModels.ActiveActivity) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "station_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"activity_id", "set_at", "set_by"}),
		}).
		Create(pointer).Error

	if err != nil {
		return fmt.Errorf("failed to set active activity: %w", err)
	}
	return nil
}
