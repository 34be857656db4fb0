package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brigade-ops/rollcall/internal/constants"
	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventGormRepository handles events and their participant rosters using GORM
type EventGormRepository struct {
	db *gorm.DB
}

var _ EventRepository = (*EventGormRepository)(nil)

func NewEventGormRepository(db *gorm.DB) *EventGormRepository {
	return &EventGormRepository{db: db}
}

func (r *EventGormRepository) Insert(ctx context.Context, event *gormModels.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *EventGormRepository) GetByID(ctx context.Context, id string) (*gormModels.Event, error) {
	var event gormModels.Event

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&event).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	return &event, nil
}

func (r *EventGormRepository) GetWithParticipants(ctx context.Context, id string) (*gormModels.Event, error) {
	var event gormModels.Event

	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&event).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch event with participants: %w", err)
	}

	return &event, nil
}

func (r *EventGormRepository) List(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	var events []gormModels.Event

	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("start_time desc").
		Find(&events).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

func (r *EventGormRepository) ListActive(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	var events []gormModels.Event

	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}

	if err := query.Order("start_time desc").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}

	return events, nil
}

// End flips the event inactive with a single conditional UPDATE, so a second
// call (or a concurrent sweep) matches zero rows and leaves end_time as the
// first call stamped it.
func (r *EventGormRepository) End(ctx context.Context, id string, at time.Time) (*gormModels.Event, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{
			"is_active": false,
			"end_time":  at,
		})

	if res.Error != nil {
		return nil, fmt.Errorf("failed to end event: %w", res.Error)
	}

	return r.GetByID(ctx, id)
}

func (r *EventGormRepository) Reactivate(ctx context.Context, id string) (*gormModels.Event, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active": true,
			"end_time":  nil,
		})

	if res.Error != nil {
		return nil, fmt.Errorf("failed to reactivate event: %w", res.Error)
	}

	return r.GetByID(ctx, id)
}

// ToggleParticipant runs the roster read-modify-write inside one transaction.
// The existing row is locked FOR UPDATE; the unique index on
// (event_id, member_id) backstops two concurrent first-time inserts.
func (r *EventGormRepository) ToggleParticipant(ctx context.Context, candidate *gormModels.EventParticipant) (string, *gormModels.EventParticipant, error) {
	var action string
	var result *gormModels.EventParticipant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing gormModels.EventParticipant

		// sqlite (tests) has no row locks; the unique index on
		// (event_id, member_id) backstops the race there
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		err := query.
			Where("event_id = ? AND member_id = ?", candidate.EventID, candidate.MemberID).
			First(&existing).Error

		if err == nil {
			if err := tx.Delete(&gormModels.EventParticipant{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			action = constants.ToggleActionRemoved
			result = &existing
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(candidate).Error; err != nil {
			return err
		}
		action = constants.ToggleActionAdded
		result = candidate
		return nil
	})

	if err != nil {
		return "", nil, fmt.Errorf("failed to toggle participant: %w", err)
	}

	return action, result, nil
}

func (r *EventGormRepository) GetParticipant(ctx context.Context, eventID, participantID string) (*gormModels.EventParticipant, error) {
	var participant gormModels.EventParticipant

	err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", participantID, eventID).
		First(&participant).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch participant: %w", err)
	}

	return &participant, nil
}

func (r *EventGormRepository) DeleteParticipant(ctx context.Context, eventID, participantID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", participantID, eventID).
		Delete(&gormModels.EventParticipant{})

	if res.Error != nil {
		return false, fmt.Errorf("failed to delete participant: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *EventGormRepository) ListParticipants(ctx context.Context, eventID string) ([]gormModels.EventParticipant, error) {
	var participants []gormModels.EventParticipant

	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("check_in_time asc").
		Find(&participants).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return participants, nil
}
