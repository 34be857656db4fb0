package services

import (
	"context"
	"fmt"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/logging"
	"brigade-ops/rollcall/internal/models/dtos"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

// AuditEmitter receives roster changes for the append-only audit log.
// Implementations may write synchronously or queue for a background writer.
type AuditEmitter interface {
	EmitRosterChange(ctx context.Context, entry *gormModels.EventAuditLog)
}

// SyncAuditEmitter writes audit entries straight to the repository; used
// when no queue is configured and in tests.
type SyncAuditEmitter struct {
	Audit repositories.AuditRepository
}

func (e *SyncAuditEmitter) EmitRosterChange(ctx context.Context, entry *gormModels.EventAuditLog) {
	if err := e.Audit.Append(ctx, entry); err != nil {
		logging.Warn("Failed to append audit entry",
			"event_id", entry.EventID,
			"error", err.Error(),
		)
	}
}

// EventService owns the event lifecycle and the participant roster.
// An event is Active on creation, Ended by user action or rollover, and may
// be reactivated within a bounded window of its end time.
type EventService struct {
	events     repositories.EventRepository
	members    repositories.MemberRepository
	activities repositories.ActivityRepository
	audit      repositories.AuditRepository
	rollover   *RolloverService
	emitter    AuditEmitter
}

func NewEventService(
	events repositories.EventRepository,
	members repositories.MemberRepository,
	activities repositories.ActivityRepository,
	audit repositories.AuditRepository,
	rollover *RolloverService,
	emitter AuditEmitter,
) *EventService {
	if emitter == nil {
		emitter = &SyncAuditEmitter{Audit: audit}
	}
	return &EventService{
		events:     events,
		members:    members,
		activities: activities,
		audit:      audit,
		rollover:   rollover,
		emitter:    emitter,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, stationID, activityID string, createdBy *string) (*gormModels.Event, error) {
	activity, err := s.activities.GetByID(ctx, stationID, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.IsDeleted {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgActivityNotFound)
	}

	event := &gormModels.Event{
		StationID:    stationID,
		ActivityID:   activity.ID,
		ActivityName: activity.Name,
		StartTime:    time.Now(),
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// EndEvent flips Active→Ended. Ending an already-ended event is a no-op
// success and does not re-stamp end_time.
func (s *EventService) EndEvent(ctx context.Context, eventID string) (*gormModels.Event, error) {
	event, err := s.events.End(ctx, eventID, time.Now())
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}
	return event, nil
}

// ReactivateEvent reopens an ended event, but only within the reactivation
// window measured from its end time. An already-active event is returned
// unchanged, as is an inactive event missing its end time; stale history
// answers forbidden rather than silently reactivating.
func (s *EventService) ReactivateEvent(ctx context.Context, eventID string) (*gormModels.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}

	if event.IsActive || event.EndTime == nil {
		return event, nil
	}

	if time.Since(*event.EndTime) > constants.ReactivationWindow {
		return nil, fmt.Errorf("%w: %s", constants.ErrForbidden, constants.MsgReactivationExpired)
	}

	reactivated, err := s.events.Reactivate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if reactivated == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}
	return reactivated, nil
}

// AddOrRemoveParticipant toggles a member's roster membership on an active
// event. The participant's station id is always copied from the parent event,
// never taken from the caller.
func (s *EventService) AddOrRemoveParticipant(ctx context.Context, stationID, eventID, memberID string, method constants.CheckInMethod, location *string, isOffsite bool) (*dtos.ParticipantResult, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown check-in method %q", constants.ErrValidation, method)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// cross-station references answer not-found, never forbidden
	if event == nil || event.StationID != stationID {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}

	if !event.IsActive {
		return nil, fmt.Errorf("%w: %s", constants.ErrPreconditionFailed, constants.MsgEventEnded)
	}

	member, err := s.members.GetByID(ctx, event.StationID, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgMemberNotFound)
	}

	candidate := &gormModels.EventParticipant{
		EventID:     event.ID,
		StationID:   event.StationID,
		MemberID:    member.ID,
		MemberName:  member.Name,
		MemberRank:  member.Rank,
		CheckInTime: time.Now(),
		Method:      string(method),
		Location:    location,
		IsOffsite:   isOffsite,
	}

	action, participant, err := s.events.ToggleParticipant(ctx, candidate)
	if err != nil {
		return nil, err
	}

	auditAction := constants.AuditActionAdded
	if action == constants.ToggleActionRemoved {
		auditAction = constants.AuditActionRemoved
	}
	s.emitter.EmitRosterChange(ctx, &gormModels.EventAuditLog{
		EventID:   event.ID,
		StationID: event.StationID,
		MemberID:  member.ID,
		Action:    auditAction,
		At:        time.Now(),
	})

	return &dtos.ParticipantResult{
		Action:      action,
		Participant: participant,
	}, nil
}

// RemoveParticipant is the explicit undo path used by the roster UI
func (s *EventService) RemoveParticipant(ctx context.Context, eventID, participantID string) error {
	participant, err := s.events.GetParticipant(ctx, eventID, participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgParticipantNotFound)
	}

	deleted, err := s.events.DeleteParticipant(ctx, eventID, participantID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgParticipantNotFound)
	}

	s.emitter.EmitRosterChange(ctx, &gormModels.EventAuditLog{
		EventID:   eventID,
		StationID: participant.StationID,
		MemberID:  participant.MemberID,
		Action:    constants.AuditActionRemoved,
		At:        time.Now(),
	})

	return nil
}

// GetEvents lists the station's events, sweeping expired ones first so stale
// state never leaks into active views.
func (s *EventService) GetEvents(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	if _, err := s.rollover.DeactivateExpiredEvents(ctx, stationID); err != nil {
		return nil, err
	}
	return s.events.List(ctx, stationID)
}

func (s *EventService) GetActiveEvents(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	if _, err := s.rollover.DeactivateExpiredEvents(ctx, stationID); err != nil {
		return nil, err
	}
	return s.events.ListActive(ctx, stationID)
}

func (s *EventService) GetEventWithParticipants(ctx context.Context, stationID, eventID string) (*gormModels.Event, error) {
	if _, err := s.rollover.DeactivateExpiredEvents(ctx, stationID); err != nil {
		return nil, err
	}

	event, err := s.events.GetWithParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.StationID != stationID {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}
	return event, nil
}

func (s *EventService) ListAudit(ctx context.Context, stationID, eventID string) ([]gormModels.EventAuditLog, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.StationID != stationID {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgEventNotFound)
	}
	return s.audit.ListByEvent(ctx, eventID)
}
