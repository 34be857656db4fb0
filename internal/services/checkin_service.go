package services

import (
	"context"
	"fmt"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/models/entities"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

// CheckInService is the legacy single-session engine: one active check-in per
// member per station, toggled off by a repeated request. The event roster in
// EventService follows the same pattern scoped to one event; the two stay
// structurally parallel but separate because their keys differ.
type CheckInService struct {
	members  repositories.MemberRepository
	catalog  *CatalogService
	checkIns repositories.CheckInRepository
}

func NewCheckInService(members repositories.MemberRepository, catalog *CatalogService, checkIns repositories.CheckInRepository) *CheckInService {
	return &CheckInService{
		members:  members,
		catalog:  catalog,
		checkIns: checkIns,
	}
}

// CheckIn toggles a member's presence. The member is identified by id or by
// scannable code; the activity defaults to the station's active activity.
func (s *CheckInService) CheckIn(ctx context.Context, stationID, memberID, code, activityID string, method constants.CheckInMethod, location *string, isOffsite bool) (*dtos.CheckInResult, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown check-in method %q", constants.ErrValidation, method)
	}

	member, err := s.resolveMember(ctx, stationID, memberID, code)
	if err != nil {
		return nil, err
	}

	activity, err := s.resolveActivity(ctx, stationID, activityID)
	if err != nil {
		return nil, err
	}

	candidate := &entities.CheckIn{
		StationID:   stationID,
		MemberID:    member.ID,
		ActivityID:  activity.ID,
		CheckInTime: time.Now(),
		Method:      string(method),
		Location:    location,
		IsOffsite:   isOffsite,
	}

	action, checkIn, err := s.checkIns.Toggle(ctx, candidate)
	if err != nil {
		return nil, err
	}

	return &dtos.CheckInResult{
		Action:  action,
		CheckIn: checkIn,
	}, nil
}

func (s *CheckInService) ListActive(ctx context.Context, stationID string) ([]entities.CheckIn, error) {
	return s.checkIns.ListActive(ctx, stationID)
}

func (s *CheckInService) resolveMember(ctx context.Context, stationID, memberID, code string) (*gormModels.Member, error) {
	var member *gormModels.Member
	var err error

	switch {
	case memberID != "":
		member, err = s.members.GetByID(ctx, stationID, memberID)
	case code != "":
		member, err = s.members.GetByCode(ctx, stationID, code)
	default:
		return nil, fmt.Errorf("%w: memberId or code is required", constants.ErrValidation)
	}

	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgMemberNotFound)
	}
	return member, nil
}

func (s *CheckInService) resolveActivity(ctx context.Context, stationID, activityID string) (*gormModels.Activity, error) {
	if activityID == "" {
		return s.catalog.ResolveDefaultActivity(ctx, stationID)
	}

	activity, err := s.catalog.activities.GetByID(ctx, stationID, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil || activity.IsDeleted {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotFound, constants.MsgActivityNotFound)
	}
	return activity, nil
}
