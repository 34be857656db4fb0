package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

const testStation = "station-test"

type fixture struct {
	store    *repositories.MemoryStore
	events   *EventService
	catalog  *CatalogService
	rollover *RolloverService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	cache := common.NewCacheService(60, 120)
	catalog := NewCatalogService(store.Activities(), cache)
	rollover := NewRolloverService(store.Events(), constants.DefaultEventMaxAgeHours)
	events := NewEventService(store.Events(), store.Members(), store.Activities(), store.Audit(), rollover, nil)

	return &fixture{
		store:    store,
		events:   events,
		catalog:  catalog,
		rollover: rollover,
	}
}

func (f *fixture) seedMember(t *testing.T, name, code string) *gormModels.Member {
	t.Helper()
	member := &gormModels.Member{StationID: testStation, Name: name, Code: code, IsActive: true}
	if err := f.store.Members().Insert(context.Background(), member); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}

func (f *fixture) seedActivity(t *testing.T, name string) *gormModels.Activity {
	t.Helper()
	activity := &gormModels.Activity{StationID: testStation, Name: name, IsCustom: true}
	if err := f.store.Activities().Insert(context.Background(), activity); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	return activity
}

func TestParticipantToggleSymmetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Training")
	member := f.seedMember(t, "Alex Mercer", "FF-001")

	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	first, err := f.events.AddOrRemoveParticipant(ctx, testStation, event.ID, member.ID, constants.MethodKiosk, nil, false)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.Action != constants.ToggleActionAdded {
		t.Errorf("first toggle action = %q, want %q", first.Action, constants.ToggleActionAdded)
	}
	if first.Participant.StationID != testStation {
		t.Errorf("participant station = %q, want event's station %q", first.Participant.StationID, testStation)
	}

	second, err := f.events.AddOrRemoveParticipant(ctx, testStation, event.ID, member.ID, constants.MethodKiosk, nil, false)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Action != constants.ToggleActionRemoved {
		t.Errorf("second toggle action = %q, want %q", second.Action, constants.ToggleActionRemoved)
	}

	loaded, err := f.events.GetEventWithParticipants(ctx, testStation, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if len(loaded.Participants) != 0 {
		t.Errorf("roster size after symmetric toggle = %d, want 0", len(loaded.Participants))
	}

	audit, err := f.events.ListAudit(ctx, testStation, event.ID)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(audit) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(audit))
	}
	if audit[0].Action != constants.AuditActionAdded || audit[1].Action != constants.AuditActionRemoved {
		t.Errorf("audit actions = %q, %q", audit[0].Action, audit[1].Action)
	}
}

func TestEndEventIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Meeting")
	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	ended, err := f.events.EndEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("first end: %v", err)
	}
	if ended.IsActive {
		t.Error("event still active after end")
	}
	if ended.EndTime == nil {
		t.Fatal("end_time not stamped")
	}
	firstEnd := *ended.EndTime

	time.Sleep(10 * time.Millisecond)

	again, err := f.events.EndEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("second end: %v", err)
	}
	if again.EndTime == nil || !again.EndTime.Equal(firstEnd) {
		t.Errorf("second end re-stamped end_time: %v, want %v", again.EndTime, firstEnd)
	}
}

func TestEndEventNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.events.EndEvent(context.Background(), "no-such-event")
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestReactivateWithinWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Callout")
	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := f.events.EndEvent(ctx, event.ID); err != nil {
		t.Fatalf("end event: %v", err)
	}

	reactivated, err := f.events.ReactivateEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !reactivated.IsActive {
		t.Error("event not active after reactivation")
	}
	if reactivated.EndTime != nil {
		t.Errorf("end_time not cleared: %v", reactivated.EndTime)
	}
}

func TestReactivateOutsideWindowForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	endedAt := time.Now().Add(-constants.ReactivationWindow - time.Hour)
	stale := &gormModels.Event{
		StationID:    testStation,
		ActivityID:   "a1",
		ActivityName: "Training",
		StartTime:    endedAt.Add(-2 * time.Hour),
		EndTime:      &endedAt,
		IsActive:     false,
	}
	if err := f.store.Events().Insert(ctx, stale); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	_, err := f.events.ReactivateEvent(ctx, stale.ID)
	if !errors.Is(err, constants.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestReactivateActiveEventIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Maintenance")
	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	same, err := f.events.ReactivateEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("reactivate active: %v", err)
	}
	if !same.IsActive {
		t.Error("active event flipped by reactivation")
	}
}

func TestToggleOnEndedEventRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Training")
	member := f.seedMember(t, "Sam Reyes", "FF-002")

	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := f.events.EndEvent(ctx, event.ID); err != nil {
		t.Fatalf("end event: %v", err)
	}

	_, err = f.events.AddOrRemoveParticipant(ctx, testStation, event.ID, member.ID, constants.MethodMobile, nil, false)
	if !errors.Is(err, constants.ErrPreconditionFailed) {
		t.Errorf("err = %v, want ErrPreconditionFailed", err)
	}
}

func TestCrossStationEventIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Training")
	member := f.seedMember(t, "Jo Park", "FF-003")

	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	_, err = f.events.AddOrRemoveParticipant(ctx, "station-other", event.ID, member.ID, constants.MethodKiosk, nil, false)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("toggle err = %v, want ErrNotFound", err)
	}

	_, err = f.events.GetEventWithParticipants(ctx, "station-other", event.ID)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("get err = %v, want ErrNotFound", err)
	}
}

func TestRemoveParticipantExplicit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Training")
	member := f.seedMember(t, "Dana Wolfe", "FF-004")

	event, err := f.events.CreateEvent(ctx, testStation, activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	added, err := f.events.AddOrRemoveParticipant(ctx, testStation, event.ID, member.ID, constants.MethodQR, nil, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := f.events.RemoveParticipant(ctx, event.ID, added.Participant.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err = f.events.RemoveParticipant(ctx, event.ID, added.Participant.ID)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
}

func TestCreateEventUnknownActivity(t *testing.T) {
	f := newFixture(t)

	_, err := f.events.CreateEvent(context.Background(), testStation, "no-such-activity", nil)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
