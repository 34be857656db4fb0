package services

import (
	"context"
	"errors"
	"testing"

	"brigade-ops/rollcall/internal/constants"
)

func newCheckInFixture(t *testing.T) (*fixture, *CheckInService) {
	t.Helper()
	f := newFixture(t)
	svc := NewCheckInService(f.store.Members(), f.catalog, f.store.CheckIns())
	return f, svc
}

func TestCheckInToggle(t *testing.T) {
	f, svc := newCheckInFixture(t)
	ctx := context.Background()

	member := f.seedMember(t, "Alex Mercer", "FF-001")
	activity := f.seedActivity(t, "Training")

	first, err := svc.CheckIn(ctx, testStation, member.ID, "", activity.ID, constants.MethodKiosk, nil, false)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.Action != constants.ToggleActionCheckedIn {
		t.Errorf("first action = %q, want %q", first.Action, constants.ToggleActionCheckedIn)
	}

	active, err := svc.ListActive(ctx, testStation)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active check-ins = %d, want 1", len(active))
	}

	second, err := svc.CheckIn(ctx, testStation, member.ID, "", activity.ID, constants.MethodKiosk, nil, false)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Action != constants.ToggleActionUndone {
		t.Errorf("second action = %q, want %q", second.Action, constants.ToggleActionUndone)
	}

	active, err = svc.ListActive(ctx, testStation)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active check-ins after undo = %d, want 0", len(active))
	}
}

func TestCheckInByCode(t *testing.T) {
	f, svc := newCheckInFixture(t)
	ctx := context.Background()

	member := f.seedMember(t, "Sam Reyes", "FF-002")
	activity := f.seedActivity(t, "Meeting")

	result, err := svc.CheckIn(ctx, testStation, "", member.Code, activity.ID, constants.MethodQR, nil, false)
	if err != nil {
		t.Fatalf("check in by code: %v", err)
	}
	if result.CheckIn.MemberID != member.ID {
		t.Errorf("resolved member %s, want %s", result.CheckIn.MemberID, member.ID)
	}
}

func TestCheckInDefaultsToActiveActivity(t *testing.T) {
	f, svc := newCheckInFixture(t)
	ctx := context.Background()

	member := f.seedMember(t, "Jo Park", "FF-003")
	activity := f.seedActivity(t, "Station Duty")
	if _, err := f.catalog.SetActiveActivity(ctx, testStation, activity.ID, nil); err != nil {
		t.Fatalf("set active activity: %v", err)
	}

	result, err := svc.CheckIn(ctx, testStation, member.ID, "", "", constants.MethodMobile, nil, false)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if result.CheckIn.ActivityID != activity.ID {
		t.Errorf("defaulted to activity %s, want %s", result.CheckIn.ActivityID, activity.ID)
	}
}

func TestCheckInWithoutPointerFails(t *testing.T) {
	f, svc := newCheckInFixture(t)

	member := f.seedMember(t, "Dana Wolfe", "FF-004")

	_, err := svc.CheckIn(context.Background(), testStation, member.ID, "", "", constants.MethodKiosk, nil, false)
	if !errors.Is(err, constants.ErrPreconditionFailed) {
		t.Errorf("err = %v, want ErrPreconditionFailed", err)
	}
}

func TestCheckInValidation(t *testing.T) {
	f, svc := newCheckInFixture(t)
	ctx := context.Background()

	activity := f.seedActivity(t, "Training")

	if _, err := svc.CheckIn(ctx, testStation, "", "", activity.ID, constants.MethodKiosk, nil, false); !errors.Is(err, constants.ErrValidation) {
		t.Errorf("missing identifier err = %v, want ErrValidation", err)
	}

	member := f.seedMember(t, "Max Doyle", "FF-005")
	if _, err := svc.CheckIn(ctx, testStation, member.ID, "", activity.ID, "carrier-pigeon", nil, false); !errors.Is(err, constants.ErrValidation) {
		t.Errorf("bad method err = %v, want ErrValidation", err)
	}

	if _, err := svc.CheckIn(ctx, testStation, "no-such-member", "", activity.ID, constants.MethodKiosk, nil, false); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("unknown member err = %v, want ErrNotFound", err)
	}
}
