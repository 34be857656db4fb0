package services

import (
	"context"
	"errors"
	"testing"

	"brigade-ops/rollcall/internal/constants"
)

func TestListActivitiesSeedsBuiltins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.catalog.ListActivities(ctx, testStation)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(constants.BuiltinActivities) {
		t.Fatalf("seeded %d activities, want %d", len(list), len(constants.BuiltinActivities))
	}
	for _, a := range list {
		if a.IsCustom {
			t.Errorf("builtin %q flagged custom", a.Name)
		}
	}

	// second read must not duplicate the seed
	again, err := f.catalog.ListActivities(ctx, testStation)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(again) != len(constants.BuiltinActivities) {
		t.Errorf("second list = %d activities, want %d", len(again), len(constants.BuiltinActivities))
	}
}

func TestSeedIsPerStation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.catalog.ListActivities(ctx, "station-a"); err != nil {
		t.Fatalf("list a: %v", err)
	}
	listB, err := f.catalog.ListActivities(ctx, "station-b")
	if err != nil {
		t.Fatalf("list b: %v", err)
	}
	if len(listB) != len(constants.BuiltinActivities) {
		t.Errorf("station-b seeded %d, want its own builtin set", len(listB))
	}
}

func TestCreateActivityValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateActivity(context.Background(), testStation, "   ", nil)
	if !errors.Is(err, constants.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestActiveActivityPointerSingleton(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.catalog.CreateActivity(ctx, testStation, "Hose Drill", nil)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := f.catalog.CreateActivity(ctx, testStation, "Ladder Drill", nil)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if _, err := f.catalog.SetActiveActivity(ctx, testStation, first.ID, nil); err != nil {
		t.Fatalf("set first: %v", err)
	}
	if _, err := f.catalog.SetActiveActivity(ctx, testStation, second.ID, nil); err != nil {
		t.Fatalf("set second: %v", err)
	}

	current, err := f.catalog.GetActiveActivity(ctx, testStation)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if current == nil {
		t.Fatal("no pointer after set")
	}
	if current.Activity.ID != second.ID {
		t.Errorf("pointer references %s, want the replacement %s", current.Activity.ID, second.ID)
	}
}

func TestGetActiveActivityUnset(t *testing.T) {
	f := newFixture(t)

	current, err := f.catalog.GetActiveActivity(context.Background(), testStation)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if current != nil {
		t.Errorf("pointer = %+v, want nil when unset", current)
	}
}

func TestSetActiveActivityUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.SetActiveActivity(context.Background(), testStation, "no-such-activity", nil)
	if !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveDefaultActivityRequiresPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.ResolveDefaultActivity(ctx, testStation)
	if !errors.Is(err, constants.ErrPreconditionFailed) {
		t.Errorf("err = %v, want ErrPreconditionFailed", err)
	}

	activity, err := f.catalog.CreateActivity(ctx, testStation, "Pump Ops", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.catalog.SetActiveActivity(ctx, testStation, activity.ID, nil); err != nil {
		t.Fatalf("set: %v", err)
	}

	resolved, err := f.catalog.ResolveDefaultActivity(ctx, testStation)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != activity.ID {
		t.Errorf("resolved %s, want %s", resolved.ID, activity.ID)
	}
}
