package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"
)

func TestRolloverHandlerIsStationScoped(t *testing.T) {
	store := repositories.NewMemoryStore()
	rollover := services.NewRolloverService(store.Events(), constants.DefaultEventMaxAgeHours)
	ctx := context.Background()

	stale := func(station string) *gormModels.Event {
		return &gormModels.Event{
			StationID:    station,
			ActivityID:   "a1",
			ActivityName: "Training",
			StartTime:    time.Now().Add(-20 * time.Hour),
			IsActive:     true,
		}
	}

	mine := stale("station-1")
	other := stale("station-2")
	if err := store.Events().Insert(ctx, mine); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	if err := store.Events().Insert(ctx, other); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	handler := RolloverHandler(rollover)

	req := httptest.NewRequest("POST", "/api/v1/admin/rollover", nil)
	req.Header.Set(scope.HeaderStationID, "station-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	swept, err := store.Events().GetByID(ctx, mine.ID)
	if err != nil {
		t.Fatalf("fetch swept event: %v", err)
	}
	if swept.IsActive {
		t.Error("caller's stale event survived the sweep")
	}

	untouched, err := store.Events().GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("fetch other event: %v", err)
	}
	if !untouched.IsActive {
		t.Error("sweep crossed into another station")
	}
}
