package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	"brigade-ops/rollcall/internal/models/dtos"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"

	"github.com/go-chi/chi/v5"
)

func newTestEventService(t *testing.T) (*repositories.MemoryStore, *services.EventService, *services.CatalogService) {
	t.Helper()

	store := repositories.NewMemoryStore()
	cache := common.NewCacheService(60, 120)
	catalog := services.NewCatalogService(store.Activities(), cache)
	rollover := services.NewRolloverService(store.Events(), constants.DefaultEventMaxAgeHours)
	eventSvc := services.NewEventService(store.Events(), store.Members(), store.Activities(), store.Audit(), rollover, nil)
	return store, eventSvc, catalog
}

func TestCreateEventHandler(t *testing.T) {
	store, eventSvc, _ := newTestEventService(t)

	activity := &gormModels.Activity{StationID: "station-1", Name: "Training"}
	if err := store.Activities().Insert(context.Background(), activity); err != nil {
		t.Fatalf("seed activity: %v", err)
	}

	handler := CreateEventHandler(eventSvc)

	body, _ := json.Marshal(dtos.CreateEventReq{ActivityID: activity.ID})
	req := httptest.NewRequest("POST", "/api/v1/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(scope.HeaderStationID, "station-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "OK" {
		t.Errorf("Expected status OK, got %s", response.Status)
	}
}

func TestCreateEventHandlerUnknownActivity(t *testing.T) {
	_, eventSvc, _ := newTestEventService(t)

	handler := CreateEventHandler(eventSvc)

	body, _ := json.Marshal(dtos.CreateEventReq{ActivityID: "no-such-activity"})
	req := httptest.NewRequest("POST", "/api/v1/events", bytes.NewReader(body))
	req.Header.Set(scope.HeaderStationID, "station-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestGetEventHandlerCrossStation(t *testing.T) {
	store, eventSvc, _ := newTestEventService(t)
	ctx := context.Background()

	activity := &gormModels.Activity{StationID: "station-1", Name: "Training"}
	if err := store.Activities().Insert(ctx, activity); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	event, err := eventSvc.CreateEvent(ctx, "station-1", activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/v1/events/{event_id}", GetEventHandler(eventSvc))

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/events/%s", event.ID), nil)
	req.Header.Set(scope.HeaderStationID, "station-2")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for cross-station fetch, got %d", rr.Code)
	}
}

func TestEndedEventToggleMapsToConflict(t *testing.T) {
	store, eventSvc, _ := newTestEventService(t)
	ctx := context.Background()

	activity := &gormModels.Activity{StationID: "station-1", Name: "Training"}
	if err := store.Activities().Insert(ctx, activity); err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	member := &gormModels.Member{StationID: "station-1", Name: "Alex Mercer", Code: "FF-001", IsActive: true}
	if err := store.Members().Insert(ctx, member); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	event, err := eventSvc.CreateEvent(ctx, "station-1", activity.ID, nil)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := eventSvc.EndEvent(ctx, event.ID); err != nil {
		t.Fatalf("end event: %v", err)
	}

	_, err = eventSvc.AddOrRemoveParticipant(ctx, "station-1", event.ID, member.ID, constants.MethodKiosk, nil, false)
	if status := statusFromError(err); status != http.StatusConflict {
		t.Errorf("ended-event toggle maps to %d, want 409", status)
	}
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad input", constants.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: missing", constants.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: ended", constants.ErrPreconditionFailed), http.StatusConflict},
		{fmt.Errorf("%w: too late", constants.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFromError(tc.err); got != tc.want {
			t.Errorf("statusFromError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
