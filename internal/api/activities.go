package api

import (
	"encoding/json"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"
)

// ListActivitiesHandler handles GET /api/v1/activities
func ListActivitiesHandler(catalogSvc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		activities, err := catalogSvc.ListActivities(r.Context(), stationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched activities", activities)
	}
}

// CreateActivityHandler handles POST /api/v1/activities
func CreateActivityHandler(catalogSvc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.FromRequest(r)

		activity, err := catalogSvc.CreateActivity(r.Context(), stationID, req.Name, requestActor(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Activity created", activity, http.StatusCreated)
	}
}

// GetActiveActivityHandler handles GET /api/v1/activities/active
func GetActiveActivityHandler(catalogSvc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		result, err := catalogSvc.GetActiveActivity(r.Context(), stationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		if result == nil {
			common.RespondSuccess(w, initTime, "No active activity set", nil)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched active activity", result)
	}
}

// SetActiveActivityHandler handles PUT /api/v1/activities/active
func SetActiveActivityHandler(catalogSvc *services.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SetActiveActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.FromRequest(r)

		result, err := catalogSvc.SetActiveActivity(r.Context(), stationID, req.ActivityID, requestActor(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Active activity set", result)
	}
}
