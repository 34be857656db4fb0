package api

import (
	"encoding/json"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"
)

// CheckInHandler handles POST /api/v1/checkins
//
// One endpoint for both directions: the service toggles, the response says
// which way it went.
func CheckInHandler(checkInSvc *services.CheckInService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CheckInReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.Resolve(req.StationID, r)

		result, err := checkInSvc.CheckIn(
			r.Context(),
			stationID,
			req.MemberID,
			req.Code,
			req.ActivityID,
			constants.CheckInMethod(req.Method),
			req.Location,
			req.IsOffsite,
		)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		metricsReg.CheckInsTotal.WithLabelValues(stationID, result.Action).Inc()

		common.RespondSuccess(w, initTime, "Check-in toggled", result)
	}
}

// ActiveCheckInsHandler handles GET /api/v1/checkins/active
func ActiveCheckInsHandler(checkInSvc *services.CheckInService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		active, err := checkInSvc.ListActive(r.Context(), stationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched active check-ins", active)
	}
}
