package api

import (
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"
)

// RolloverHandler handles POST /api/v1/admin/rollover
//
// Manual trigger for the expiry sweep, scoped to the caller's station. The
// scheduled job is the only path that sweeps every station.
func RolloverHandler(rolloverSvc *services.RolloverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		deactivated, err := rolloverSvc.DeactivateExpiredEvents(r.Context(), stationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		result := dtos.RolloverResult{
			Deactivated:    deactivated,
			Count:          len(deactivated),
			ThresholdHours: rolloverSvc.ThresholdHours(),
			SweptAt:        time.Now(),
		}

		common.RespondSuccess(w, initTime, "Rollover sweep completed", result)
	}
}
