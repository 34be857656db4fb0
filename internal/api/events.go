package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	reqcontext "brigade-ops/rollcall/internal/context"
	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"

	"github.com/go-chi/chi/v5"
)

// requestActor returns the member id behind the request, if the credential
// carries one
func requestActor(r *http.Request) *string {
	claims := reqcontext.GetUserClaims(r.Context())
	if claims == nil || claims.MemberID() == "" {
		return nil
	}
	id := claims.MemberID()
	return &id
}

// CreateEventHandler handles POST /api/v1/events
func CreateEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateEventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.FromRequest(r)

		event, err := eventSvc.CreateEvent(r.Context(), stationID, req.ActivityID, requestActor(r))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event created", event, http.StatusCreated)
	}
}

// ListEventsHandler handles GET /api/v1/events
func ListEventsHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		var (
			events interface{}
			err    error
		)
		if r.URL.Query().Get("active") == "true" {
			events, err = eventSvc.GetActiveEvents(r.Context(), stationID)
		} else {
			events, err = eventSvc.GetEvents(r.Context(), stationID)
		}
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched events", events)
	}
}

// GetEventHandler handles GET /api/v1/events/{event_id}
func GetEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)
		eventID := chi.URLParam(r, "event_id")

		event, err := eventSvc.GetEventWithParticipants(r.Context(), stationID, eventID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched event", event)
	}
}

// EndEventHandler handles POST /api/v1/events/{event_id}/end
func EndEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		eventID := chi.URLParam(r, "event_id")

		event, err := eventSvc.EndEvent(r.Context(), eventID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event ended", event)
	}
}

// ReactivateEventHandler handles POST /api/v1/events/{event_id}/reactivate
func ReactivateEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		eventID := chi.URLParam(r, "event_id")

		event, err := eventSvc.ReactivateEvent(r.Context(), eventID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Event reactivated", event)
	}
}

// ToggleParticipantHandler handles POST /api/v1/events/{event_id}/participants
func ToggleParticipantHandler(eventSvc *services.EventService, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AddParticipantReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.FromRequest(r)
		eventID := chi.URLParam(r, "event_id")

		result, err := eventSvc.AddOrRemoveParticipant(
			r.Context(),
			stationID,
			eventID,
			req.MemberID,
			constants.CheckInMethod(req.Method),
			req.Location,
			req.IsOffsite,
		)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		metricsReg.ParticipantTogglesTotal.WithLabelValues(stationID, result.Action).Inc()

		common.RespondSuccess(w, initTime, "Participant toggled", result)
	}
}

// RemoveParticipantHandler handles DELETE /api/v1/events/{event_id}/participants/{participant_id}
func RemoveParticipantHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		eventID := chi.URLParam(r, "event_id")
		participantID := chi.URLParam(r, "participant_id")

		if err := eventSvc.RemoveParticipant(r.Context(), eventID, participantID); err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Participant removed", nil)
	}
}

// EventAuditHandler handles GET /api/v1/events/{event_id}/audit
func EventAuditHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)
		eventID := chi.URLParam(r, "event_id")

		entries, err := eventSvc.ListAudit(r.Context(), stationID, eventID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched audit log", entries)
	}
}

// ExportEventCSVHandler handles GET /api/v1/events/{event_id}/export
//
// Streams the roster as CSV for attendance reporting.
func ExportEventCSVHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)
		eventID := chi.URLParam(r, "event_id")

		event, err := eventSvc.GetEventWithParticipants(r.Context(), stationID, eventID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=event-%s.csv", event.ID))

		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"member_name", "member_rank", "check_in_time", "method", "offsite"})

		for _, p := range event.Participants {
			rank := ""
			if p.MemberRank != nil {
				rank = *p.MemberRank
			}
			offsite := "no"
			if p.IsOffsite {
				offsite = "yes"
			}
			_ = writer.Write([]string{
				p.MemberName,
				rank,
				p.CheckInTime.Format(time.RFC3339),
				p.Method,
				offsite,
			})
		}

		writer.Flush()
	}
}
