package routes

import (
	"brigade-ops/rollcall/internal/api"
	"brigade-ops/rollcall/internal/metrics"
	"brigade-ops/rollcall/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys))

		// presence
		v1.Post("/checkin", api.CheckInHandler(deps.Services.CheckIn, metricsReg))
		v1.Get("/checkins/active", api.ActiveCheckInsHandler(deps.Services.CheckIn))

		// activity catalog
		v1.Get("/activities", api.ListActivitiesHandler(deps.Services.Catalog))
		v1.Post("/activities", api.CreateActivityHandler(deps.Services.Catalog))
		v1.Get("/activities/active", api.GetActiveActivityHandler(deps.Services.Catalog))
		v1.Put("/activities/active", api.SetActiveActivityHandler(deps.Services.Catalog))

		// events and rosters
		v1.Post("/events", api.CreateEventHandler(deps.Services.Event))
		v1.Get("/events", api.ListEventsHandler(deps.Services.Event))
		v1.Get("/events/{event_id}", api.GetEventHandler(deps.Services.Event))
		v1.Post("/events/{event_id}/end", api.EndEventHandler(deps.Services.Event))
		v1.Post("/events/{event_id}/reactivate", api.ReactivateEventHandler(deps.Services.Event))
		v1.Post("/events/{event_id}/participants", api.ToggleParticipantHandler(deps.Services.Event, metricsReg))
		v1.Delete("/events/{event_id}/participants/{participant_id}", api.RemoveParticipantHandler(deps.Services.Event))
		v1.Get("/events/{event_id}/audit", api.EventAuditHandler(deps.Services.Event))
		v1.Get("/events/{event_id}/export", api.ExportEventCSVHandler(deps.Services.Event))

		// members
		v1.Get("/members", api.ListMembersHandler(deps.Services.Member))
		v1.Get("/members/{member_id}", api.GetMemberHandler(deps.Services.Member))
		v1.Post("/members", api.CreateMemberHandler(deps.Services.Member))

		// member session tokens
		v1.Post("/auth/token", api.IssueTokenHandler(deps.Services.Member))

		// admin surface
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())

			admin.Post("/members/import", api.ImportMembersHandler(deps.Services.Member))
			admin.Post("/admin/rollover", api.RolloverHandler(deps.Services.Rollover))
		})
	})
}
