package api

import (
	"encoding/json"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"

	"github.com/go-chi/chi/v5"
)

// ListMembersHandler handles GET /api/v1/members
func ListMembersHandler(memberSvc *services.MemberService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		members, err := memberSvc.List(r.Context(), stationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched members", members)
	}
}

// GetMemberHandler handles GET /api/v1/members/{member_id}
func GetMemberHandler(memberSvc *services.MemberService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)
		memberID := chi.URLParam(r, "member_id")

		member, err := memberSvc.GetByID(r.Context(), stationID, memberID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Fetched member", member)
	}
}

// CreateMemberHandler handles POST /api/v1/members
func CreateMemberHandler(memberSvc *services.MemberService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateMemberReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.FromRequest(r)

		member, err := memberSvc.CreateMember(r.Context(), stationID, &req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Member created", member, http.StatusCreated)
	}
}

// ImportMembersHandler handles POST /api/v1/members/import
//
// Accepts a CSV body with a name,code,rank header.
func ImportMembersHandler(memberSvc *services.MemberService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stationID := scope.FromRequest(r)

		result, err := memberSvc.ImportCSV(r.Context(), stationID, r.Body)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Import completed", result)
	}
}
