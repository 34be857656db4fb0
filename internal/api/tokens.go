package api

import (
	"encoding/json"
	"net/http"
	"time"

	"brigade-ops/rollcall/internal/auth"
	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/models/dtos"
	"brigade-ops/rollcall/internal/scope"
	"brigade-ops/rollcall/internal/services"
)

// IssueTokenHandler handles POST /api/v1/auth/token
//
// Exchanges a scanned member code for a session token the member's phone can
// present as a Bearer credential.
func IssueTokenHandler(memberSvc *services.MemberService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.IssueTokenReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		stationID := scope.Resolve(req.StationID, r)

		member, err := memberSvc.FindByCode(r.Context(), stationID, req.Code)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		token, expiresAt, err := auth.IssueMemberToken(member.ID, member.StationID)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}

		result := dtos.TokenResult{
			Token:     token,
			ExpiresAt: expiresAt,
			Member:    member,
		}

		common.RespondSuccess(w, initTime, "Token issued", result)
	}
}
