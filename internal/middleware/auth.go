package middleware

import (
	"net/http"
	"strings"

	"brigade-ops/rollcall/internal/auth"
	reqcontext "brigade-ops/rollcall/internal/context"
	"brigade-ops/rollcall/internal/db/repositories"
)

// AuthMiddleware resolves the request's credential into UserClaims. Kiosks
// present an X-API-Key; members present a Bearer session token. A key or token
// pinned to a station also pins the request's scope.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.UserClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenClaims, err := auth.ParseMemberToken(strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = tokenClaims

			case apiKey != "":
				// the memory backend runs without a key store
				if keysRepo == nil {
					http.Error(w, "Unauthorized. API key auth is not configured", http.StatusUnauthorized)
					return
				}

				keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}

				if !keyRes.Status {
					http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
					return
				}

				keyClaims := &auth.APIKeyClaims{
					KeyID:     keyRes.ID,
					AdminFlag: keyRes.IsAdmin,
				}
				if keyRes.StationID != nil {
					keyClaims.StationIDValue = *keyRes.StationID
				}
				claims = keyClaims

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := reqcontext.SetUserClaims(r.Context(), claims)
			if claims.StationID() != "" {
				ctx = reqcontext.SetStationID(ctx, claims.StationID())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
