package middleware

import (
	"net/http"

	reqcontext "brigade-ops/rollcall/internal/context"
)

// IsAdminMiddleware gates the admin surface (member creation, CSV import,
// manual rollover) behind an admin credential.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := reqcontext.GetUserClaims(r.Context())

			if claims == nil || !claims.IsAdmin() {
				http.Error(w, "Unauthorized. Need admin perms", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
