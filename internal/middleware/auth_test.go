package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"brigade-ops/rollcall/internal/auth"
	"brigade-ops/rollcall/internal/scope"
)

func TestAuthMiddlewareRejectsAPIKeyWithoutKeyStore(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a configured key store")
	})
	handler := AuthMiddleware(nil)(next)

	req := httptest.NewRequest("GET", "/api/v1/events", nil)
	req.Header.Set("X-API-Key", "kiosk-key")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	})
	handler := AuthMiddleware(nil)(next)

	req := httptest.NewRequest("GET", "/api/v1/events", nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestAuthMiddlewareMemberTokenPinsStation(t *testing.T) {
	token, _, err := auth.IssueMemberToken("m1", "station-alpha")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var resolved string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = scope.FromRequest(r)
	})
	handler := AuthMiddleware(nil)(next)

	// the header tries to steer the request to another station
	req := httptest.NewRequest("GET", "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(scope.HeaderStationID, "station-beta")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if resolved != "station-alpha" {
		t.Errorf("scope resolved to %q, want the token's station-alpha", resolved)
	}
}
