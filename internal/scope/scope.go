package scope

import (
	"net/http"
	"os"
	"strings"

	"brigade-ops/rollcall/internal/constants"
	reqcontext "brigade-ops/rollcall/internal/context"
)

// Every operation is partitioned by exactly one station id, resolved from the
// request with a fixed precedence:
//
//	credential pin > per-operation body override > X-Station-Id header > stationId query param > default
//
// A station-bound credential (member token, pinned API key) wins over
// everything the caller can type, so a token issued for one station cannot
// operate under another. Scope is never inferred from a member or activity
// record. Downstream code treats the id as an opaque partition key and
// answers cross-station references with not-found.

const (
	HeaderStationID = "X-Station-Id"
	QueryStationID  = "stationId"
)

// DefaultStationID returns the deployment's fallback tenant
func DefaultStationID() string {
	if v := strings.TrimSpace(os.Getenv("DEFAULT_STATION_ID")); v != "" {
		return v
	}
	return constants.DefaultStationID
}

// FromRequest resolves the station scope from the credential pin, header,
// query param or default
func FromRequest(r *http.Request) string {
	if v := reqcontext.GetStationID(r.Context()); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get(HeaderStationID)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get(QueryStationID)); v != "" {
		return v
	}
	return DefaultStationID()
}

// Resolve applies a per-operation override (e.g. a body field) on top of the
// request-level resolution. A credential pin still wins over the override.
func Resolve(override string, r *http.Request) string {
	if v := reqcontext.GetStationID(r.Context()); v != "" {
		return v
	}
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return FromRequest(r)
}
