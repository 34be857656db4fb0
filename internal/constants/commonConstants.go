package constants

import "time"

type CachePrefix string

const (
	CachePrefixMemberCode     CachePrefix = "member_code_"
	CachePrefixActiveActivity CachePrefix = "active_activity_"
)

// CheckInMethod is how a member registered their presence
type CheckInMethod string

const (
	MethodKiosk  CheckInMethod = "kiosk"
	MethodMobile CheckInMethod = "mobile"
	MethodQR     CheckInMethod = "qr"
)

func (m CheckInMethod) Valid() bool {
	switch m {
	case MethodKiosk, MethodMobile, MethodQR:
		return true
	}
	return false
}

// BuiltinActivities are seeded once per station on first catalog read
var BuiltinActivities = []string{
	"Training",
	"Meeting",
	"Maintenance",
	"Callout",
	"Station Duty",
}

const (
	// DefaultStationID is the fallback tenant when a request carries no scope
	DefaultStationID = "station-default"

	// DefaultEventMaxAgeHours is how long an event may stay open before the
	// rollover sweep ends it. Overridable via EVENT_MAX_AGE_HOURS.
	DefaultEventMaxAgeHours = 12

	// ReactivationWindow bounds how long after ending an event may be reopened
	ReactivationWindow = 24 * time.Hour

	// AuditStreamName is the Redis stream audit entries are queued on
	AuditStreamName = "rollcall:audit"
	AuditGroupName  = "rollcall:audit:writers"
)

const (
	ToggleActionCheckedIn = "checked-in"
	ToggleActionUndone    = "undone"
	ToggleActionAdded     = "added"
	ToggleActionRemoved   = "removed"
)

const (
	AuditActionAdded   = "participant_added"
	AuditActionRemoved = "participant_removed"
)
