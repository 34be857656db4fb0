package repositories

import (
	"context"
	"time"

	"brigade-ops/rollcall/internal/models/entities"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

// The engine talks to storage only through these interfaces, so the backing
// technology (Postgres, sqlite, in-memory) can be swapped without touching
// business rules. Lookups return (nil, nil) when the record is absent.
//
// Atomicity contract: Toggle* calls and SetActivePointer are read-modify-write
// sequences and every implementation must serialize them per key. The GORM
// adapters use row locks plus unique-index upserts; the memory store holds one
// mutex across the whole sequence.

type MemberRepository interface {
	GetByID(ctx context.Context, stationID, id string) (*gormModels.Member, error)
	GetByCode(ctx context.Context, stationID, code string) (*gormModels.Member, error)
	List(ctx context.Context, stationID string) ([]gormModels.Member, error)
	Insert(ctx context.Context, member *gormModels.Member) error
}

type ActivityRepository interface {
	// List returns non-deleted activities, builtins before custom, then by name
	List(ctx context.Context, stationID string) ([]gormModels.Activity, error)
	GetByID(ctx context.Context, stationID, id string) (*gormModels.Activity, error)
	Insert(ctx context.Context, activity *gormModels.Activity) error
	// SeedBuiltins inserts the builtin set, skipping names that already exist.
	// Safe to call concurrently for the same station.
	SeedBuiltins(ctx context.Context, stationID string, names []string) error
	GetActivePointer(ctx context.Context, stationID string) (*gormModels.ActiveActivity, error)
	// SetActivePointer atomically replaces the station's singleton pointer
	SetActivePointer(ctx context.Context, pointer *gormModels.ActiveActivity) error
}

type EventRepository interface {
	Insert(ctx context.Context, event *gormModels.Event) error
	GetByID(ctx context.Context, id string) (*gormModels.Event, error)
	GetWithParticipants(ctx context.Context, id string) (*gormModels.Event, error)
	List(ctx context.Context, stationID string) ([]gormModels.Event, error)
	// ListActive returns events flagged active; stationID == "" means all stations
	ListActive(ctx context.Context, stationID string) ([]gormModels.Event, error)
	// End flips Active→Ended exactly once. Ending an already-ended event is a
	// no-op that leaves end_time untouched.
	End(ctx context.Context, id string, at time.Time) (*gormModels.Event, error)
	// Reactivate clears end_time and re-flags the event active. Window policy
	// is the caller's job.
	Reactivate(ctx context.Context, id string) (*gormModels.Event, error)
	// ToggleParticipant inserts the candidate if no row exists for its
	// (event, member) pair, otherwise removes the existing row. Returns the
	// applied action ("added" | "removed") and the affected row.
	ToggleParticipant(ctx context.Context, candidate *gormModels.EventParticipant) (string, *gormModels.EventParticipant, error)
	GetParticipant(ctx context.Context, eventID, participantID string) (*gormModels.EventParticipant, error)
	DeleteParticipant(ctx context.Context, eventID, participantID string) (bool, error)
	ListParticipants(ctx context.Context, eventID string) ([]gormModels.EventParticipant, error)
}

type CheckInRepository interface {
	// Toggle deactivates the member's active check-in if one exists
	// ("undone"), otherwise inserts the candidate as active ("checked-in").
	Toggle(ctx context.Context, candidate *entities.CheckIn) (string, *entities.CheckIn, error)
	ListActive(ctx context.Context, stationID string) ([]entities.CheckIn, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry *gormModels.EventAuditLog) error
	ListByEvent(ctx context.Context, eventID string) ([]gormModels.EventAuditLog, error)
}
