package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/models/entities"
	gormModels "brigade-ops/rollcall/internal/models/gorm"

	"github.com/google/uuid"
)

// MemoryStore backs every repository interface with plain maps behind one
// mutex. Used when STORE_BACKEND=memory and as a fixture in tests. Holding the
// lock across each call trivially satisfies the toggle and pointer atomicity
// contract. Per-entity views are exposed through the accessor methods below.
type MemoryStore struct {
	mu sync.Mutex

	members      map[string]gormModels.Member
	activities   map[string]gormModels.Activity
	pointers     map[string]gormModels.ActiveActivity // keyed by station id
	events       map[string]gormModels.Event
	participants map[string]gormModels.EventParticipant
	checkIns     map[string]entities.CheckIn
	audit        []gormModels.EventAuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members:      make(map[string]gormModels.Member),
		activities:   make(map[string]gormModels.Activity),
		pointers:     make(map[string]gormModels.ActiveActivity),
		events:       make(map[string]gormModels.Event),
		participants: make(map[string]gormModels.EventParticipant),
		checkIns:     make(map[string]entities.CheckIn),
	}
}

func (s *MemoryStore) Members() MemberRepository     { return (*memoryMembers)(s) }
func (s *MemoryStore) Activities() ActivityRepository { return (*memoryActivities)(s) }
func (s *MemoryStore) Events() EventRepository       { return (*memoryEvents)(s) }
func (s *MemoryStore) CheckIns() CheckInRepository   { return (*memoryCheckIns)(s) }
func (s *MemoryStore) Audit() AuditRepository        { return (*memoryAudit)(s) }

// --- members ---

type memoryMembers MemoryStore

var _ MemberRepository = (*memoryMembers)(nil)

func (s *memoryMembers) GetByID(ctx context.Context, stationID, id string) (*gormModels.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.members[id]; ok && m.StationID == stationID {
		copied := m
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryMembers) GetByCode(ctx context.Context, stationID, code string) (*gormModels.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.Code == code && m.StationID == stationID {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memoryMembers) List(ctx context.Context, stationID string) ([]gormModels.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gormModels.Member
	for _, m := range s.members {
		if m.StationID == stationID && m.IsActive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryMembers) Insert(ctx context.Context, member *gormModels.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	s.members[member.ID] = *member
	return nil
}

// --- activities & pointer ---

type memoryActivities MemoryStore

var _ ActivityRepository = (*memoryActivities)(nil)

func (s *memoryActivities) List(ctx context.Context, stationID string) ([]gormModels.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gormModels.Activity
	for _, a := range s.activities {
		if a.StationID == stationID && !a.IsDeleted {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsCustom != out[j].IsCustom {
			return !out[i].IsCustom
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *memoryActivities) GetByID(ctx context.Context, stationID, id string) (*gormModels.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.activities[id]; ok && a.StationID == stationID {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryActivities) Insert(ctx context.Context, activity *gormModels.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	activity.CreatedAt = time.Now()
	s.activities[activity.ID] = *activity
	return nil
}

func (s *memoryActivities) SeedBuiltins(ctx context.Context, stationID string, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool)
	for _, a := range s.activities {
		if a.StationID == stationID {
			existing[a.Name] = true
		}
	}
	for _, name := range names {
		if existing[name] {
			continue
		}
		id := uuid.NewString()
		s.activities[id] = gormModels.Activity{
			ID:        id,
			StationID: stationID,
			Name:      name,
			IsCustom:  false,
			CreatedAt: time.Now(),
		}
	}
	return nil
}

func (s *memoryActivities) GetActivePointer(ctx context.Context, stationID string) (*gormModels.ActiveActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pointers[stationID]; ok {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryActivities) SetActivePointer(ctx context.Context, pointer *gormModels.ActiveActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// map key is the station id, so the replace is structurally a singleton
	s.pointers[pointer.StationID] = *pointer
	return nil
}

// --- events & participants ---

type memoryEvents MemoryStore

var _ EventRepository = (*memoryEvents)(nil)

func (s *memoryEvents) Insert(ctx context.Context, event *gormModels.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	s.events[event.ID] = *event
	return nil
}

func (s *memoryEvents) GetByID(ctx context.Context, id string) (*gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.events[id]; ok {
		copied := e
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryEvents) GetWithParticipants(ctx context.Context, id string) (*gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	copied := e
	copied.Participants = s.rosterLocked(id)
	return &copied, nil
}

func (s *memoryEvents) List(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gormModels.Event
	for _, e := range s.events {
		if e.StationID == stationID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (s *memoryEvents) ListActive(ctx context.Context, stationID string) ([]gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gormModels.Event
	for _, e := range s.events {
		if !e.IsActive {
			continue
		}
		if stationID != "" && e.StationID != stationID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (s *memoryEvents) End(ctx context.Context, id string, at time.Time) (*gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	if e.IsActive {
		e.IsActive = false
		e.EndTime = &at
		e.UpdatedAt = time.Now()
		s.events[id] = e
	}
	copied := e
	return &copied, nil
}

func (s *memoryEvents) Reactivate(ctx context.Context, id string) (*gormModels.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	e.IsActive = true
	e.EndTime = nil
	e.UpdatedAt = time.Now()
	s.events[id] = e
	copied := e
	return &copied, nil
}

func (s *memoryEvents) ToggleParticipant(ctx context.Context, candidate *gormModels.EventParticipant) (string, *gormModels.EventParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.participants {
		if p.EventID == candidate.EventID && p.MemberID == candidate.MemberID {
			delete(s.participants, id)
			copied := p
			return constants.ToggleActionRemoved, &copied, nil
		}
	}

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	candidate.CreatedAt = time.Now()
	s.participants[candidate.ID] = *candidate
	return constants.ToggleActionAdded, candidate, nil
}

func (s *memoryEvents) GetParticipant(ctx context.Context, eventID, participantID string) (*gormModels.EventParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.participants[participantID]; ok && p.EventID == eventID {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (s *memoryEvents) DeleteParticipant(ctx context.Context, eventID, participantID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.participants[participantID]; ok && p.EventID == eventID {
		delete(s.participants, participantID)
		return true, nil
	}
	return false, nil
}

func (s *memoryEvents) ListParticipants(ctx context.Context, eventID string) ([]gormModels.EventParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosterLocked(eventID), nil
}

// callers must hold s.mu
func (s *memoryEvents) rosterLocked(eventID string) []gormModels.EventParticipant {
	var out []gormModels.EventParticipant
	for _, p := range s.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.Before(out[j].CheckInTime) })
	return out
}

// --- legacy check-ins ---

type memoryCheckIns MemoryStore

var _ CheckInRepository = (*memoryCheckIns)(nil)

func (s *memoryCheckIns) Toggle(ctx context.Context, candidate *entities.CheckIn) (string, *entities.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.checkIns {
		if c.MemberID == candidate.MemberID && c.StationID == candidate.StationID && c.IsActive {
			c.IsActive = false
			c.UpdatedAt = time.Now()
			s.checkIns[id] = c
			copied := c
			return constants.ToggleActionUndone, &copied, nil
		}
	}

	candidate.ID = uuid.NewString()
	candidate.IsActive = true
	candidate.CreatedAt = time.Now()
	candidate.UpdatedAt = candidate.CreatedAt
	s.checkIns[candidate.ID] = *candidate
	return constants.ToggleActionCheckedIn, candidate, nil
}

func (s *memoryCheckIns) ListActive(ctx context.Context, stationID string) ([]entities.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.CheckIn
	for _, c := range s.checkIns {
		if c.StationID == stationID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.After(out[j].CheckInTime) })
	return out, nil
}

// --- audit ---

type memoryAudit MemoryStore

var _ AuditRepository = (*memoryAudit)(nil)

func (s *memoryAudit) Append(ctx context.Context, entry *gormModels.EventAuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.audit = append(s.audit, *entry)
	return nil
}

func (s *memoryAudit) ListByEvent(ctx context.Context, eventID string) ([]gormModels.EventAuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []gormModels.EventAuditLog
	for _, e := range s.audit {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}
