package dtos

import (
	"time"

	gormModels "brigade-ops/rollcall/internal/models/gorm"
	"brigade-ops/rollcall/internal/models/entities"
)

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"responseTime"`
	Data         any    `json:"data,omitempty"`
}

// CheckInResult reports which way the legacy toggle flipped
type CheckInResult struct {
	Action  string            `json:"action"` // "checked-in" | "undone"
	CheckIn *entities.CheckIn `json:"checkIn"`
}

// ParticipantResult reports which way the roster toggle flipped
type ParticipantResult struct {
	Action      string                       `json:"action"` // "added" | "removed"
	Participant *gormModels.EventParticipant `json:"participant"`
}

// ActiveActivityResult joins the pointer with the activity it references
type ActiveActivityResult struct {
	Pointer  *gormModels.ActiveActivity `json:"pointer"`
	Activity *gormModels.Activity       `json:"activity"`
}

// RolloverResult is the only place the expiry threshold is surfaced
type RolloverResult struct {
	Deactivated    []string  `json:"deactivated"`
	Count          int       `json:"count"`
	ThresholdHours int       `json:"thresholdHours"`
	SweptAt        time.Time `json:"sweptAt"`
}

type TokenResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Member    *gormModels.Member `json:"member"`
}

// ImportRowResult reports the outcome of one CSV import line
type ImportRowResult struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ImportResult struct {
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Rows    []ImportRowResult `json:"rows"`
}
