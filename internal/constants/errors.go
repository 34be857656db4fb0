package constants

import "errors"

// Business error kinds. Services wrap these with fmt.Errorf("...: %w", ...)
// and handlers translate them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrForbidden          = errors.New("forbidden")
)

const (
	MsgMemberNotFound      = "Member not found"
	MsgActivityNotFound    = "Activity not found"
	MsgEventNotFound       = "Event not found"
	MsgParticipantNotFound = "Participant not found"
	MsgNoActiveActivity    = "No active activity set for this station"
	MsgEventEnded          = "Cannot add participants to an ended event"
	MsgReactivationExpired = "Event ended too long ago to be reactivated"
	MsgEmptyActivityName   = "Activity name must not be empty"
)
