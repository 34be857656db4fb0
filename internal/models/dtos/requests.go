package dtos

// CheckInReq toggles the legacy single-session presence for a member.
// Either MemberID or Code identifies the member; StationID, when present,
// overrides the scope resolved from headers.
type CheckInReq struct {
	MemberID   string  `json:"memberId,omitempty"`
	Code       string  `json:"code,omitempty"`
	ActivityID string  `json:"activityId,omitempty"`
	Method     string  `json:"method"`
	Location   *string `json:"location,omitempty"`
	IsOffsite  bool    `json:"isOffsite"`
	StationID  string  `json:"stationId,omitempty"`
}

type CreateEventReq struct {
	ActivityID string `json:"activityId"`
}

type AddParticipantReq struct {
	MemberID  string  `json:"memberId"`
	Method    string  `json:"method"`
	Location  *string `json:"location,omitempty"`
	IsOffsite bool    `json:"isOffsite"`
}

type CreateActivityReq struct {
	Name string `json:"name"`
}

type SetActiveActivityReq struct {
	ActivityID string `json:"activityId"`
}

type CreateMemberReq struct {
	Name string  `json:"name"`
	Code string  `json:"code"`
	Rank *string `json:"rank,omitempty"`
}

type IssueTokenReq struct {
	Code      string `json:"code"`
	StationID string `json:"stationId,omitempty"`
}
