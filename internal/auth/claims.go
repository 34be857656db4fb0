package auth

// UserClaims is what the auth middleware resolves a request's credentials
// into, whichever credential kind was presented.
type UserClaims interface {
	Source() string
	// StationID is the station the credential is pinned to; empty means the
	// credential does not constrain scope
	StationID() string
	MemberID() string
	IsAdmin() bool
}

// APIKeyClaims are resolved from an X-API-Key header (kiosks, integrations)
type APIKeyClaims struct {
	KeyID          string
	StationIDValue string
	AdminFlag      bool
}

func (c *APIKeyClaims) Source() string    { return "API_KEY" }
func (c *APIKeyClaims) StationID() string { return c.StationIDValue }
func (c *APIKeyClaims) MemberID() string  { return "" }
func (c *APIKeyClaims) IsAdmin() bool     { return c.AdminFlag }

// MemberTokenClaims are resolved from a Bearer JWT issued to a member's
// phone after a code scan
type MemberTokenClaims struct {
	MemberIDValue  string
	StationIDValue string
}

func (c *MemberTokenClaims) Source() string    { return "MEMBER_TOKEN" }
func (c *MemberTokenClaims) StationID() string { return c.StationIDValue }
func (c *MemberTokenClaims) MemberID() string  { return c.MemberIDValue }
func (c *MemberTokenClaims) IsAdmin() bool     { return false }
