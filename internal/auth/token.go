package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Member session tokens bind a (member, station) pair for mobile check-in.
// HS256 with a deployment-wide secret.

const MemberTokenTTL = 12 * time.Hour

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "rollcall-dev-secret"
	}
	return []byte(secret)
}

// IssueMemberToken creates a signed session token for a member
func IssueMemberToken(memberID, stationID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(MemberTokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        memberID,
		"station_id": stationID,
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	})

	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign member token: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseMemberToken validates a session token and returns its claims
func ParseMemberToken(tokenString string) (*MemberTokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid member token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid member token claims")
	}

	memberID, _ := claims["sub"].(string)
	stationID, _ := claims["station_id"].(string)
	if memberID == "" || stationID == "" {
		return nil, fmt.Errorf("member token missing subject or station")
	}

	return &MemberTokenClaims{
		MemberIDValue:  memberID,
		StationIDValue: stationID,
	}, nil
}
