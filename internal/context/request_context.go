package context

import (
	"context"

	"brigade-ops/rollcall/internal/auth"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"
var stationIDKey contextKey = "station_id"

func SetUserClaims(ctx context.Context, claims auth.UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaims(ctx context.Context) auth.UserClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(auth.UserClaims); ok {
		return claims
	}
	return nil
}

func SetStationID(ctx context.Context, stationID string) context.Context {
	return context.WithValue(ctx, stationIDKey, stationID)
}

func GetStationID(ctx context.Context) string {
	if v, ok := ctx.Value(stationIDKey).(string); ok {
		return v
	}
	return ""
}
