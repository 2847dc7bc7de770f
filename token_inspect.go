package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsExpiredToken reports whether a persisted credential token is a JWT whose
// expiry has passed. The controller treats tokens as opaque everywhere else;
// this is a best-effort staleness probe used during rehydration, so anything
// that does not parse as a JWT (or carries no exp claim) is assumed live and
// left for the server to reject.
func IsExpiredToken(raw string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}
