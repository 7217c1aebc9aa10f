package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiration time from an access token's exp claim.
// The signature is not verified; the token was issued to us and expiry is only
// used for display and for the stored ExpiresAt hint. A missing or unparsable
// claim returns ok=false. Expiry never gates the 401-driven refresh path.
func TokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
