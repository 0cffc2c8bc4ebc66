package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// decodeIdentity extracts the subject and expiry claims from a bearer
// token without verifying its signature. The backend issues HS256
// tokens carrying a numeric "userID" claim and a standard "exp" claim.
func decodeIdentity(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, err
	}

	var id Identity
	switch v := claims["userID"].(type) {
	case float64:
		id.SubjectID = strconv.FormatInt(int64(v), 10)
	case string:
		id.SubjectID = v
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id, nil
}

// Expired reports whether the identity's expiry has elapsed. The client
// never forces a logout on expiry by itself; the gateway's 401 handling
// does that when the server rejects the token.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
