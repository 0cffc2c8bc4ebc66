package session

import "errors"

var (
	// ErrMalformedToken is returned by Login when the token cannot be
	// decoded. The session is left unchanged.
	ErrMalformedToken = errors.New("session: malformed token")
)
