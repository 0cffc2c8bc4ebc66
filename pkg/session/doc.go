// Package session owns the client's authentication state: the bearer
// token issued by the backend and the identity claims decoded from it.
//
// The [Manager] is constructed once at startup from persisted storage
// and mutated by exactly two transitions, [Manager.Login] and
// [Manager.Logout]. Every transition persists (or purges) the token
// through the keystore and fans a [Change] out to subscribers, which is
// how the notification channel tracks the credential without reading
// ambient state.
//
// A persisted token that no longer decodes is self-healing: startup
// resets the session to unauthenticated and purges the record. Login,
// by contrast, refuses a malformed token with [ErrMalformedToken] and
// leaves the session untouched.
package session
