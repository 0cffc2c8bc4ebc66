// Package redisconn opens validated Redis connections for the optional
// Redis-backed keystore. Open pings the server before returning and
// retries with a linearly growing interval, so callers get a client
// that is known to work or an error, never a lazily broken handle.
package redisconn
