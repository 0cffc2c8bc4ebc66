// Package notify listens for real-time order updates over a websocket
// connection keyed by the current session token.
//
// The [Channel] moves between three states: disconnected while logged
// out, connecting while a dial is in flight, connected while pumping
// frames. It subscribes to session changes, so a login opens a
// connection, a logout closes it, and a re-login closes the stale
// connection and opens a fresh one with the new credential.
//
// Inbound frames are JSON; a frame that fails to parse is logged and
// dropped without closing the connection, and only order_update frames
// reach the alert sink. Transport drops are retried with jittered
// exponential backoff while the session stays authenticated.
package notify
