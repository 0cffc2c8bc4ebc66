package notify

import "errors"

var (
	// ErrInvalidEndpoint is returned by New for an endpoint that is
	// not an absolute ws or wss URL.
	ErrInvalidEndpoint = errors.New("notify: invalid websocket endpoint")
)
