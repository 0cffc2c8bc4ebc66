package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/locallink/locallink-go/pkg/session"
)

// Alert is an order-status notification surfaced to the user.
type Alert struct {
	OrderID int64
	Status  string
	Message string
}

// AlertFunc consumes alerts. It is called from the channel's run loop,
// so it should return quickly.
type AlertFunc func(Alert)

// State of the notification channel.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// SessionSource is the slice of the session manager the channel needs:
// the current token and a change subscription. session.Manager
// satisfies it.
type SessionSource interface {
	Token() (string, bool)
	Subscribe() (<-chan session.Change, func())
}

// wire frame received from the backend. Only order_update is
// actionable; unknown types are ignored for forward compatibility.
type frame struct {
	Type    string `json:"type"`
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

const typeOrderUpdate = "order_update"

// A connection that survives this long before dropping is considered
// healthy and resets the reconnect backoff.
const stableConnWindow = 30 * time.Second

// Channel maintains a live connection to the backend's notification
// endpoint while a session is authenticated, keyed by the current
// bearer token. Inbound order_update frames are forwarded to the alert
// sink; the connection is closed and redialed whenever the session
// changes, so it never continues on a stale credential.
type Channel struct {
	endpoint string
	sessions SessionSource
	alert    AlertFunc
	log      *slog.Logger
	dialer   *websocket.Dialer

	baseDelay time.Duration
	maxDelay  time.Duration

	state atomic.Int32
}

// Option configures the Channel.
type Option func(*Channel)

// WithLogger sets the logger for connection diagnostics.
// Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Channel) {
		c.log = log
	}
}

// WithBackoff tunes the reconnect delay after a transport drop. The
// delay doubles per attempt from base up to max, with jitter.
// Default: 500ms base, 30s max.
func WithBackoff(base, max time.Duration) Option {
	return func(c *Channel) {
		c.baseDelay = base
		c.maxDelay = max
	}
}

// WithDialer replaces the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Channel) {
		c.dialer = d
	}
}

// New creates a notification channel for the given ws:// or wss://
// endpoint. The alert sink may be nil, in which case events are
// decoded and dropped.
//
// Example:
//
//	ch, err := notify.New("wss://api.locallink.example/ws", sessions, func(a notify.Alert) {
//	    fmt.Println(a.Message)
//	})
//	go ch.Run(ctx)
func New(endpoint string, sessions SessionSource, alert AlertFunc, opts ...Option) (*Channel, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return nil, ErrInvalidEndpoint
	}
	if alert == nil {
		alert = func(Alert) {}
	}

	c := &Channel{
		endpoint:  endpoint,
		sessions:  sessions,
		alert:     alert,
		log:       slog.Default(),
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		baseDelay: 500 * time.Millisecond,
		maxDelay:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the current connection state.
func (c *Channel) State() State {
	return State(c.state.Load())
}

// Run drives the channel until ctx is cancelled: it connects while the
// session is authenticated, redials on credential change or transport
// drop, and idles while logged out. Always returns nil after a
// graceful teardown.
func (c *Channel) Run(ctx context.Context) error {
	changes, unsubscribe := c.sessions.Subscribe()
	defer unsubscribe()
	defer c.state.Store(int32(StateDisconnected))

	token, authed := c.sessions.Token()
	attempt := 0
	for {
		if ctx.Err() != nil {
			return nil
		}

		if !authed {
			c.state.Store(int32(StateDisconnected))
			select {
			case <-ctx.Done():
				return nil
			case ch := <-changes:
				token, authed = ch.Token, ch.Authenticated
				attempt = 0
			}
			continue
		}

		c.state.Store(int32(StateConnecting))
		conn, err := c.dial(ctx, token)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			attempt++
			delay := c.backoff(attempt)
			c.log.Warn("notification connect failed",
				slog.Any("error", err),
				slog.Duration("retry_in", delay),
			)
			c.state.Store(int32(StateDisconnected))
			select {
			case <-ctx.Done():
				return nil
			case ch := <-changes:
				token, authed = ch.Token, ch.Authenticated
				attempt = 0
			case <-time.After(delay):
			}
			continue
		}

		c.state.Store(int32(StateConnected))
		c.log.Info("notification channel connected")

		connectedAt := time.Now()
		next, hasNext, dropped := c.serveConn(ctx, conn, changes, token)
		switch {
		case hasNext:
			token, authed = next.Token, next.Authenticated
			attempt = 0
		case dropped:
			// A server that accepts the handshake and dies right away
			// must back off like a failed dial, otherwise a
			// crash-looping backend gets hammered in a busy loop. Only
			// a connection that lived a while resets the counter.
			if time.Since(connectedAt) >= stableConnWindow {
				attempt = 0
			}
			attempt++
			delay := c.backoff(attempt)
			c.log.Warn("notification connection lost, reconnecting",
				slog.Duration("retry_in", delay),
			)
			c.state.Store(int32(StateDisconnected))
			select {
			case <-ctx.Done():
				return nil
			case ch := <-changes:
				token, authed = ch.Token, ch.Authenticated
				attempt = 0
			case <-time.After(delay):
			}
		default:
			return nil
		}
	}
}

func (c *Channel) dial(ctx context.Context, token string) (*websocket.Conn, error) {
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	return conn, err
}

// serveConn pumps frames from one connection. It returns the session
// change that ended it (hasNext), or dropped=true after a transport
// failure, or all-false when ctx was cancelled.
func (c *Channel) serveConn(ctx context.Context, conn *websocket.Conn, changes <-chan session.Change, token string) (next session.Change, hasNext, dropped bool) {
	done := make(chan struct{})
	defer close(done)

	frames := make(chan []byte, 8)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- data:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.closeGracefully(conn)
			return session.Change{}, false, false
		case ch := <-changes:
			if ch.Authenticated && ch.Token == token {
				continue
			}
			c.closeGracefully(conn)
			return ch, true, false
		case data := <-frames:
			c.handleFrame(data)
		case <-readErr:
			conn.Close()
			return session.Change{}, false, true
		}
	}
}

// handleFrame parses one inbound frame. Malformed frames are logged and
// dropped without closing the connection; non-actionable types are
// silently ignored.
func (c *Channel) handleFrame(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.Warn("dropping malformed notification frame", slog.Any("error", err))
		return
	}
	if f.Type != typeOrderUpdate {
		return
	}

	c.alert(Alert{
		OrderID: f.OrderID,
		Status:  f.Status,
		Message: fmt.Sprintf("Order #%d status is now: %s", f.OrderID, f.Status),
	})
}

func (c *Channel) closeGracefully(conn *websocket.Conn) {
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = conn.Close()
}

func (c *Channel) backoff(attempt int) time.Duration {
	delay := c.baseDelay << (attempt - 1)
	if delay > c.maxDelay || delay <= 0 {
		delay = c.maxDelay
	}
	// Half fixed, half jitter, so reconnecting clients spread out.
	half := delay / 2
	return half + rand.N(half+1)
}
