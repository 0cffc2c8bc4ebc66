package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/locallink/locallink-go/pkg/keystore"
)

// Identity holds the claims the client reads from the bearer token.
// The client never verifies the signature; claims are used for display
// and routing only, verification is the server's job.
type Identity struct {
	SubjectID string
	ExpiresAt time.Time
}

// Change describes a session transition delivered to subscribers.
type Change struct {
	Token         string
	Authenticated bool
}

// Manager owns the process-wide session state: the bearer token and the
// identity decoded from it. All mutation goes through Login and Logout,
// which persist the token through the keystore as a side effect.
//
// isAuthenticated == (token present) and identity is present iff the
// token was parseable; both hold at every point observable by callers.
type Manager struct {
	store keystore.Store

	// mu serializes whole transitions, persist step included, not just
	// the field swap.
	mu       sync.RWMutex
	token    string
	identity *Identity

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

// New constructs the session from persisted storage. A missing token
// yields an unauthenticated session. A persisted token that fails to
// decode is treated as absent and the corrupt record is purged, so a
// bad record can never wedge the client.
func New(ctx context.Context, store keystore.Store) (*Manager, error) {
	m := &Manager{
		store: store,
		subs:  make(map[int]chan Change),
	}

	raw, err := store.Get(ctx, keystore.KeyAuthToken)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return m, nil
		}
		return nil, err
	}

	token := string(raw)
	identity, err := decodeIdentity(token)
	if err != nil {
		if err := store.Delete(ctx, keystore.KeyAuthToken); err != nil {
			return nil, err
		}
		return m, nil
	}

	m.token = token
	m.identity = &identity
	return m, nil
}

// Login decodes the token, persists it and replaces the session state.
// Persist and swap happen under one lock, so concurrent transitions
// cannot leave storage holding a different token than memory. Returns
// ErrMalformedToken without touching any state when the token cannot be
// decoded; callers must not treat that as a logout.
func (m *Manager) Login(ctx context.Context, token string) error {
	identity, err := decodeIdentity(token)
	if err != nil {
		return errors.Join(ErrMalformedToken, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, keystore.KeyAuthToken, []byte(token)); err != nil {
		return err
	}
	m.token = token
	m.identity = &identity

	m.notify(Change{Token: token, Authenticated: true})
	return nil
}

// Logout purges the persisted token and clears the session. It is
// idempotent: logging out while unauthenticated is a no-op. The purge
// runs before the in-memory clear, so a storage failure leaves the
// session untouched and delivers no change.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, keystore.KeyAuthToken); err != nil {
		return err
	}

	wasAuthenticated := m.token != ""
	m.token = ""
	m.identity = nil

	if wasAuthenticated {
		m.notify(Change{})
	}
	return nil
}

// Token returns the current bearer token and whether one is present.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// IsAuthenticated reports whether a bearer token is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Identity returns the decoded identity claims and whether they are present.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return Identity{}, false
	}
	return *m.identity, true
}

// Subscribe registers for session change events. The returned channel
// receives a Change after every login and logout; call the returned
// function to unsubscribe. Delivery keeps only the most recent change
// for a slow subscriber, which is all a consumer keyed on the current
// token ever needs.
func (m *Manager) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 1)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subMu.Unlock()

	unsubscribe := func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
	return ch, unsubscribe
}

func (m *Manager) notify(c Change) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for _, ch := range m.subs {
		// Replace a pending undelivered change instead of blocking.
		select {
		case ch <- c:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
}
