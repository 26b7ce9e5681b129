package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trezcool/agenda/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("user must be 'student' or 'teacher'")

	sleepFunc = sleep // mockable
)

// Event notifies subscribers of a session change. Identity is nil once logged out.
type Event struct {
	Identity *Identity
}

// Manager exclusively owns one session: the current Identity or its absence.
// Hosts hold a reference to their Manager and Subscribe to its changes.
//
// Login calls are not sequenced: when they overlap, the last one to resolve wins.
type Manager struct {
	auth    Authenticator
	latency time.Duration
	logger  core.Logger

	mu       sync.RWMutex
	identity *Identity
	subs     map[int]chan Event
	nextSub  int
	closed   bool
}

func NewManager(auth Authenticator, latency time.Duration, logger core.Logger) *Manager {
	return &Manager{
		auth:    auth,
		latency: latency,
		logger:  logger,
		subs:    make(map[int]chan Event),
	}
}

// Login waits for the artificial latency, then validates the credential attempt.
// On success the session Identity is replaced; on failure it is left as it was.
// The returned error is one of ErrInvalidCredentials, ErrUnknownUser or a context/lookup error.
func (m *Manager) Login(ctx context.Context, name, pwd string) (Identity, error) {
	if err := sleepFunc(ctx, m.latency); err != nil {
		return Identity{}, err
	}

	ident, err := m.auth.Authenticate(ctx, name, pwd)
	if err != nil {
		m.logger.Info("login failed", err, map[string]interface{}{"name": core.CleanString(name, true /* lower */)})
		return Identity{}, err
	}

	m.set(&ident)
	m.logger.Info("logged in", ident)
	return ident, nil
}

// Logout clears the session. Calling it while logged out is a no-op.
func (m *Manager) Logout() {
	if prev := m.Current(); prev != nil {
		m.logger.Info("logged out", *prev)
	}
	m.set(nil)
}

// Current returns a copy of the session Identity, or nil if there is no session.
func (m *Manager) Current() *Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyIdentity(m.identity)
}

// Subscribe returns a channel receiving an Event on every session change and a func to stop the subscription.
// Only the latest change is kept for a subscriber that has not consumed the previous one.
// The channel is closed on unsubscribe or when the Manager is closed.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(sub)
			}
		})
	}
}

// Close logs out and closes all subscriptions.
func (m *Manager) Close() {
	m.set(nil)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Manager) set(ident *Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sameIdentity(m.identity, ident) {
		return
	}
	m.identity = copyIdentity(ident)
	m.notify()
}

// notify must be called with m.mu held.
func (m *Manager) notify() {
	for _, ch := range m.subs {
		// drop the unconsumed event; only the latest state matters
		select {
		case <-ch:
		default:
		}
		ch <- Event{Identity: copyIdentity(m.identity)}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
