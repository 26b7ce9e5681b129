package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/agenda/core"
)

// ErrSessionNotFound is returned when a given session ID does not exist in the Store
var ErrSessionNotFound = errors.New("session not found")

// Handle is a Manager owned by one host (an API client, a terminal...).
type Handle struct {
	*Manager
	ID        string
	CreatedAt time.Time
}

// Store keeps the session handles of all hosts in memory, keyed by ID.
type Store struct {
	auth    Authenticator
	latency time.Duration
	logger  core.Logger

	mu      sync.RWMutex
	handles map[string]*Handle
}

func NewStore(auth Authenticator, latency time.Duration, logger core.Logger) *Store {
	return &Store{
		auth:    auth,
		latency: latency,
		logger:  logger,
		handles: make(map[string]*Handle),
	}
}

// New creates a logged out session handle.
func (s *Store) New() *Handle {
	h := &Handle{
		Manager:   NewManager(s.auth, s.latency, s.logger),
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.handles[h.ID] = h
	s.mu.Unlock()

	s.logger.Debug("session created", map[string]interface{}{"session_id": h.ID})
	return h
}

func (s *Store) Get(id string) (*Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if h, ok := s.handles[id]; ok {
		return h, nil
	}
	return nil, ErrSessionNotFound
}

// Drop closes the given session handle and removes it from the Store.
func (s *Store) Drop(id string) error {
	s.mu.Lock()
	h, ok := s.handles[id]
	delete(s.handles, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	h.Close()
	s.logger.Debug("session dropped", map[string]interface{}{"session_id": id})
	return nil
}

// Len returns the number of live handles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}
