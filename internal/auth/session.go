package auth

import (
	"sync"
	"time"

	"github.com/spec-kit/workspace-service/internal/domain"
)

// SessionStore maps a user id to the most recently issued token pair. It is
// a convenience cache, not the source of authorization truth: verification
// never consults it, and a signed refresh token is honored even after the
// store was cleared by a process restart.
//
// Mutation is guarded by a single exclusive lock, so access for one identity
// is linearizable: concurrent refreshes cannot tear a pair or leave a mix of
// two issuances.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.TokenPair
}

// NewSessionStore builds an empty store. Constructed once at service start
// and passed to the components that need it.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]domain.TokenPair)}
}

// Put records the pair for the user, overwriting any prior session in place.
// At most one session exists per user; no history is kept.
func (s *SessionStore) Put(userID int64, pair domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = pair
}

// Get returns the user's current pair, if any.
func (s *SessionStore) Get(userID int64) (domain.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pair, ok := s.sessions[userID]
	return pair, ok
}

// UpdateAccess replaces only the access token of an existing session. On an
// absent identity it is a successful no-op: the store does not enforce that
// a login preceded the refresh, the signed refresh token already did.
func (s *SessionStore) UpdateAccess(userID int64, accessToken string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, ok := s.sessions[userID]
	if !ok {
		return
	}
	pair.AccessToken = accessToken
	pair.AccessExpiresAt = expiresAt
	s.sessions[userID] = pair
}
