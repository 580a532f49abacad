package compare

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = time.Hour

// Session is a comparison state held on behalf of one client.
type Session struct {
	ID        string    `json:"id"`
	State     *State    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore keeps comparison sessions in memory. States handed out are
// copies; edits go through Update.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) snapshot(sess *Session) Session {
	out := *sess
	out.State = sess.State.Clone()
	return out
}

// Create stores a copy of state under a new random id.
func (s *SessionStore) Create(state *State) Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     state.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return s.snapshot(sess)
}

// Get returns the session unless it is missing or expired.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || !s.now().Before(sess.ExpiresAt) {
		return Session{}, false
	}
	return s.snapshot(sess), true
}

// Update applies fn to a copy of the session state and stores the copy only
// when fn succeeds, so a rejected edit keeps the previous state. The warning
// returned by fn is passed through.
func (s *SessionStore) Update(id string, fn func(*State) (string, error)) (Session, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	now := s.now()
	if !ok || !now.Before(sess.ExpiresAt) {
		return Session{}, "", fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}

	next := sess.State.Clone()
	warning, err := fn(next)
	if err != nil {
		return Session{}, "", err
	}

	sess.State = next
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return s.snapshot(sess), warning, nil
}

// Delete removes a session and reports whether it existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Purge drops expired sessions and returns how many were removed.
func (s *SessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included until the
// next Purge.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
