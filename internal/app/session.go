package app

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"quizdeck-client/internal/domain"
)

// Storage is the durable key-value store backing session persistence
// (file-backed by default, Redis or in-memory elsewhere).
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Storage keys owned by the session store. No other component writes them.
const (
	userKey  = "user"
	tokenKey = "token"
)

// SessionState is a snapshot of the authentication state handed to the view
// layer. IsAuthenticated is derived from token presence in exactly one place
// (snapshotLocked), so the two can never diverge.
type SessionState struct {
	User            *domain.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// SessionStore holds the authenticated identity and token for the current
// process and writes them through to durable storage.
type SessionStore struct {
	storage Storage

	mu      sync.RWMutex
	closed  bool
	user    *domain.User
	token   string
	loading bool
	err     string
	subs    broadcaster[SessionState]
}

// NewSessionStore restores any persisted session from storage. A missing or
// unreadable entry yields a signed-out store, never an error.
func NewSessionStore(ctx context.Context, storage Storage) *SessionStore {
	s := &SessionStore{
		storage: storage,
		subs:    newBroadcaster[SessionState](),
	}
	token, err := storage.Get(ctx, tokenKey)
	if err != nil || token == "" {
		return s
	}
	s.token = token
	if raw, err := storage.Get(ctx, userKey); err == nil {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = &user
		} else {
			logrus.WithError(err).Warn("discarding unreadable persisted user")
		}
	}
	return s
}

// BeginAuth marks a login/signup attempt as in flight. Any error left over
// from a previous attempt is cleared so it cannot outlive the attempt that
// produced it.
func (s *SessionStore) BeginAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loading = true
	s.err = ""
	s.subs.publish(s.snapshotLocked())
}

// CompleteAuth installs the authenticated identity and persists it. A failed
// storage write is logged; the in-memory session stays authoritative for the
// rest of the process.
func (s *SessionStore) CompleteAuth(ctx context.Context, user domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	u := user
	s.user = &u
	s.token = token
	s.loading = false
	s.err = ""

	if raw, err := json.Marshal(user); err != nil {
		logrus.WithError(err).Warn("failed to serialize user for persistence")
	} else if err := s.storage.Set(ctx, userKey, string(raw)); err != nil {
		logrus.WithError(err).Warn("failed to persist user")
	}
	if err := s.storage.Set(ctx, tokenKey, token); err != nil {
		logrus.WithError(err).Warn("failed to persist token")
	}
	s.subs.publish(s.snapshotLocked())
}

// FailAuth records a failed attempt. An existing session is kept: a rejected
// re-login must not log the user out.
func (s *SessionStore) FailAuth(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.err = message
	s.loading = false
	s.subs.publish(s.snapshotLocked())
}

// EndSession clears the session and its persisted entries.
func (s *SessionStore) EndSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.user = nil
	s.token = ""
	s.loading = false
	s.err = ""

	if err := s.storage.Delete(ctx, userKey); err != nil {
		logrus.WithError(err).Warn("failed to clear persisted user")
	}
	if err := s.storage.Delete(ctx, tokenKey); err != nil {
		logrus.WithError(err).Warn("failed to clear persisted token")
	}
	s.subs.publish(s.snapshotLocked())
}

// Snapshot returns the current session state.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Token returns the current auth token, or "" when signed out. Handy as a
// token provider for the gateway client.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe returns a channel of state snapshots, primed with the current
// one. The caller must invoke the returned cancel function to avoid leaks.
func (s *SessionStore) Subscribe() (<-chan SessionState, func()) {
	ch := make(chan SessionState, 8)

	s.mu.Lock()
	s.subs.add(ch)
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if s.subs.remove(ch) {
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close tears the store down. Transitions arriving afterwards, such as the
// result of a request that was in flight when the view went away, are
// ignored.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.subs.closeAll()
}

func (s *SessionStore) snapshotLocked() SessionState {
	state := SessionState{
		Token:           s.token,
		IsAuthenticated: s.token != "",
		Loading:         s.loading,
		Err:             s.err,
	}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}
