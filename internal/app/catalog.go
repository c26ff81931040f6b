package app

import (
	"sync"

	"quizdeck-client/internal/domain"
)

// CatalogState is a snapshot of the quiz catalog handed to the view layer.
type CatalogState struct {
	Quizzes     []domain.Quiz
	CurrentQuiz *domain.Quiz
	Loading     bool
	Err         string
}

// CatalogStore holds the list of quizzes and the quiz currently being viewed
// or taken.
type CatalogStore struct {
	mu      sync.RWMutex
	closed  bool
	quizzes []domain.Quiz
	current *domain.Quiz
	loading bool
	err     string
	subs    broadcaster[CatalogState]
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{subs: newBroadcaster[CatalogState]()}
}

// SetQuizzes replaces the catalog and clears loading/error.
func (s *CatalogStore) SetQuizzes(quizzes []domain.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.quizzes = quizzes
	s.loading = false
	s.err = ""
	s.subs.publish(s.snapshotLocked())
}

// SetCurrentQuiz replaces the active quiz. Pass nil when leaving the
// quiz-taking view: the teardown is explicit so stale quiz data cannot show
// up on re-entry.
func (s *CatalogStore) SetCurrentQuiz(quiz *domain.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if quiz != nil {
		q := *quiz
		s.current = &q
	} else {
		s.current = nil
	}
	s.loading = false
	s.err = ""
	s.subs.publish(s.snapshotLocked())
}

// BeginLoad marks a catalog fetch as in flight.
func (s *CatalogStore) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loading = true
	s.err = ""
	s.subs.publish(s.snapshotLocked())
}

// FailLoad records a failed fetch and clears the loading flag, so loading can
// never stick after an error.
func (s *CatalogStore) FailLoad(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.err = message
	s.loading = false
	s.subs.publish(s.snapshotLocked())
}

// Snapshot returns the current catalog state.
func (s *CatalogStore) Snapshot() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of state snapshots, primed with the current
// one. The caller must invoke the returned cancel function to avoid leaks.
func (s *CatalogStore) Subscribe() (<-chan CatalogState, func()) {
	ch := make(chan CatalogState, 8)

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

// Close tears the store down; later transitions are ignored.
func (s *CatalogStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.subs.closeAll()
}

func (s *CatalogStore) snapshotLocked() CatalogState {
	state := CatalogState{
		Quizzes: make([]domain.Quiz, len(s.quizzes)),
		Loading: s.loading,
		Err:     s.err,
	}
	copy(state.Quizzes, s.quizzes)
	if s.current != nil {
		q := *s.current
		state.CurrentQuiz = &q
	}
	return state
}
