package services

import (
	"sync"
	"time"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
)

// SessionStore holds active checkout sessions in memory, one per user.
// Sessions are workflow state only and are never persisted; a restart simply
// sends the user back to address entry with the cart untouched.
//
// Get and Put exchange copies, never the stored object. Concurrent handlers
// read sessions (session GET, intent lookup) while a guarded mutation is in
// flight; detached copies keep those reads race-free without the readers
// taking the in-flight guard.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.CheckoutSession
	inFlight map[string]bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.CheckoutSession),
		inFlight: make(map[string]bool),
	}
}

func (s *SessionStore) Get(userID string) (*models.CheckoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, false
	}
	return cloneSession(session), true
}

func (s *SessionStore) Put(session *models.CheckoutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.UpdatedAt = time.Now()
	s.sessions[session.UserID] = cloneSession(session)
}

// cloneSession deep-copies the pointer and slice fields so a stored session
// and a handed-out session never share memory.
func cloneSession(session *models.CheckoutSession) *models.CheckoutSession {
	c := *session
	if session.Address != nil {
		addr := *session.Address
		c.Address = &addr
	}
	if session.SelectedOption != nil {
		opt := *session.SelectedOption
		c.SelectedOption = &opt
	}
	if session.Options != nil {
		c.Options = make([]models.ShippingOption, len(session.Options))
		copy(c.Options, session.Options)
	}
	if session.Snapshot != nil {
		c.Snapshot = make([]models.CartItem, len(session.Snapshot))
		copy(c.Snapshot, session.Snapshot)
	}
	return &c
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// BeginOp marks the session busy; it returns false when another request for
// the same session is still outstanding. This is the re-submission guard: a
// double-clicked Pay button must not issue two Create or Verify calls.
func (s *SessionStore) BeginOp(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *SessionStore) EndOp(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
