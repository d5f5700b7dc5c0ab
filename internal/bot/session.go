package bot

import (
	"sync"

	"crypto-tracker/internal/models"
)

// SessionState enumerates the steps of the multi-turn flows. Every path
// through a flow ends back at Idle; there are no other terminal states.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingChain
	StateAwaitingWalletAddress
	StateAwaitingRemoveChain
	StateAwaitingRemoveIndex
)

// Session tracks one user's progress through a multi-step command.
// PendingChain is set once a chain has been chosen; Candidates is the
// numbered wallet snapshot shown during removal, used to resolve the
// index the user replies with.
type Session struct {
	State        SessionState
	PendingChain models.ChainKey
	Candidates   []string
}

// SessionManager holds at most one active session per user. Beginning a
// new session replaces any pending one, so a superseding multi-step
// command cancels the prior flow instead of racing it.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]Session),
	}
}

// Active returns the user's pending session, if any.
func (m *SessionManager) Active(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok || session.State == StateIdle {
		return Session{}, false
	}
	return session, true
}

// Put installs or replaces the user's session.
func (m *SessionManager) Put(userID int64, session Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = session
}

// End resets the user's session to Idle.
func (m *SessionManager) End(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}
