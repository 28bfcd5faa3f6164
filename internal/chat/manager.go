// Package chat tracks per-session transcripts and gates chat turns.
// A session allows one in-flight advice request at a time, and closing
// a session cancels its in-flight request so a stale response can never
// apply an action afterwards.
package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/dhanitra/dhanitra/internal/domain"
)

var (
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrTurnInFlight is returned when a turn is submitted while the
	// previous one has not settled yet.
	ErrTurnInFlight = errors.New("a chat turn is already in flight")
)

type session struct {
	messages []domain.ChatMessage
	inFlight bool
	cancel   context.CancelFunc
}

// Manager is an in-memory registry of chat sessions. It is safe for
// concurrent use. Transcripts are session-scoped and lost on teardown.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*session)}
}

// Open creates a new session and returns its id.
func (m *Manager) Open() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := domain.NewID("chat")
	m.sessions[id] = &session{}
	return id
}

// Close removes the session, canceling any in-flight turn. Closing an
// unknown session is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	delete(m.sessions, id)
}

// Begin starts a chat turn: it records the user's message, marks the
// session in flight and returns a context that is canceled when the
// session closes. Exactly one turn may be in flight per session.
func (m *Manager) Begin(ctx context.Context, id, userText string) (context.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.inFlight {
		return nil, ErrTurnInFlight
	}

	turnCtx, cancel := context.WithCancel(ctx)
	s.inFlight = true
	s.cancel = cancel
	s.messages = append(s.messages, domain.ChatMessage{
		ID:   domain.NewID("msg"),
		Role: domain.RoleUser,
		Text: userText,
	})
	return turnCtx, nil
}

// Finish settles the in-flight turn, recording the assistant's reply.
// Finishing a session that was closed mid-turn is a no-op.
func (m *Manager) Finish(id, assistantText string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
	s.messages = append(s.messages, domain.ChatMessage{
		ID:   domain.NewID("msg"),
		Role: domain.RoleAssistant,
		Text: assistantText,
	})
}

// Transcript returns a copy of the session's messages in conversation
// order.
func (m *Manager) Transcript(id string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return append([]domain.ChatMessage(nil), s.messages...), nil
}
