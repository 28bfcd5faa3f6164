package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/dhanitra/dhanitra/internal/domain"
)

func TestBeginRequiresKnownSession(t *testing.T) {
	m := NewManager()
	if _, err := m.Begin(context.Background(), "chat_unknown", "hi"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Begin on unknown session = %v, want ErrSessionNotFound", err)
	}
}

func TestSingleFlightPerSession(t *testing.T) {
	m := NewManager()
	id := m.Open()

	if _, err := m.Begin(context.Background(), id, "first"); err != nil {
		t.Fatalf("first Begin failed: %v", err)
	}
	if _, err := m.Begin(context.Background(), id, "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("second Begin = %v, want ErrTurnInFlight", err)
	}

	m.Finish(id, "done")
	if _, err := m.Begin(context.Background(), id, "third"); err != nil {
		t.Errorf("Begin after Finish failed: %v", err)
	}
}

func TestCloseCancelsInFlightTurn(t *testing.T) {
	m := NewManager()
	id := m.Open()

	turnCtx, err := m.Begin(context.Background(), id, "long question")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	m.Close(id)

	select {
	case <-turnCtx.Done():
	default:
		t.Error("expected the turn context to be canceled when the session closes")
	}

	// Finishing a closed session must be a no-op.
	m.Finish(id, "stale answer")
	if _, err := m.Transcript(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Transcript after Close = %v, want ErrSessionNotFound", err)
	}
}

func TestTranscriptKeepsConversationOrder(t *testing.T) {
	m := NewManager()
	id := m.Open()

	if _, err := m.Begin(context.Background(), id, "question one"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	m.Finish(id, "answer one")

	if _, err := m.Begin(context.Background(), id, "question two"); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	m.Finish(id, "answer two")

	messages, err := m.Transcript(id)
	if err != nil {
		t.Fatalf("Transcript failed: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("transcript has %d messages, want 4", len(messages))
	}

	wantRoles := []domain.Role{domain.RoleUser, domain.RoleAssistant, domain.RoleUser, domain.RoleAssistant}
	wantTexts := []string{"question one", "answer one", "question two", "answer two"}
	for i, msg := range messages {
		if msg.Role != wantRoles[i] || msg.Text != wantTexts[i] {
			t.Errorf("message %d = {%s %q}, want {%s %q}", i, msg.Role, msg.Text, wantRoles[i], wantTexts[i])
		}
	}
}
