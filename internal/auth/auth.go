// Package auth gates the dashboard behind a single configured
// credential pair. This is a session flag, not a security boundary:
// there is no lockout, rate limiting or password hashing, and the
// credentials come from configuration rather than a user store.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the email/password pair does
// not match the configured credentials.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service issues and checks opaque session tokens.
type Service struct {
	email    string
	password string

	mu     sync.RWMutex
	tokens map[string]bool
}

// NewService creates a service accepting exactly the given credentials.
func NewService(email, password string) *Service {
	return &Service{
		email:    email,
		password: password,
		tokens:   make(map[string]bool),
	}
}

// Login checks the credentials and returns a fresh session token.
// Comparison is constant-time.
func (s *Service) Login(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
	return token, nil
}

// Logout revokes a session token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// Authenticated reports whether the token belongs to a live session.
func (s *Service) Authenticated(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[token]
}
