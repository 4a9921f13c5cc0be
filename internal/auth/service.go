// Package auth verifies the single configured admin identity and manages the
// sessions it mints.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"

	"github.com/realganganadul/gingin-backend/internal/session"
)

// SessionCookieName is the transport credential's cookie name.
const SessionCookieName = "session_id"

// ErrInvalidCredentials is returned for any credential mismatch. Callers must
// surface it generically, never revealing which field was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service checks credentials and mints sessions through the store.
type Service struct {
	username string
	password string
	sessions session.Store
}

// NewService binds the configured admin identity to a session store.
func NewService(username, password string, sessions session.Store) *Service {
	return &Service{username: username, password: password, sessions: sessions}
}

// Configured reports whether login can work at all.
func (s *Service) Configured() bool {
	return s != nil && s.username != "" && s.password != "" && s.sessions != nil
}

// Login verifies the credentials in constant time and mints a session on
// match. A store failure rejects the login; authentication never fails open.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password))
	if userOK&passOK != 1 {
		return "", ErrInvalidCredentials
	}

	id, err := s.sessions.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// Logout revokes the session. It succeeds even when none existed.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" || s.sessions == nil {
		return
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		// The cookie is cleared regardless; an orphaned entry expires on its
		// own TTL.
		log.Printf("[auth] failed to revoke session: %v", err)
	}
}

// IsLoggedIn reports boolean login state only; the role enum never leaves the
// server.
func (s *Service) IsLoggedIn(ctx context.Context, sessionID string) bool {
	if sessionID == "" || s.sessions == nil {
		return false
	}
	return s.sessions.Resolve(ctx, sessionID) == session.RoleAdmin
}
