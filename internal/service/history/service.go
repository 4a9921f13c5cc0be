// Package history is the transcript persistence collaborator. The gateway
// never consults it; clients save and reload their own transcripts so a chat
// can survive a page reload.
package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/realganganadul/gingin-backend/internal/model/chat"
)

var ErrSessionRequired = errors.New("session id is required")

// Service stores one transcript per client-generated session id.
type Service struct {
	mu          sync.RWMutex
	transcripts map[string][]chat.Message
}

// NewService bootstraps the in-memory transcript store.
func NewService() *Service {
	return &Service{transcripts: make(map[string][]chat.Message)}
}

// Save replaces the transcript for the given session with the provided
// messages, stamping ids and timestamps where missing.
func (s *Service) Save(_ context.Context, sessionID string, messages []chat.Message) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	stored := make([]chat.Message, len(messages))
	copy(stored, messages)
	for i := range stored {
		stored[i].SessionID = sessionID
		if stored[i].ID == "" {
			stored[i].ID = uuid.NewString()
		}
		if stored[i].CreatedAt.IsZero() {
			stored[i].CreatedAt = time.Now().UTC()
		}
	}

	s.mu.Lock()
	s.transcripts[sessionID] = stored
	s.mu.Unlock()
	return nil
}

// Load returns the stored transcript. An unknown session yields an empty
// transcript so the client can start a fresh chat.
func (s *Service) Load(_ context.Context, sessionID string) ([]chat.Message, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.transcripts[sessionID]
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}
