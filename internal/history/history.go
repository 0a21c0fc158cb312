package history

import (
	"context"
	"sync"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

// Store keeps per-session conversation turns in append order. History is
// read before a model invocation and written only after it succeeds.
type Store interface {
	Turns(ctx context.Context, sessionID string) ([]models.ConversationTurn, error)
	Append(ctx context.Context, sessionID string, turn models.ConversationTurn) error
	Reset(ctx context.Context, sessionID string) error
}

// MemoryStore is the default Store, scoped to the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]models.ConversationTurn
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{turns: make(map[string][]models.ConversationTurn)}
}

func (s *MemoryStore) Turns(_ context.Context, sessionID string) ([]models.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.turns[sessionID]
	out := make([]models.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, turn models.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, sessionID)
	return nil
}
