package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps sessions in process memory. Used in tests and when
// running without Redis; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, bool, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, false, err
	}
	return &sess, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
