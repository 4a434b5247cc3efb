package session

import (
	"context"
	"encoding/json"
	"sync"

	"esports-waitlist/internal/common/errors"
)

// Store persists drafts between requests. Get returns DRAFT_NOT_FOUND for
// unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps encoded drafts in process. Used for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	data, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewDraftNotFoundError(id)
	}
	return decode(data, "get")
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.NewDraftStoreFailedError("save", err)
	}
	m.mu.Lock()
	m.drafts[s.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.drafts, id)
	m.mu.Unlock()
	return nil
}

func decode(data []byte, op string) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewDraftStoreFailedError(op, err)
	}
	return &s, nil
}
