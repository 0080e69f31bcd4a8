package store

import (
	"context"
	"sync"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// MemorySessions keeps sessions in a process-local map. Used when no Redis
// address is configured (local development) and throughout the tests.
// Sessions do not survive a restart, which matches a cleared browser.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ ports.SessionRepository = (*MemorySessions)(nil)

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]domain.Session)}
}

func (m *MemorySessions) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := session
	return &copied, nil
}

func (m *MemorySessions) Save(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
