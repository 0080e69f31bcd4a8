package ports

import (
	"context"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// SessionRepository persists browser sessions keyed by the session ID held
// in the cookie. Implementations: Redis (production), memory (dev/tests).
type SessionRepository interface {
	// Get returns domain.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
