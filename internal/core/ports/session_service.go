package ports

import (
	"context"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// SessionService owns authentication state. It is the only writer of
// sessions; pages read the result but never mutate it directly.
type SessionService interface {
	// Login exchanges credentials for a token pair and persists a new
	// session. It does not fetch the profile; that is a separate step.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// Restore looks up the session for a cookie value. An expired access
	// token is silently refreshed before the session counts as live.
	Restore(ctx context.Context, sessionID string) (*domain.Session, error)

	// CurrentUser fetches the profile for the session, attempting one
	// silent refresh on a 401 before giving up with ErrUnauthenticated.
	// The returned snapshot replaces any previous one wholesale.
	CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error)

	// Logout revokes the session upstream (best effort) and always clears
	// it locally. Calling it without a live session is a no-op.
	Logout(ctx context.Context, session *domain.Session) error

	// SetTheme persists the UI palette preference on the session.
	SetTheme(ctx context.Context, session *domain.Session, theme string) error

	// ChangePassword forwards a password change for the logged-in user.
	ChangePassword(ctx context.Context, session *domain.Session, current, next string) error
}
