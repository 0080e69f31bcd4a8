package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/api/metrics"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// refreshLeeway is how close to expiry an access token may get before a
// restore triggers a silent refresh instead of using it as-is.
const refreshLeeway = 30 * time.Second

// SessionService implements ports.SessionService: the single writer of
// authentication state. On a 401 from an authenticated upstream call it
// attempts exactly one silent refresh before clearing the session.
type SessionService struct {
	api      ports.SocietyAPI
	sessions ports.SessionRepository
	log      zerolog.Logger
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(api ports.SocietyAPI, sessions ports.SessionRepository, log zerolog.Logger) *SessionService {
	return &SessionService{api: api, sessions: sessions, log: log}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	session := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Theme:        domain.ThemeDefault,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	s.log.Info().Str("session_id", session.ID).Msg("session created")
	return session, nil
}

func (s *SessionService) Restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Stored tokens are trusted as "a session is present", but an access
	// token at or past its exp claim is refreshed before use rather than
	// presented to the backend only to bounce with a 401.
	if tokenExpired(session.AccessToken, time.Now()) {
		if err := s.refresh(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *SessionService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	var user *domain.User
	err := s.WithAuth(ctx, session, func(token string) error {
		u, err := s.api.Me(ctx, token)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}

	// Upstream revocation is best effort; local cleanup always happens.
	if session.AccessToken != "" {
		if err := s.api.Logout(ctx, session.AccessToken); err != nil {
			s.log.Warn().Err(err).Str("session_id", session.ID).Msg("upstream logout failed")
		}
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	return nil
}

func (s *SessionService) SetTheme(ctx context.Context, session *domain.Session, theme string) error {
	session.Theme = theme
	return s.sessions.Save(ctx, session)
}

// ChangePassword forwards a password change for the logged-in user.
func (s *SessionService) ChangePassword(ctx context.Context, session *domain.Session, current, next string) error {
	return s.WithAuth(ctx, session, func(token string) error {
		return s.api.ChangePassword(ctx, token, current, next)
	})
}

// WithAuth runs fn with the session's access token. On a 401 it refreshes
// the token once and retries; a second 401 or a failed refresh clears the
// session and surfaces ErrUnauthenticated.
func (s *SessionService) WithAuth(ctx context.Context, session *domain.Session, fn func(accessToken string) error) error {
	if !session.Authenticated() {
		return domain.ErrUnauthenticated
	}

	err := fn(session.AccessToken)
	if err == nil || !errors.Is(err, domain.ErrUnauthenticated) {
		return err
	}

	if err := s.refresh(ctx, session); err != nil {
		return err
	}

	err = fn(session.AccessToken)
	if errors.Is(err, domain.ErrUnauthenticated) {
		s.drop(ctx, session)
	}
	return err
}

// refresh exchanges the refresh token for a new access token, persisting it
// on success and dropping the session on failure.
func (s *SessionService) refresh(ctx context.Context, session *domain.Session) error {
	accessToken, err := s.api.Refresh(ctx, session.RefreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		s.log.Info().Str("session_id", session.ID).Msg("refresh failed, clearing session")
		s.drop(ctx, session)
		if errors.Is(err, domain.ErrUnauthenticated) {
			return err
		}
		return domain.ErrUnauthenticated
	}

	session.AccessToken = accessToken
	if err := s.sessions.Save(ctx, session); err != nil {
		return err
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return nil
}

func (s *SessionService) drop(ctx context.Context, session *domain.Session) {
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("session delete failed")
		return
	}
	metrics.SessionsActive.Dec()
}

// tokenExpired reads the exp claim without verifying the signature (the
// dashboard does not hold the backend's signing key). Tokens without a
// readable exp are used optimistically; the backend remains the judge.
func tokenExpired(accessToken string, now time.Time) bool {
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now.Add(refreshLeeway))
}
