package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// SessionCookie is the fixed cookie name carrying the session ID.
const SessionCookie = "society_session"

const (
	ctxSession = "session"
	ctxUser    = "user"
)

// Restore loads the browser session referenced by the cookie into the echo
// context. Anonymous requests pass through untouched; a cookie pointing at a
// dead session is cleared so the browser stops presenting it.
func Restore(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			session, err := sessions.Restore(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrUnauthenticated) {
					ClearSessionCookie(c)
					return next(c)
				}
				return err
			}

			c.Set(ctxSession, session)
			return next(c)
		}
	}
}

// Session returns the restored session, or nil for anonymous requests.
func Session(c echo.Context) *domain.Session {
	session, _ := c.Get(ctxSession).(*domain.Session)
	return session
}

// CurrentUser returns the profile loaded by the Guard, or nil outside
// guarded routes.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ctxUser).(*domain.User)
	return user
}

// SetSessionCookie binds a freshly created session to the browser.
func SetSessionCookie(c echo.Context, sessionID string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
