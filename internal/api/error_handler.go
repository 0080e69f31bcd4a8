package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/api/view"
	"github.com/societyhub/dashboard/internal/core/domain"
)

// errorView is the payload for the error page.
type errorView struct {
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends a dead session back to the login page instead of a bare 401.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the page.
//   - Renders the error template for everything that stays on-screen.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Credentials that could not be refreshed mean the session is dead.
		// Clear the cookie and restart at the login page.
		if errors.Is(err, domain.ErrUnauthenticated) {
			middleware.ClearSessionCookie(c)
			_ = c.Redirect(http.StatusSeeOther, middleware.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)

		p := view.Page{
			Title: http.StatusText(code),
			Theme: domain.ThemeDefault,
			User:  middleware.CurrentUser(c),
			Data:  errorView{Status: code, Message: msg},
		}
		if session := middleware.Session(c); session != nil && session.Theme != "" {
			p.Theme = session.Theme
		}

		if renderErr := c.Render(code, "error.html", p); renderErr != nil {
			log.Error().Err(renderErr).Msg("error page render failed")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "you do not have access to this page"
	}

	// Unexpected error: log the real cause, show a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "something went wrong on our side"
}
