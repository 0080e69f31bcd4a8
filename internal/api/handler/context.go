package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/api/view"
	"github.com/societyhub/dashboard/internal/core/domain"
)

// page assembles the template envelope from whatever the middleware chain
// loaded: session (for the theme) and profile (for the chrome). Both are nil
// on anonymous pages.
func page(c echo.Context, title string) view.Page {
	p := view.Page{
		Title: title,
		Theme: domain.ThemeDefault,
		User:  middleware.CurrentUser(c),
	}
	if session := middleware.Session(c); session != nil && session.Theme != "" {
		p.Theme = session.Theme
	}
	return p
}
