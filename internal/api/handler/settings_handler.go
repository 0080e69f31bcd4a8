package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// Themes the settings page offers, in display order. The first one is the
// default for fresh sessions.
var themes = []string{"emerald", "ocean", "plum", "slate"}

// SettingsHandler serves the settings page: theme selection and password
// change for the signed-in user.
type SettingsHandler struct {
	sessions ports.SessionService
}

func NewSettingsHandler(sessions ports.SessionService) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

type settingsView struct {
	Themes []string
}

func (h *SettingsHandler) Show(c echo.Context) error {
	p := page(c, "Settings")
	p.Data = settingsView{Themes: themes}
	switch {
	case c.QueryParam("saved") != "":
		p.Flash = "Theme saved."
	case c.QueryParam("pwchanged") != "":
		p.Flash = "Password changed."
	}
	return c.Render(http.StatusOK, "settings.html", p)
}

func (h *SettingsHandler) UpdateTheme(c echo.Context) error {
	var form themeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		p := page(c, "Settings")
		p.Data = settingsView{Themes: themes}
		p.Error = err.Error()
		return c.Render(http.StatusOK, "settings.html", p)
	}

	if err := h.sessions.SetTheme(c.Request().Context(), middleware.Session(c), form.Theme); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	var form changePasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Settings")
	p.Data = settingsView{Themes: themes}

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "settings.html", p)
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), middleware.Session(c), form.CurrentPassword, form.NewPassword); err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "settings.html", p)
	}

	return c.Redirect(http.StatusSeeOther, "/settings?pwchanged=1")
}
