package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
	"github.com/societyhub/dashboard/internal/infrastructure/upstream"
)

// AuthHandler serves the anonymous pages (login, signup, password reset) and
// the pending-approval page. Anonymous upstream calls go straight through
// the API client; everything session-bound goes through the session service.
type AuthHandler struct {
	sessions   ports.SessionService
	api        ports.SocietyAPI
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionService, api ports.SocietyAPI, sessionTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, api: api, sessionTTL: sessionTTL, log: log}
}

// failureMessage turns any error from a form submission into the message
// rendered next to the form. Upstream failures surface their detail string;
// anything else gets a generic line so internals never leak into a page.
func failureMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "Invalid email or password"
	}
	return "Something went wrong. Please try again."
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if middleware.Session(c) != nil {
		return c.Redirect(http.StatusFound, middleware.DashboardPath)
	}

	p := page(c, "Log in")
	p.Data = loginForm{}
	if c.QueryParam("created") != "" {
		p.Flash = "Account created. You can log in now."
	}
	return c.Render(http.StatusOK, "login.html", p)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Log in")
	p.Data = form

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "login.html", p)
	}

	session, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "login.html", p)
	}

	middleware.SetSessionCookie(c, session.ID, h.sessionTTL)
	return c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// signupView is the payload for the signup template: the (possibly re-shown)
// form plus the public society list for the join dropdown.
type signupView struct {
	Form      signupForm
	Societies []domain.Society
}

func (h *AuthHandler) ShowSignup(c echo.Context) error {
	p := page(c, "Sign up")
	p.Data = signupView{Societies: h.publicSocieties(c)}
	return c.Render(http.StatusOK, "signup.html", p)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var form signupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Sign up")

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		p.Data = signupView{Form: form, Societies: h.publicSocieties(c)}
		return c.Render(http.StatusOK, "signup.html", p)
	}

	_, err := h.api.Signup(c.Request().Context(), ports.SignupInput{
		Email:     form.Email,
		FullName:  form.FullName,
		Phone:     form.Phone,
		Password:  form.Password,
		SocietyID: form.SocietyID,
	})
	if err != nil {
		p.Error = failureMessage(err)
		p.Data = signupView{Form: form, Societies: h.publicSocieties(c)}
		return c.Render(http.StatusOK, "signup.html", p)
	}

	return c.Redirect(http.StatusSeeOther, middleware.LoginPath+"?created=1")
}

// publicSocieties is best effort: an unreachable backend degrades the
// dropdown to "none yet" instead of failing the page.
func (h *AuthHandler) publicSocieties(c echo.Context) []domain.Society {
	societies, err := h.api.PublicSocieties(c.Request().Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("public society list unavailable")
		return nil
	}
	return societies
}

// Logout clears the session. Safe to call when already logged out.
func (h *AuthHandler) Logout(c echo.Context) error {
	if session := middleware.Session(c); session != nil {
		if err := h.sessions.Logout(c.Request().Context(), session); err != nil {
			h.log.Warn().Err(err).Msg("logout cleanup failed")
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) ShowForgotPassword(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password.html", page(c, "Forgot password"))
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var form forgotPasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Forgot password")
	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "forgot_password.html", p)
	}

	if err := h.api.ForgotPassword(c.Request().Context(), form.Email); err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "forgot_password.html", p)
	}

	p.Flash = "If an account exists for that address, a reset link is on its way."
	return c.Render(http.StatusOK, "forgot_password.html", p)
}

func (h *AuthHandler) ShowResetPassword(c echo.Context) error {
	p := page(c, "Reset password")
	p.Data = resetPasswordForm{Token: c.QueryParam("token")}
	return c.Render(http.StatusOK, "reset_password.html", p)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var form resetPasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Reset password")
	p.Data = form

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "reset_password.html", p)
	}

	if err := h.api.ResetPassword(c.Request().Context(), form.Token, form.NewPassword); err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "reset_password.html", p)
	}

	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// PendingApproval renders the holding page for users whose membership has
// not been approved. The guard exempts this path from its pending redirect.
func (h *AuthHandler) PendingApproval(c echo.Context) error {
	return c.Render(http.StatusOK, "pending_approval.html", page(c, "Pending approval"))
}
