package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/api/metrics"
	"github.com/societyhub/dashboard/internal/core/authz"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// Well-known page paths the guard redirects between.
const (
	LoginPath           = "/login"
	DashboardPath       = "/dashboard"
	PendingApprovalPath = "/pending-approval"
)

// Guard gates every protected page. The decision is a pure function of the
// restored session and the freshly fetched profile:
//
//  1. no session                  -> redirect to the login page
//  2. profile fetch bounces 401   -> session is dead, redirect to login
//  3. authz says pending          -> redirect to the pending-approval page
//     (the pending page itself is exempt, to avoid a redirect loop)
//  4. otherwise                   -> load the profile into context, render
//
// An approved user landing on the pending page is bounced back to the
// dashboard.
func Guard(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := Session(c)
			if session == nil {
				metrics.GuardRedirectsTotal.WithLabelValues("login").Inc()
				return c.Redirect(http.StatusFound, LoginPath)
			}

			user, err := sessions.CurrentUser(c.Request().Context(), session)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					ClearSessionCookie(c)
					metrics.GuardRedirectsTotal.WithLabelValues("login").Inc()
					return c.Redirect(http.StatusFound, LoginPath)
				}
				return err
			}
			c.Set(ctxUser, user)

			onPendingPage := c.Request().URL.Path == PendingApprovalPath
			if authz.Evaluate(user.GlobalRole, user.UserSocieties) == authz.DecisionPending {
				if !onPendingPage {
					metrics.GuardRedirectsTotal.WithLabelValues("pending_approval").Inc()
					return c.Redirect(http.StatusFound, PendingApprovalPath)
				}
			} else if onPendingPage {
				return c.Redirect(http.StatusFound, DashboardPath)
			}

			return next(c)
		}
	}
}

// RequireRoles restricts a route to users whose global role is listed.
// Runs after Guard, which loads the profile.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if _, ok := allowed[user.GlobalRole]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
