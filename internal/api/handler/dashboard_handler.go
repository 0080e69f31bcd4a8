package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// DashboardHandler serves the landing page behind the guard.
type DashboardHandler struct {
	community ports.CommunityService
	log       zerolog.Logger
}

func NewDashboardHandler(community ports.CommunityService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{community: community, log: log}
}

type dashboardView struct {
	PendingSocieties int
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	p := page(c, "Dashboard")
	data := dashboardView{}

	// The review queue size is developer chrome; its failure must not take
	// down the landing page.
	user := middleware.CurrentUser(c)
	if user.GlobalRole == domain.RoleDeveloper {
		pending, err := h.community.Societies(c.Request().Context(), middleware.Session(c), domain.ApprovalPending)
		if err != nil {
			h.log.Warn().Err(err).Msg("pending society count unavailable")
		} else {
			data.PendingSocieties = len(pending)
		}
	}

	p.Data = data
	return c.Render(http.StatusOK, "dashboard.html", p)
}
