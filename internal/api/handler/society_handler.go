package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/core/authz"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// SocietyHandler serves the society pages: listing, registration, detail
// with member management, and the developer-only approval actions.
type SocietyHandler struct {
	community ports.CommunityService
}

func NewSocietyHandler(community ports.CommunityService) *SocietyHandler {
	return &SocietyHandler{community: community}
}

type societyListView struct {
	Pending  []domain.Society
	Approved []domain.Society
}

func (h *SocietyHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.Session(c)
	user := middleware.CurrentUser(c)

	approved, err := h.community.Societies(ctx, session, domain.ApprovalApproved)
	if err != nil {
		return err
	}

	data := societyListView{Approved: approved}
	if user.GlobalRole == domain.RoleDeveloper {
		pending, err := h.community.Societies(ctx, session, domain.ApprovalPending)
		if err != nil {
			return err
		}
		data.Pending = pending
	}

	p := page(c, "Societies")
	p.Data = data
	if c.QueryParam("submitted") != "" {
		p.Flash = "Society submitted. A developer will review it shortly."
	}
	return c.Render(http.StatusOK, "societies.html", p)
}

func (h *SocietyHandler) New(c echo.Context) error {
	p := page(c, "Register a society")
	p.Data = societyForm{}
	return c.Render(http.StatusOK, "society_new.html", p)
}

func (h *SocietyHandler) Create(c echo.Context) error {
	var form societyForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Register a society")
	p.Data = form

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "society_new.html", p)
	}

	_, err := h.community.CreateSociety(c.Request().Context(), middleware.Session(c), ports.SocietyInput{
		Name:          form.Name,
		Address:       form.Address,
		City:          form.City,
		State:         form.State,
		Pincode:       form.Pincode,
		ContactPerson: form.ContactPerson,
		ContactEmail:  form.ContactEmail,
		ContactPhone:  form.ContactPhone,
	})
	if err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "society_new.html", p)
	}

	return c.Redirect(http.StatusSeeOther, "/societies?submitted=1")
}

type societyDetailView struct {
	Society *domain.Society
	Members []domain.SocietyMember
	IsAdmin bool
}

func (h *SocietyHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.Session(c)
	user := middleware.CurrentUser(c)
	societyID := c.Param("id")

	society, err := h.community.GetSociety(ctx, session, societyID)
	if err != nil {
		return err
	}

	members, err := h.community.Members(ctx, session, societyID, "")
	if err != nil {
		return err
	}

	p := page(c, society.Name)
	p.Data = societyDetailView{
		Society: society,
		Members: members,
		IsAdmin: user.GlobalRole == domain.RoleDeveloper || authz.IsSocietyAdmin(user.UserSocieties, societyID),
	}
	return c.Render(http.StatusOK, "society_detail.html", p)
}

// Approve handles the developer verdict on a pending society.
func (h *SocietyHandler) Approve(c echo.Context) error {
	var form approvalForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.community.ApproveSociety(c.Request().Context(), middleware.Session(c), c.Param("id"), form.Approved, form.RejectionReason)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/societies")
}

// DecideMembership handles a society admin approving or rejecting one
// membership request from the detail page.
func (h *SocietyHandler) DecideMembership(c echo.Context) error {
	var form approvalForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	societyID := c.Param("id")
	_, err := h.community.DecideMembership(c.Request().Context(), middleware.Session(c), societyID, ports.MembershipDecision{
		UserSocietyID:   c.Param("membershipID"),
		Approved:        form.Approved,
		RejectionReason: form.RejectionReason,
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/societies/"+societyID)
}
