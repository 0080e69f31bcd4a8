package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// UserHandler serves the user directory. The router restricts these routes
// to admins and developers.
type UserHandler struct {
	community ports.CommunityService
}

func NewUserHandler(community ports.CommunityService) *UserHandler {
	return &UserHandler{community: community}
}

type usersView struct {
	Users []domain.User
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.community.Users(c.Request().Context(), middleware.Session(c))
	if err != nil {
		return err
	}

	p := page(c, "Users")
	p.Data = usersView{Users: users}
	if c.QueryParam("saved") != "" {
		p.Flash = "User updated."
	}
	return c.Render(http.StatusOK, "users.html", p)
}

// userEditView carries the edit form plus the subject's ID for the form
// action URL.
type userEditView struct {
	ID string
	userEditForm
}

func (h *UserHandler) Edit(c echo.Context) error {
	userID := c.Param("id")

	users, err := h.community.Users(c.Request().Context(), middleware.Session(c))
	if err != nil {
		return err
	}

	var subject *domain.User
	for i := range users {
		if users[i].ID == userID {
			subject = &users[i]
			break
		}
	}
	if subject == nil {
		return domain.ErrNotFound
	}

	p := page(c, "Edit user")
	p.Data = userEditView{
		ID: subject.ID,
		userEditForm: userEditForm{
			FullName: subject.FullName,
			Email:    subject.Email,
			Phone:    subject.Phone,
			IsActive: subject.IsActive,
		},
	}
	return c.Render(http.StatusOK, "user_edit.html", p)
}

func (h *UserHandler) Update(c echo.Context) error {
	userID := c.Param("id")

	var form userEditForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	p := page(c, "Edit user")
	p.Data = userEditView{ID: userID, userEditForm: form}

	if err := c.Validate(&form); err != nil {
		p.Error = err.Error()
		return c.Render(http.StatusOK, "user_edit.html", p)
	}

	// Unchecked checkboxes are absent from the form body, so IsActive is
	// always sent explicitly.
	_, err := h.community.UpdateUser(c.Request().Context(), middleware.Session(c), userID, ports.UserUpdateInput{
		FullName: &form.FullName,
		Email:    &form.Email,
		Phone:    &form.Phone,
		IsActive: &form.IsActive,
	})
	if err != nil {
		p.Error = failureMessage(err)
		return c.Render(http.StatusOK, "user_edit.html", p)
	}

	return c.Redirect(http.StatusSeeOther, "/users?saved=1")
}
