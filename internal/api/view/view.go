// Package view renders the dashboard pages from templates embedded in the
// binary. Markup is deliberately plain; styling is out of scope.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/dashboard/internal/core/authz"
	"github.com/societyhub/dashboard/internal/core/domain"
)

//go:embed templates/*.html
var files embed.FS

// Renderer satisfies echo.Renderer over the embedded template set.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.New("").ParseFS(files, "templates/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page is the envelope every template receives: the chrome state plus the
// page-specific payload in Data.
type Page struct {
	Title string
	User  *domain.User
	Theme string
	// Error is the inline failure message rendered next to the active form.
	Error string
	// Flash is a one-off success notice.
	Flash string
	Data  any
}

// CanManageUsers drives the visibility of the user-administration nav link.
func (p Page) CanManageUsers() bool {
	return authz.CanManageUsers(p.User)
}

// IsDeveloper drives developer-only chrome (society approval actions).
func (p Page) IsDeveloper() bool {
	return p.User != nil && p.User.GlobalRole == domain.RoleDeveloper
}
