package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// Console views. The browser shell renders them from the descriptors below.
const (
	ViewLanding    = "landing"
	ViewLogin      = "login"
	ViewRegister   = "register"
	ViewDashboard  = "dashboard"
	ViewWorkers    = "trabajadores"
	ViewCourses    = "cursos"
	ViewRequests   = "solicitudes"
	ViewApplicants = "aspirantes"
	ViewUsers      = "usuarios"
)

type pageResponse struct {
	View  string            `json:"view"`
	User  *domain.Identity  `json:"user,omitempty"`
	Menu  []domain.MenuItem `json:"menu,omitempty"`
	Theme themeResponse     `json:"theme"`
}

// PageHandler serves the view descriptors of the console.
type PageHandler struct {
	themes *ThemeHandler
}

func NewPageHandler(themes *ThemeHandler) *PageHandler {
	return &PageHandler{themes: themes}
}

func (h *PageHandler) page(c echo.Context, view string) error {
	resp := pageResponse{View: view, Theme: h.themes.describe(h.themes.Current(c))}
	if container, err := ctxSession(c); err == nil {
		if identity, ok := container.CurrentIdentity(); ok {
			resp.User = &identity
			resp.Menu = domain.MenuFor(identity)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Public serves a view anyone can open.
func (h *PageHandler) Public(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.page(c, view)
	}
}

// Login serves the login view, or sends an authenticated session straight to
// the dashboard.
func (h *PageHandler) Login(c echo.Context) error {
	if container, err := ctxSession(c); err == nil {
		if _, ok := container.CurrentIdentity(); ok {
			return c.Redirect(http.StatusSeeOther, dashboardPath)
		}
	}
	return h.page(c, ViewLogin)
}

// Protected serves a view behind RequireIdentity.
func (h *PageHandler) Protected(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, _, err := ctxIdentity(c); err != nil {
			return err
		}
		return h.page(c, view)
	}
}
