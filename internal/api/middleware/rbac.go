package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// deniedPage is where a browser lands after opening a page its role may not
// see. Every role can view it.
const deniedPage = "/dashboard"

// RequireCapability enforces role-based access control. It must run after
// RequireIdentity.
//
// API calls and scripts get 403; page navigations are redirected to the
// dashboard.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			container := SessionFrom(c)
			if container != nil {
				if identity, ok := container.CurrentIdentity(); ok && identity.Can(capability) {
					return next(c)
				}
			}
			if !WantsJSON(c) {
				return c.Redirect(http.StatusSeeOther, deniedPage)
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
