package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/core/session"
)

// RequireIdentity lets the request through only when the session holds an
// identity. Browser navigations are redirected to publicEntry with 303;
// API calls get 401 with the same target in the Location header.
func RequireIdentity(publicEntry string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var reader session.IdentityReader
			if container := SessionFrom(c); container != nil {
				reader = container
			}

			decision := session.Evaluate(reader, publicEntry)
			if decision.Allow {
				return next(c)
			}
			if WantsJSON(c) {
				c.Response().Header().Set(echo.HeaderLocation, decision.RedirectTo)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return c.Redirect(http.StatusSeeOther, decision.RedirectTo)
		}
	}
}

// WantsJSON reports whether the caller is a script rather than a browser
// navigation.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.URL.Path, "/api/") {
		return true
	}
	if req.Header.Get(echo.HeaderXRequestedWith) == "XMLHttpRequest" {
		return true
	}
	accept := req.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}
