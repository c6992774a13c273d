package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/api/middleware"
	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

// ctxSession returns the container opened by the Session middleware. Its
// absence is a wiring bug, not a client error.
func ctxSession(c echo.Context) (*session.Container, error) {
	container := middleware.SessionFrom(c)
	if container == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return container, nil
}

// ctxIdentity returns the container together with its identity, failing with
// domain.ErrUnauthenticated for anonymous sessions.
func ctxIdentity(c echo.Context) (*session.Container, domain.Identity, error) {
	container, err := ctxSession(c)
	if err != nil {
		return nil, domain.Identity{}, err
	}
	identity, ok := container.CurrentIdentity()
	if !ok {
		return nil, domain.Identity{}, domain.ErrUnauthenticated
	}
	return container, identity, nil
}

// bindAndValidate binds the request and runs the registered validator:
// 400 for undecodable payloads, 422 for values that fail validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// respond picks the browser or the script variant of a successful answer.
func respond(c echo.Context, redirectTo string, status int, body any) error {
	if redirectTo != "" && !middleware.WantsJSON(c) {
		return c.Redirect(http.StatusSeeOther, redirectTo)
	}
	if body == nil {
		return c.NoContent(status)
	}
	return c.JSON(status, body)
}
