package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

// ExpireOnUnauthorized ends the session when a handler reports that the HR
// backend rejected its token. The error is passed on unchanged so the error
// handler still answers 401.
func ExpireOnUnauthorized(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || !errors.Is(err, domain.ErrSessionExpired) {
				return err
			}
			container := SessionFrom(c)
			if container == nil {
				return err
			}
			if xerr := container.Expire(c.Request().Context()); xerr != nil {
				log.Warn().Err(xerr).Str("session_id", container.SessionID()).Msg("expire session")
			} else {
				log.Info().Str("session_id", container.SessionID()).Msg("hr backend rejected token, session expired")
			}
			return err
		}
	}
}
