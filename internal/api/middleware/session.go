package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/session"
)

const (
	contextKeySession = "session"
	contextKeyRenewer = "session_renewer"
	cookieIssuer      = "rrhh-console"
)

// SessionOpener boots the identity container of a session id and moves a
// session to a new id.
type SessionOpener interface {
	Open(ctx context.Context, sessionID string) (*session.Container, error)
	Renew(ctx context.Context, c *session.Container) (*session.Container, error)
}

// SessionConfig configures the browser session cookie.
type SessionConfig struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session identifies the browser through a signed cookie and opens its
// identity container for the rest of the chain.
//
// The cookie is an HS256 JWT whose jti is the session id. It carries no
// identity data; a missing, tampered or expired cookie starts a new
// anonymous session under a new id. A valid cookie past half its TTL is
// re-issued with the same id.
func Session(cfg SessionConfig, opener SessionOpener, log zerolog.Logger) echo.MiddlewareFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, expires, ok := readSessionCookie(c, cfg)
			if !ok {
				sid = uuid.NewString()
			}
			if !ok || time.Until(expires) < cfg.TTL/2 {
				if err := writeSessionCookie(c, cfg, sid); err != nil {
					return err
				}
			}

			container, err := opener.Open(c.Request().Context(), sid)
			if err != nil {
				// The container is still usable and anonymous.
				log.Warn().Err(err).Str("session_id", sid).Msg("session boot failed")
			}
			c.Set(contextKeySession, container)
			c.Set(contextKeyRenewer, &renewer{cfg: cfg, opener: opener})
			return next(c)
		}
	}
}

// SessionFrom returns the container opened by Session, or nil.
func SessionFrom(c echo.Context) *session.Container {
	container, _ := c.Get(contextKeySession).(*session.Container)
	return container
}

// SetSession stores container on c. Used by tests and by handlers that
// replace the session.
func SetSession(c echo.Context, container *session.Container) {
	c.Set(contextKeySession, container)
}

type renewer struct {
	cfg    SessionConfig
	opener SessionOpener
}

// RenewSession moves the current session to a new id and replaces the
// cookie. Login and logout call it; the previous id is anonymous afterwards.
// Outside the Session middleware it does nothing.
func RenewSession(c echo.Context) error {
	r, _ := c.Get(contextKeyRenewer).(*renewer)
	current := SessionFrom(c)
	if r == nil || current == nil {
		return nil
	}

	next, err := r.opener.Renew(c.Request().Context(), current)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "renew session").SetInternal(err)
	}
	dropSetCookie(c, r.cfg.CookieName)
	if err := writeSessionCookie(c, r.cfg, next.SessionID()); err != nil {
		return err
	}
	SetSession(c, next)
	return nil
}

// dropSetCookie removes a cookie already queued on the response.
func dropSetCookie(c echo.Context, name string) {
	h := c.Response().Header()
	queued := h.Values(echo.HeaderSetCookie)
	kept := make([]string, 0, len(queued))
	for _, v := range queued {
		if !strings.HasPrefix(v, name+"=") {
			kept = append(kept, v)
		}
	}
	h.Del(echo.HeaderSetCookie)
	for _, v := range kept {
		h.Add(echo.HeaderSetCookie, v)
	}
}

// readSessionCookie returns the session id of a valid cookie. An expired
// cookie is rejected like a tampered one: its id is never reused.
func readSessionCookie(c echo.Context, cfg SessionConfig) (string, time.Time, bool) {
	cookie, err := c.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return "", time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", time.Time{}, false
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", time.Time{}, false
	}
	return claims.ID, claims.ExpiresAt.Time, true
}

func writeSessionCookie(c echo.Context, cfg SessionConfig, sid string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sid,
		Issuer:    cookieIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	})
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "session cookie").SetInternal(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
