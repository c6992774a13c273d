package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/session"
	"github.com/Witch19/rrhh-console/internal/infrastructure/db/memory"
)

func newContainer(t *testing.T, identity *domain.Identity) *session.Container {
	t.Helper()
	c := session.NewContainer("sid", memory.NewCredentialStore().Open("sid"), zerolog.Nop())
	if identity != nil {
		if err := c.Login(context.Background(), *identity, "t1"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	return c
}

func runGuard(t *testing.T, req *http.Request, container *session.Container) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if container != nil {
		SetSession(c, container)
	}

	called := false
	handler := RequireIdentity("/")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRequireIdentity_AnonymousNavigationRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml")

	rec, called := runGuard(t, req, newContainer(t, nil))
	if called {
		t.Fatalf("protected content must not render")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestRequireIdentity_AnonymousAPIGets401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/workers", nil)

	rec, called := runGuard(t, req, newContainer(t, nil))
	if called {
		t.Fatalf("next must not be called")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected Location /, got %q", loc)
	}
}

func TestRequireIdentity_MissingContainerRedirects(t *testing.T) {
	rec, called := runGuard(t, httptest.NewRequest(http.MethodGet, "/cursos", nil), nil)
	if called || rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d (called=%v)", rec.Code, called)
	}
}

func TestRequireIdentity_AuthenticatedAnyRole(t *testing.T) {
	for _, role := range []domain.Role{"ADMIN", "TRABAJADOR", "anything"} {
		rec, called := runGuard(t, httptest.NewRequest(http.MethodGet, "/dashboard", nil),
			newContainer(t, &domain.Identity{ID: "1", Role: role}))
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("role %s: expected content, got %d", role, rec.Code)
		}
	}
}

func TestWantsJSON(t *testing.T) {
	e := echo.New()
	cases := []struct {
		path   string
		header map[string]string
		want   bool
	}{
		{"/api/session", nil, true},
		{"/dashboard", nil, false},
		{"/dashboard", map[string]string{echo.HeaderAccept: "application/json"}, true},
		{"/dashboard", map[string]string{echo.HeaderAccept: "text/html, application/json"}, false},
		{"/dashboard", map[string]string{echo.HeaderXRequestedWith: "XMLHttpRequest"}, true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		for k, v := range tc.header {
			req.Header.Set(k, v)
		}
		if got := WantsJSON(e.NewContext(req, httptest.NewRecorder())); got != tc.want {
			t.Fatalf("%s %v: expected %v, got %v", tc.path, tc.header, tc.want, got)
		}
	}
}
