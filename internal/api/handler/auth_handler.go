package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Witch19/rrhh-console/internal/api/metrics"
	"github.com/Witch19/rrhh-console/internal/api/middleware"
	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

const dashboardPath = "/dashboard"

// AuthService is the session-aware authentication flow.
type AuthService interface {
	Login(ctx context.Context, c *session.Container, email, password string) (domain.Identity, error)
	Logout(ctx context.Context, c *session.Container) error
	Profile(ctx context.Context, c *session.Container) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, c *session.Container, username, email string) (domain.Identity, error)
	Register(ctx context.Context, c *session.Container, in ports.RegisterInput) error
}

type AuthHandler struct {
	authService AuthService
	publicEntry string
}

func NewAuthHandler(authService AuthService, publicEntry string) *AuthHandler {
	return &AuthHandler{authService: authService, publicEntry: publicEntry}
}

// Login authenticates against the HR backend and binds the identity to the
// browser session, which gets a new id. Form posts are redirected to the
// dashboard.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Success      303
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	container, err := ctxSession(c)
	if err != nil {
		return err
	}

	identity, err := h.authService.Login(c.Request().Context(), container, req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}
	// The id the browser held before login must not carry the identity.
	if err := middleware.RenewSession(c); err != nil {
		return err
	}

	return respond(c, dashboardPath, http.StatusOK, newSessionResponse(identity, true))
}

// Logout ends the session and issues a new anonymous one. Browsers are sent
// to the public entry.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	container, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), container); err != nil {
		return err
	}
	if err := middleware.RenewSession(c); err != nil {
		return err
	}
	return respond(c, h.publicEntry, http.StatusNoContent, nil)
}

// Session reports whether the browser session is authenticated.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	container, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(container.CurrentIdentity()))
}

// Profile returns the user as the HR backend currently knows it.
//
// @Summary      Get profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	container, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Profile(c.Request().Context(), container)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: *user})
}

// UpdateProfile changes username and email. The session keeps its token.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "New profile values"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	container, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	identity, err := h.authService.UpdateProfile(c.Request().Context(), container, req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: identity})
}

// Register creates an account through the public sign-up form. Browsers are
// sent to the login page afterwards. Administrators reuse it to create
// accounts from the user list.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Success      303
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	container, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.authService.Register(c.Request().Context(), container, ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		Phone:     req.Phone,
		Address:   req.Address,
		JobTypeID: req.JobTypeID,
	})
	if err != nil {
		return err
	}
	return respond(c, "/login", http.StatusCreated, messageResponse{Message: "user registered"})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrInvalidAuthResponse):
		return "invalid_response"
	case errors.Is(err, domain.ErrLoginInProgress):
		return "in_progress"
	default:
		return "error"
	}
}
