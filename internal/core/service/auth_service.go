package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
)

// LoginGuard admits one pending login per session.
type LoginGuard interface {
	BeginLogin(sessionID string) (release func(), err error)
}

// AuthService drives the identity container from the answers of the HR
// authentication endpoints.
type AuthService struct {
	backends ports.BackendFactory
	guard    LoginGuard
	log      zerolog.Logger
}

func NewAuthService(backends ports.BackendFactory, guard LoginGuard, log zerolog.Logger) *AuthService {
	return &AuthService{backends: backends, guard: guard, log: log}
}

// Login exchanges credentials for a token and makes the returned user the
// session's identity.
func (s *AuthService) Login(ctx context.Context, c *session.Container, email, password string) (domain.Identity, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	release, err := s.guard.BeginLogin(c.SessionID())
	if err != nil {
		return domain.Identity{}, err
	}
	defer release()

	payload, err := s.backends.ForSession(c.Store()).Login(ctx, email, password)
	if err != nil {
		return domain.Identity{}, err
	}
	if payload == nil || payload.User == nil || !payload.User.Valid() || strings.TrimSpace(payload.Token) == "" {
		return domain.Identity{}, domain.ErrInvalidAuthResponse
	}

	if err := c.Login(ctx, *payload.User, payload.Token); err != nil {
		return domain.Identity{}, err
	}

	s.log.Info().
		Str("session_id", c.SessionID()).
		Str("user_id", payload.User.ID.String()).
		Str("role", string(payload.User.Role)).
		Msg("login succeeded")
	return payload.User.Clone(), nil
}

// Logout forgets the identity of the session.
func (s *AuthService) Logout(ctx context.Context, c *session.Container) error {
	if err := c.Logout(ctx); err != nil {
		return err
	}
	s.log.Info().Str("session_id", c.SessionID()).Msg("logout")
	return nil
}

// Profile fetches the current user from the backend.
func (s *AuthService) Profile(ctx context.Context, c *session.Container) (*domain.Identity, error) {
	if _, ok := c.CurrentIdentity(); !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s.backends.ForSession(c.Store()).Profile(ctx)
}

// UpdateProfile changes username and email on the backend and re-issues the
// identity with the values the backend stored. The token is kept.
func (s *AuthService) UpdateProfile(ctx context.Context, c *session.Container, username, email string) (domain.Identity, error) {
	if _, ok := c.CurrentIdentity(); !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	user, err := s.backends.ForSession(c.Store()).UpdateProfile(ctx, username, email)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := c.UpdateProfile(ctx, user.Username, user.Email); err != nil {
		return domain.Identity{}, fmt.Errorf("update profile: %w", err)
	}

	updated, _ := c.CurrentIdentity()
	return updated, nil
}

// Register creates an account. The public sign-up form and administrators
// both go through it; the latter call it with their own token attached.
func (s *AuthService) Register(ctx context.Context, c *session.Container, in ports.RegisterInput) error {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return domain.ErrInvalidCredentials
	}
	if in.Role == "" {
		in.Role = domain.RoleStaff
	}
	return s.backends.ForSession(c.Store()).Register(ctx, in)
}
