package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *domain.Identity `json:"user"`
	Token string           `json:"token"`
}

type registerRequest struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	Phone     string      `json:"telefono,omitempty"`
	Address   string      `json:"direccion,omitempty"`
	JobTypeID int64       `json:"tipoTrabajoId,omitempty"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login exchanges credentials for a token and the user payload. The shape
// of the answer is checked by the caller; a body that is not JSON is
// reported as domain.ErrInvalidAuthResponse.
func (s *Session) Login(ctx context.Context, email, password string) (*ports.AuthPayload, error) {
	raw, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("auth", "login"), bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build login: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	var out authResponse
	if err := s.send(req, &out, true); err != nil {
		if errors.Is(err, errMalformedBody) {
			return nil, fmt.Errorf("login: %w: %w", domain.ErrInvalidAuthResponse, err)
		}
		return nil, err
	}
	return &ports.AuthPayload{User: out.User, Token: out.Token}, nil
}

// Register creates an account.
func (s *Session) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.doJSON(ctx, http.MethodPost, s.endpoint("auth", "register"), registerRequest{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		Phone:     in.Phone,
		Address:   in.Address,
		JobTypeID: in.JobTypeID,
	}, nil)
}

// Profile returns the account behind the session token.
func (s *Session) Profile(ctx context.Context) (*domain.Identity, error) {
	var out domain.Identity
	if err := s.doJSON(ctx, http.MethodGet, s.endpoint("auth", "profile"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the display fields of the session's account and
// returns the user the backend answers with.
func (s *Session) UpdateProfile(ctx context.Context, username, email string) (*domain.Identity, error) {
	var out authResponse
	if err := s.doJSON(ctx, http.MethodPut, s.endpoint("auth", "profile"), profileRequest{Username: username, Email: email}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("update profile: %w", domain.ErrInvalidAuthResponse)
	}
	return out.User, nil
}
