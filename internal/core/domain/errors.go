package domain

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidAuthResponse  = errors.New("invalid response from authentication server")
	ErrInvalidLogin         = errors.New("identity and token are required")
	ErrLoginInProgress      = errors.New("login already in progress")
	ErrSessionExpired       = errors.New("session expired")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("access forbidden")
	ErrNotFound             = errors.New("resource not found")
	ErrBackendUnavailable   = errors.New("hr backend unavailable")
	ErrInvalidTheme         = errors.New("unknown theme")
	ErrInvalidRequestStatus = errors.New("unknown request status")
)
