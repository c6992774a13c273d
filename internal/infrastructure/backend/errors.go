package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer of the HR backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hr backend %s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("hr backend %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap exposes the domain error the status maps to, if any.
func (e *APIError) Unwrap() error { return e.kind }

// errorBody covers the envelopes the backend uses; message is either a
// string or a list of validation messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func newAPIError(resp *http.Response, credentialsCall bool) *APIError {
	e := &APIError{
		Method: resp.Request.Method,
		Path:   resp.Request.URL.Path,
		Status: resp.StatusCode,
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	e.Message = parseMessage(raw)

	switch {
	case credentialsCall && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest):
		e.kind = domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusUnauthorized:
		e.kind = domain.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		e.kind = domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		e.kind = domain.ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		e.kind = domain.ErrBackendUnavailable
	}
	return e
}

func parseMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}

	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil && single != "" {
		return single
	}
	var many []string
	if err := json.Unmarshal(body.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}
	return body.Error
}
