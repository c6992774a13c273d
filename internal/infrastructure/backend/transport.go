package backend

import (
	"fmt"
	"net/http"

	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// BearerTransport attaches the session token to every outgoing request.
//
// The token is read from the credential store on each round trip, not from
// the identity container, so requests made before a container is booted are
// still authenticated. A missing token sends the request as is; the backend
// decides what to do with it.
type BearerTransport struct {
	Store ports.CredentialStore
	Base  http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Store == nil {
		return base.RoundTrip(req)
	}

	token, ok, err := t.Store.Get(req.Context(), ports.KeyToken)
	if err != nil {
		closeBody(req)
		return nil, fmt.Errorf("read session token: %w", err)
	}
	if !ok || token == "" {
		return base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(out)
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
