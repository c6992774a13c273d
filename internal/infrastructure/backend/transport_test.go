package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/infrastructure/db/memory"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (brokenStore) Put(context.Context, map[string]string) error { return errors.New("store down") }
func (brokenStore) Delete(context.Context, ...string) error      { return errors.New("store down") }

func captureAuthorization(t *testing.T, store ports.CredentialStore) (string, bool) {
	t.Helper()
	var header string
	var present bool
	tr := &BearerTransport{
		Store: store,
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			header = r.Header.Get("Authorization")
			_, present = r.Header["Authorization"]
			return httptest.NewRecorder().Result(), nil
		}),
	}
	req := httptest.NewRequest(http.MethodGet, "http://hr.local/trabajador", nil)
	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, req.Header.Get("Authorization"), "caller request must not be mutated")
	return header, present
}

func TestBearerTransport_AttachesStoredToken(t *testing.T) {
	store := memory.NewCredentialStore().Open("sid")
	require.NoError(t, store.Put(context.Background(), map[string]string{ports.KeyToken: "abc"}))

	header, present := captureAuthorization(t, store)
	assert.True(t, present)
	assert.Equal(t, "Bearer abc", header)
}

func TestBearerTransport_NoTokenSendsNoHeader(t *testing.T) {
	_, present := captureAuthorization(t, memory.NewCredentialStore().Open("sid"))
	assert.False(t, present)
}

func TestBearerTransport_EmptyTokenSendsNoHeader(t *testing.T) {
	store := memory.NewCredentialStore().Open("sid")
	require.NoError(t, store.Put(context.Background(), map[string]string{ports.KeyToken: ""}))

	_, present := captureAuthorization(t, store)
	assert.False(t, present)
}

func TestBearerTransport_TokenReadPerRequest(t *testing.T) {
	store := memory.NewCredentialStore().Open("sid")
	ctx := context.Background()

	_, present := captureAuthorization(t, store)
	assert.False(t, present)

	require.NoError(t, store.Put(ctx, map[string]string{ports.KeyToken: "t1"}))
	header, _ := captureAuthorization(t, store)
	assert.Equal(t, "Bearer t1", header)

	require.NoError(t, store.Delete(ctx, ports.KeyToken))
	_, present = captureAuthorization(t, store)
	assert.False(t, present)
}

func TestBearerTransport_StoreErrorFailsRequest(t *testing.T) {
	called := false
	tr := &BearerTransport{
		Store: brokenStore{},
		Base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			called = true
			return nil, nil
		}),
	}
	_, err := tr.RoundTrip(httptest.NewRequest(http.MethodGet, "http://hr.local/", nil))
	require.Error(t, err)
	assert.False(t, called)
}
