package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/infrastructure/db/memory"
)

func newTestSession(t *testing.T, h http.HandlerFunc, token string) ports.Backend {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL}, zerolog.Nop())
	require.NoError(t, err)

	store := memory.NewCredentialStore().Open("sid")
	if token != "" {
		require.NoError(t, store.Put(context.Background(), map[string]string{ports.KeyToken: token}))
	}
	return c.ForSession(store)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "ftp://hr"}, zerolog.Nop())
	assert.Error(t, err)
	_, err = New(Config{BaseURL: "://"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@x", body.Email)
		writeJSON(w, http.StatusOK, map[string]any{
			"user":  map[string]any{"id": 7, "username": "ana", "role": "ADMIN"},
			"token": "t1",
		})
	}, "")

	out, err := b.Login(context.Background(), "ana@x", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", out.Token)
	require.NotNil(t, out.User)
	assert.Equal(t, domain.RecordID("7"), out.User.ID)
	assert.True(t, out.User.IsAdmin())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
	}, "")

	_, err := b.Login(context.Background(), "ana@x", "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.False(t, errors.Is(err, domain.ErrSessionExpired))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestLogin_MalformedBody(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "<html>gateway</html>")
	}, "")

	_, err := b.Login(context.Background(), "ana@x", "secret")
	assert.True(t, errors.Is(err, domain.ErrInvalidAuthResponse))
}

func TestLogin_BackendDown(t *testing.T) {
	c, err := New(Config{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())
	require.NoError(t, err)
	b := c.ForSession(memory.NewCredentialStore().Open("sid"))

	_, err = b.Login(context.Background(), "ana@x", "secret")
	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
	assert.False(t, errors.Is(err, domain.ErrInvalidAuthResponse))
}

func TestSession_UnauthorizedMeansExpired(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
	}, "old")

	_, err := b.ListWorkers(context.Background())
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
}

func TestSession_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadGateway, domain.ErrBackendUnavailable},
	}
	for _, tc := range cases {
		b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}, "t1")
		err := b.DeleteWorker(context.Background(), "3")
		assert.True(t, errors.Is(err, tc.want), "status %d", tc.status)
	}
}

func TestSession_ValidationMessagesJoined(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": []string{"nombre vacío", "email inválido"}})
	}, "t1")

	_, err := b.CreateWorker(context.Background(), domain.Worker{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "nombre vacío; email inválido", apiErr.Message)
}

func TestSession_SendsBearerToken(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "nombre": "Luis"}})
	}, "t1")

	out, err := b.ListWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Luis", out[0].FirstName)
}

func TestUpdateProfile_ReturnsServerUser(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/profile", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 7, "username": "ana2", "email": "ana2@x", "role": "ADMIN"},
		})
	}, "t1")

	u, err := b.UpdateProfile(context.Background(), "ana2", "ana2@x")
	require.NoError(t, err)
	assert.Equal(t, "ana2", u.Username)
}

func TestEnroll_SendsNumericIDs(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cursos-trabajadores/inscribir", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["cursoId"])
		assert.Equal(t, float64(9), body["trabajadorId"])
		assert.Equal(t, "2024-05-01", body["fechaRealizacion"])
		writeJSON(w, http.StatusCreated, map[string]any{"id": 1})
	}, "t1")

	_, err := b.Enroll(context.Background(), "4", 9, "2024-05-01")
	require.NoError(t, err)
}

func TestSetRequestStatus(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/solicitudes/12", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "APROBADO", body["estado"])
		w.WriteHeader(http.StatusNoContent)
	}, "t1")

	require.NoError(t, b.SetRequestStatus(context.Background(), "12", domain.RequestApproved))
}

func TestCreateApplicant_Multipart(t *testing.T) {
	b := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Eva", r.FormValue("nombre"))
		assert.Equal(t, "Soporte", r.FormValue("tipoTrabajo"))
		f, hdr, err := r.FormFile("cv")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "eva.pdf", hdr.Filename)
		raw, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF", string(raw))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "a1", "nombre": "Eva", "email": "eva@x"})
	}, "")

	out, err := b.CreateApplicant(context.Background(), ports.ApplicationInput{
		Name:       "Eva",
		Email:      "eva@x",
		JobType:    "Soporte",
		CVFilename: "eva.pdf",
		CV:         strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RecordID("a1"), out.ID)
}

func TestEndpoint_EscapesSegments(t *testing.T) {
	c, err := New(Config{BaseURL: "http://hr.local/api/"}, zerolog.Nop())
	require.NoError(t, err)
	s := c.ForSession(nil).(*Session)
	assert.Equal(t, "http://hr.local/api/trabajador/a%2Fb", s.endpoint("trabajador", "a/b"))
}
