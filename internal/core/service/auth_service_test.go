package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
	"github.com/Witch19/rrhh-console/internal/core/session"
	"github.com/Witch19/rrhh-console/internal/infrastructure/db/memory"
)

// stubBackend implements ports.Backend; methods a test does not set panic
// through the nil embedded interface.
type stubBackend struct {
	ports.Backend
	loginFn         func(ctx context.Context, email, password string) (*ports.AuthPayload, error)
	updateProfileFn func(ctx context.Context, username, email string) (*domain.Identity, error)
	registerFn      func(ctx context.Context, in ports.RegisterInput) error
	createRequestFn func(ctx context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error)
	setStatusFn     func(ctx context.Context, id string, status domain.RequestStatus) error
}

func (b *stubBackend) Login(ctx context.Context, email, password string) (*ports.AuthPayload, error) {
	return b.loginFn(ctx, email, password)
}

func (b *stubBackend) UpdateProfile(ctx context.Context, username, email string) (*domain.Identity, error) {
	return b.updateProfileFn(ctx, username, email)
}

func (b *stubBackend) Register(ctx context.Context, in ports.RegisterInput) error {
	return b.registerFn(ctx, in)
}

func (b *stubBackend) CreateRequest(ctx context.Context, r domain.LeaveRequest) (*domain.LeaveRequest, error) {
	return b.createRequestFn(ctx, r)
}

func (b *stubBackend) SetRequestStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	return b.setStatusFn(ctx, id, status)
}

type stubFactory struct{ backend *stubBackend }

func (f stubFactory) ForSession(ports.CredentialStore) ports.Backend { return f.backend }

func newTestEnv(t *testing.T, b *stubBackend) (*AuthService, *session.Manager, *memory.CredentialStore) {
	t.Helper()
	stores := memory.NewCredentialStore()
	mgr := session.NewManager(stores, zerolog.Nop())
	return NewAuthService(stubFactory{b}, mgr, zerolog.Nop()), mgr, stores
}

func openContainer(t *testing.T, mgr *session.Manager, sid string) *session.Container {
	t.Helper()
	c, err := mgr.Open(context.Background(), sid)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return c
}

func adminPayload() *ports.AuthPayload {
	return &ports.AuthPayload{
		User:  &domain.Identity{ID: "1", Username: "ana", Email: "ana@x", Role: domain.RoleAdmin},
		Token: "t1",
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	b := &stubBackend{loginFn: func(_ context.Context, email, password string) (*ports.AuthPayload, error) {
		if email != "ana@x" || password != "secret" {
			t.Fatalf("unexpected credentials %q/%q", email, password)
		}
		return adminPayload(), nil
	}}
	svc, mgr, stores := newTestEnv(t, b)
	c := openContainer(t, mgr, "sid")

	id, err := svc.Login(context.Background(), c, "ana@x", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if id.ID != "1" || !id.IsAdmin() {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if c.State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated container, got %s", c.State())
	}
	token, ok, _ := stores.Open("sid").Get(context.Background(), ports.KeyToken)
	if !ok || token != "t1" {
		t.Fatalf("expected stored token t1, got %q (ok=%v)", token, ok)
	}
}

func TestAuthService_Login_RejectsIncompletePayload(t *testing.T) {
	cases := map[string]*ports.AuthPayload{
		"nil payload": nil,
		"no user":     {Token: "t1"},
		"empty id":    {User: &domain.Identity{Role: domain.RoleAdmin}, Token: "t1"},
		"no token":    {User: &domain.Identity{ID: "1"}, Token: "  "},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			b := &stubBackend{loginFn: func(context.Context, string, string) (*ports.AuthPayload, error) {
				return payload, nil
			}}
			svc, mgr, _ := newTestEnv(t, b)
			c := openContainer(t, mgr, "sid")

			if _, err := svc.Login(context.Background(), c, "ana@x", "secret"); !errors.Is(err, domain.ErrInvalidAuthResponse) {
				t.Fatalf("expected ErrInvalidAuthResponse, got %v", err)
			}
			if c.State() != domain.StateAnonymous {
				t.Fatalf("container must stay anonymous")
			}
		})
	}
}

func TestAuthService_Login_PropagatesBackendError(t *testing.T) {
	b := &stubBackend{loginFn: func(context.Context, string, string) (*ports.AuthPayload, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	svc, mgr, _ := newTestEnv(t, b)
	c := openContainer(t, mgr, "sid")

	if _, err := svc.Login(context.Background(), c, "ana@x", "bad"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, mgr, _ := newTestEnv(t, &stubBackend{})
	c := openContainer(t, mgr, "sid")

	if _, err := svc.Login(context.Background(), c, "", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SecondSubmitWhilePending(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	b := &stubBackend{loginFn: func(context.Context, string, string) (*ports.AuthPayload, error) {
		close(entered)
		<-unblock
		return adminPayload(), nil
	}}
	svc, mgr, _ := newTestEnv(t, b)

	first := openContainer(t, mgr, "sid")
	second := openContainer(t, mgr, "sid")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Login(context.Background(), first, "ana@x", "secret")
		done <- err
	}()
	<-entered

	if _, err := svc.Login(context.Background(), second, "ana@x", "secret"); !errors.Is(err, domain.ErrLoginInProgress) {
		t.Fatalf("expected ErrLoginInProgress, got %v", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("first login failed: %v", err)
	}
}

func TestAuthService_UpdateProfile_KeepsToken(t *testing.T) {
	b := &stubBackend{
		loginFn: func(context.Context, string, string) (*ports.AuthPayload, error) { return adminPayload(), nil },
		updateProfileFn: func(_ context.Context, username, email string) (*domain.Identity, error) {
			// The backend answers with a role string that must not leak in.
			return &domain.Identity{ID: "1", Username: username, Email: email, Role: "TRABAJADOR"}, nil
		},
	}
	svc, mgr, stores := newTestEnv(t, b)
	c := openContainer(t, mgr, "sid")
	ctx := context.Background()

	if _, err := svc.Login(ctx, c, "ana@x", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	id, err := svc.UpdateProfile(ctx, c, "ana2", "ana2@x")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if id.Username != "ana2" || id.Email != "ana2@x" {
		t.Fatalf("profile not applied: %+v", id)
	}
	if !id.IsAdmin() {
		t.Fatalf("role must be preserved, got %s", id.Role)
	}
	token, _, _ := stores.Open("sid").Get(ctx, ports.KeyToken)
	if token != "t1" {
		t.Fatalf("token must not rotate, got %q", token)
	}
}

func TestAuthService_UpdateProfile_RequiresIdentity(t *testing.T) {
	svc, mgr, _ := newTestEnv(t, &stubBackend{})
	c := openContainer(t, mgr, "sid")

	if _, err := svc.UpdateProfile(context.Background(), c, "a", "b"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	b := &stubBackend{loginFn: func(context.Context, string, string) (*ports.AuthPayload, error) { return adminPayload(), nil }}
	svc, mgr, stores := newTestEnv(t, b)
	c := openContainer(t, mgr, "sid")
	ctx := context.Background()

	if _, err := svc.Login(ctx, c, "ana@x", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if stores.Len() != 0 {
		t.Fatalf("expected empty store after logout")
	}
	if openContainer(t, mgr, "sid").State() != domain.StateAnonymous {
		t.Fatalf("reboot after logout must be anonymous")
	}
}

func TestAuthService_Register_DefaultsRole(t *testing.T) {
	var got ports.RegisterInput
	b := &stubBackend{registerFn: func(_ context.Context, in ports.RegisterInput) error {
		got = in
		return nil
	}}
	svc, mgr, _ := newTestEnv(t, b)
	c := openContainer(t, mgr, "sid")

	err := svc.Register(context.Background(), c, ports.RegisterInput{Username: "luis", Email: "l@x", Password: "p"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got.Role != domain.RoleStaff {
		t.Fatalf("expected default role %s, got %s", domain.RoleStaff, got.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, mgr, _ := newTestEnv(t, &stubBackend{})
	c := openContainer(t, mgr, "sid")

	if err := svc.Register(context.Background(), c, ports.RegisterInput{Username: "luis"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
