package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// Manager opens containers for browser sessions and owns the per-session
// login guard.
type Manager struct {
	stores    ports.CredentialStoreFactory
	listeners []Listener
	log       zerolog.Logger

	inflight sync.Map // session id -> struct{}
}

// NewManager returns a Manager whose containers are all subscribed to the
// given listeners.
func NewManager(stores ports.CredentialStoreFactory, log zerolog.Logger, listeners ...Listener) *Manager {
	return &Manager{stores: stores, listeners: listeners, log: log}
}

// Open builds and boots the container of sessionID. The container is usable
// even when Boot fails: it is then anonymous.
func (m *Manager) Open(ctx context.Context, sessionID string) (*Container, error) {
	c := m.container(sessionID)
	if err := c.Boot(ctx); err != nil {
		return c, err
	}
	return c, nil
}

// Renew moves the credentials of c under a freshly generated session id and
// returns the container of that id. c and its stored entries are anonymous
// afterwards, so the old id grants nothing.
func (m *Manager) Renew(ctx context.Context, c *Container) (*Container, error) {
	next := m.container(uuid.NewString())
	next.booted = true
	if err := c.moveTo(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (m *Manager) container(sessionID string) *Container {
	c := NewContainer(sessionID, m.stores.Open(sessionID), m.log)
	for _, l := range m.listeners {
		c.Subscribe(l)
	}
	return c
}

// BeginLogin marks a login as pending for sessionID. A second call before
// release is invoked fails with domain.ErrLoginInProgress.
func (m *Manager) BeginLogin(sessionID string) (release func(), err error) {
	if _, busy := m.inflight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, domain.ErrLoginInProgress
	}
	var once sync.Once
	return func() {
		once.Do(func() { m.inflight.Delete(sessionID) })
	}, nil
}

// Ping reports whether the credential store is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.stores.Ping(ctx)
}
