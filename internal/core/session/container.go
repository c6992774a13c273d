// Package session holds the identity state of one browser session.
//
// A Container is the single writer of that state: it mirrors the session's
// credential store in memory, writes every transition through to the store,
// and notifies subscribers afterwards. The store is the durable copy; the
// container is rebuilt from it by Boot.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Witch19/rrhh-console/internal/core/domain"
	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// Listener receives every state change of a container. It runs on the
// goroutine that performed the change, after the container lock is released.
type Listener func(domain.SessionChange)

// Container is the identity state machine: Anonymous or Authenticated.
type Container struct {
	id    string
	store ports.CredentialStore
	log   zerolog.Logger

	mu       sync.RWMutex
	identity *domain.Identity
	booted   bool

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewContainer returns an anonymous container bound to the store. Call Boot
// to load a persisted identity.
func NewContainer(sessionID string, store ports.CredentialStore, log zerolog.Logger) *Container {
	return &Container{
		id:        sessionID,
		store:     store,
		log:       log.With().Str("session_id", sessionID).Logger(),
		listeners: make(map[int]Listener),
	}
}

// SessionID returns the id of the browser session the container belongs to.
func (c *Container) SessionID() string { return c.id }

// Store returns the credential store the container writes through to.
func (c *Container) Store() ports.CredentialStore { return c.store }

// Boot seeds the container from the credential store. Only the first call
// does anything.
//
// A stored user that cannot be decoded or has no id is purged, and so is a
// user or a token stored without the other. The container then stays
// anonymous.
func (c *Container) Boot(ctx context.Context) error {
	c.mu.Lock()
	if c.booted {
		c.mu.Unlock()
		return nil
	}
	c.booted = true

	raw, ok, err := c.store.Get(ctx, ports.KeyUser)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("boot session: read user: %w", err)
	}
	if !ok {
		_, hasToken, err := c.store.Get(ctx, ports.KeyToken)
		if err != nil {
			c.mu.Unlock()
			return fmt.Errorf("boot session: read token: %w", err)
		}
		if !hasToken {
			c.mu.Unlock()
			return nil
		}
		// A token without its user would still be sent by the bearer
		// transport.
		purgeErr := c.store.Delete(ctx, ports.KeyToken, ports.KeyUser)
		c.mu.Unlock()

		c.log.Warn().Msg("discarding stored token without identity")
		c.notify(domain.StateAnonymous, domain.StateAnonymous, domain.ReasonCorrupt, nil)
		if purgeErr != nil {
			return fmt.Errorf("boot session: purge: %w", purgeErr)
		}
		return nil
	}

	var id domain.Identity
	decodeErr := json.Unmarshal([]byte(raw), &id)
	_, hasToken, err := c.store.Get(ctx, ports.KeyToken)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("boot session: read token: %w", err)
	}

	if decodeErr != nil || !id.Valid() || !hasToken {
		purgeErr := c.store.Delete(ctx, ports.KeyToken, ports.KeyUser)
		c.mu.Unlock()

		ev := c.log.Warn().Bool("has_token", hasToken)
		if decodeErr != nil {
			ev = ev.Err(decodeErr)
		}
		ev.Msg("discarding unusable stored identity")
		c.notify(domain.StateAnonymous, domain.StateAnonymous, domain.ReasonCorrupt, nil)

		if purgeErr != nil {
			return fmt.Errorf("boot session: purge: %w", purgeErr)
		}
		return nil
	}

	c.identity = &id
	c.mu.Unlock()
	return nil
}

// Login makes identity the current principal and persists it with token.
// When the store write fails the container keeps its previous state.
func (c *Container) Login(ctx context.Context, identity domain.Identity, token string) error {
	return c.login(ctx, identity, token, domain.ReasonLogin)
}

// UpdateProfile replaces the display fields of the current identity and
// re-issues it with the token already in the store. The token is not rotated.
func (c *Container) UpdateProfile(ctx context.Context, username, email string) error {
	current, ok := c.CurrentIdentity()
	if !ok {
		return domain.ErrUnauthenticated
	}
	token, ok, err := c.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("update profile: read token: %w", err)
	}
	if !ok {
		return domain.ErrUnauthenticated
	}
	return c.login(ctx, current.WithProfile(username, email), token, domain.ReasonProfile)
}

func (c *Container) login(ctx context.Context, identity domain.Identity, token string, reason domain.ChangeReason) error {
	if !identity.Valid() || strings.TrimSpace(token) == "" {
		return domain.ErrInvalidLogin
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("login: encode identity: %w", err)
	}

	c.mu.Lock()
	if err := c.store.Put(ctx, map[string]string{
		ports.KeyToken: token,
		ports.KeyUser:  string(raw),
	}); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("login: persist credentials: %w", err)
	}
	from := c.stateLocked()
	next := identity.Clone()
	c.identity = &next
	c.booted = true
	c.mu.Unlock()

	c.notify(from, domain.StateAuthenticated, reason, &next)
	return nil
}

// Logout forgets the identity and removes both credential entries. Calling it
// on an anonymous container is harmless.
func (c *Container) Logout(ctx context.Context) error {
	return c.logout(ctx, domain.ReasonLogout)
}

// Expire is Logout for a session the HR backend no longer accepts.
func (c *Container) Expire(ctx context.Context) error {
	return c.logout(ctx, domain.ReasonExpired)
}

func (c *Container) logout(ctx context.Context, reason domain.ChangeReason) error {
	c.mu.Lock()
	err := c.store.Delete(ctx, ports.KeyToken, ports.KeyUser)
	from := c.stateLocked()
	c.identity = nil
	c.booted = true
	c.mu.Unlock()

	if from == domain.StateAuthenticated {
		c.notify(from, domain.StateAnonymous, reason, nil)
	}
	if err != nil {
		return fmt.Errorf("logout: clear credentials: %w", err)
	}
	return nil
}

// moveTo hands the credentials of c over to dst, a container of a new
// session id, and leaves c anonymous. Listeners are not notified: the
// principal is unchanged, only the session id is.
func (c *Container) moveTo(ctx context.Context, dst *Container) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity != nil {
		token, ok, err := c.store.Get(ctx, ports.KeyToken)
		if err != nil {
			return fmt.Errorf("renew session: read token: %w", err)
		}
		if ok {
			raw, err := json.Marshal(c.identity)
			if err != nil {
				return fmt.Errorf("renew session: encode identity: %w", err)
			}
			if err := dst.store.Put(ctx, map[string]string{
				ports.KeyToken: token,
				ports.KeyUser:  string(raw),
			}); err != nil {
				return fmt.Errorf("renew session: persist credentials: %w", err)
			}
			next := c.identity.Clone()
			dst.mu.Lock()
			dst.identity = &next
			dst.mu.Unlock()
		}
	}

	if err := c.store.Delete(ctx, ports.KeyToken, ports.KeyUser); err != nil {
		return fmt.Errorf("renew session: clear old credentials: %w", err)
	}
	c.identity = nil
	c.booted = true
	return nil
}

// CurrentIdentity returns a copy of the current identity, if any.
func (c *Container) CurrentIdentity() (domain.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return domain.Identity{}, false
	}
	return c.identity.Clone(), true
}

// State returns the current state label.
func (c *Container) State() domain.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *Container) stateLocked() domain.SessionState {
	if c.identity == nil {
		return domain.StateAnonymous
	}
	return domain.StateAuthenticated
}

// Subscribe registers l for future changes and returns a function removing it.
func (c *Container) Subscribe(l Listener) (unsubscribe func()) {
	c.lmu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.lmu.Unlock()

	return func() {
		c.lmu.Lock()
		delete(c.listeners, id)
		c.lmu.Unlock()
	}
}

func (c *Container) notify(from, to domain.SessionState, reason domain.ChangeReason, identity *domain.Identity) {
	c.lmu.Lock()
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.lmu.Unlock()

	change := domain.SessionChange{
		SessionID: c.id,
		From:      from,
		To:        to,
		Reason:    reason,
		At:        time.Now().UTC(),
	}
	for _, l := range ls {
		if identity != nil {
			cp := identity.Clone()
			change.Identity = &cp
		}
		l(change)
	}
}
