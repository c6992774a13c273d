// Package memory keeps session credentials in process memory. It backs
// SESSION_STORE=memory for local development and single-instance setups.
package memory

import (
	"context"
	"sync"

	"github.com/Witch19/rrhh-console/internal/core/ports"
)

// CredentialStore holds the entries of every session in a map.
type CredentialStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewCredentialStore returns an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{sessions: make(map[string]map[string]string)}
}

// Open returns the view of one session.
func (s *CredentialStore) Open(sessionID string) ports.CredentialStore {
	return &sessionStore{parent: s, sessionID: sessionID}
}

// Ping always succeeds.
func (s *CredentialStore) Ping(context.Context) error { return nil }

// Len returns the number of sessions holding at least one entry.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

type sessionStore struct {
	parent    *CredentialStore
	sessionID string
}

func (s *sessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()
	v, ok := s.parent.sessions[s.sessionID][key]
	return v, ok, nil
}

func (s *sessionStore) Put(_ context.Context, entries map[string]string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	m, ok := s.parent.sessions[s.sessionID]
	if !ok {
		m = make(map[string]string, len(entries))
		s.parent.sessions[s.sessionID] = m
	}
	for k, v := range entries {
		m[k] = v
	}
	return nil
}

func (s *sessionStore) Delete(_ context.Context, keys ...string) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	m, ok := s.parent.sessions[s.sessionID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(s.parent.sessions, s.sessionID)
	}
	return nil
}
