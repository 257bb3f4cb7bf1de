// Package session implements an in-memory store of opaque bearer tokens.
//
// Tokens have no expiry: one stays valid until it is explicitly revoked
// or the process restarts. A real deployment would add a TTL here; the
// store's interface leaves room for that without touching callers.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
)

// tokenBytes is the entropy of a session token before encoding.
const tokenBytes = 32

// Manager issues, resolves, and revokes opaque session tokens.
// A token maps to the owning user's email; the mapping is not a claim
// that the user still exists — callers re-check the credential store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]string // token -> owner email
}

// NewManager creates an empty session store.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]string),
	}
}

// Create issues a fresh unguessable token for email and records it.
// There is no limit on concurrent sessions per user.
func (m *Manager) Create(email string) (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(b)

	m.mu.Lock()
	m.sessions[token] = email
	m.mu.Unlock()

	return token, nil
}

// Lookup returns the email a token was issued for.
func (m *Manager) Lookup(token string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email, ok := m.sessions[token]
	return email, ok
}

// Revoke removes a token. Revoking an unknown or already-revoked token
// is a no-op.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
