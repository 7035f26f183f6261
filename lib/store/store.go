// Package store keeps override snapshot tokens server-side so requests can
// carry a short key instead of the token itself.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown or expired keys.
var ErrNotFound = errors.New("store: snapshot not found")

// Store saves tokens under content-derived keys.
type Store interface {
	// Put stores token and returns its key. Equal tokens get equal keys.
	Put(ctx context.Context, token string) (string, error)
	// Get returns the token stored under key.
	Get(ctx context.Context, key string) (string, error)
}

// Key derives the key for token: a URL-safe SHA-256 prefix.
func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:12])
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Put(_ context.Context, token string) (string, error) {
	key := Key(token)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = make(map[string]string)
	}
	m.tokens[key] = token
	return key, nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[key]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

// Len returns the number of stored tokens.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}
