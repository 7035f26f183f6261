// Package redis implements store.Store on Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/pthm/hxslot/lib/store"
)

// Store keeps snapshot tokens in Redis under a key prefix.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration for stored snapshots. Each Put refreshes it.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for snapshots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "hxslot:snapshot:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Put stores token under its content key.
func (s *Store) Put(ctx context.Context, token string) (string, error) {
	key := store.Key(token)
	if err := s.client.Set(ctx, s.key(key), token, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return key, nil
}

// Get returns the token stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	token, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to load snapshot: %w", err)
	}
	return token, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
