// Package session implements an explicit session-token store.
//
// Tokens are opaque UUIDs mapped to user IDs. The primary backend is Redis;
// when Redis is unavailable the store degrades to an in-process map so local
// development keeps working.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TTL is how long a session stays valid without being re-established.
const TTL = 7 * 24 * time.Hour

// CookieName is the session cookie used by the HTTP layer.
const CookieName = "quill_session"

// ErrNotFound is returned when a token does not resolve to a session.
var ErrNotFound = errors.New("session not found")

// Store creates, resolves and destroys session tokens.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
}

func key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// NewStore returns a Redis-backed store, or an in-memory one when rdb is nil.
func NewStore(rdb *redis.Client) Store {
	if rdb == nil {
		return newMemoryStore()
	}
	return &redisStore{rdb: rdb}
}

type redisStore struct {
	rdb *redis.Client
}

func (s *redisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	err := s.rdb.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), TTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (uint, error) {
	val, err := s.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(userID), nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, key(token)).Err()
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]memorySession)}
}

func (s *memoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(TTL)}
	return token, nil
}

func (s *memoryStore) Get(_ context.Context, token string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, ErrNotFound
	}
	return sess.userID, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
