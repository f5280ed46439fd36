package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/eiasinprodhan/luxury-real-estate/models"
)

const (
	sessionPrefix  = "checkoutSession:"
	initLockPrefix = "checkoutInitLock:"

	// Sessions expire like the booking sessions they replace; abandoned
	// intents are the platform's responsibility, not cleaned up here.
	sessionTTL  = 30 * time.Minute
	initLockTTL = 30 * time.Second
)

// SessionStore persists checkout sessions for their short lifetime and owns
// the per-session initialization lock (the "busy flag"): at most one
// payment-intent initialization may be in flight per session.
type SessionStore interface {
	Save(ctx context.Context, session *models.CheckoutSession) error
	Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	Delete(ctx context.Context, sessionID string) error

	// AcquireInitLock returns false when another initialization holds the
	// lock. Callers that get false must reject, not queue.
	AcquireInitLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseInitLock(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON values with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.CheckoutSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, NewSessionExpiredError()
		}
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionPrefix+sessionID).Err()
}

func (s *RedisSessionStore) AcquireInitLock(ctx context.Context, sessionID string) (bool, error) {
	return s.Client.SetNX(ctx, initLockPrefix+sessionID, "1", initLockTTL).Result()
}

func (s *RedisSessionStore) ReleaseInitLock(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, initLockPrefix+sessionID).Err()
}

// MemorySessionStore is the in-process SessionStore used by tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
	locks    map[string]bool
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string][]byte),
		locks:    make(map[string]bool),
	}
}

func (s *MemorySessionStore) Save(ctx context.Context, session *models.CheckoutSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = data
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	s.mu.Lock()
	data, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, NewSessionExpiredError()
	}
	var session models.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemorySessionStore) AcquireInitLock(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[sessionID] {
		return false, nil
	}
	s.locks[sessionID] = true
	return true, nil
}

func (s *MemorySessionStore) ReleaseInitLock(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sessionID)
	return nil
}
