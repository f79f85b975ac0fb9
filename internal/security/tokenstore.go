package security

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore remembers which token ids are still signed in
type TokenStore interface {
	Register(ctx context.Context, tokenID, uid string, ttl time.Duration) error
	Lookup(ctx context.Context, tokenID string) (uid string, ok bool, err error)
	Revoke(ctx context.Context, tokenID string) error
}

// tokenPruneInterval spaces out the expired-token sweeps run by Register
const tokenPruneInterval = time.Minute

// MemoryTokenStore keeps token ids in process memory. Expired ids are dropped on
// lookup and swept at most once per tokenPruneInterval on Register.
type MemoryTokenStore struct {
	mu         sync.Mutex
	tokens     map[string]memoryToken
	now        func() time.Time
	lastPruned time.Time
}

type memoryToken struct {
	uid       string
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken), now: time.Now}
}

func (s *MemoryTokenStore) Register(ctx context.Context, tokenID, uid string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastPruned) >= tokenPruneInterval {
		for id, t := range s.tokens {
			if !now.Before(t.expiresAt) {
				delete(s.tokens, id)
			}
		}
		s.lastPruned = now
	}
	s.tokens[tokenID] = memoryToken{uid: uid, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Lookup(ctx context.Context, tokenID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenID]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(t.expiresAt) {
		delete(s.tokens, tokenID)
		return "", false, nil
	}
	return t.uid, true, nil
}

func (s *MemoryTokenStore) Revoke(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenID)
	return nil
}

// RedisTokenStore keeps token ids as expiring redis keys so several API replicas
// share sign-outs
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func tokenKey(tokenID string) string {
	return "bytebabies:token:" + tokenID
}

func (s *RedisTokenStore) Register(ctx context.Context, tokenID, uid string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(tokenID), uid, ttl).Err()
}

func (s *RedisTokenStore) Lookup(ctx context.Context, tokenID string) (string, bool, error) {
	uid, err := s.client.Get(ctx, tokenKey(tokenID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return uid, true, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, tokenKey(tokenID)).Err()
}
