package auth

import (
	"context"
	"time"

	"talent-board/internal/infrastructure/cache"
)

// RedisChallengeStore keeps login nonces in redis. It inherits the
// cache wrapper's bypass behavior: with redis down, Put succeeds as a
// no-op and Consume always misses.
type RedisChallengeStore struct {
	cache *cache.Redis
}

func NewRedisChallengeStore(c *cache.Redis) *RedisChallengeStore {
	return &RedisChallengeStore{cache: c}
}

func challengeKey(address string) string {
	return "auth:challenge:" + address
}

func (s *RedisChallengeStore) Put(ctx context.Context, address, message string, ttl time.Duration) error {
	if s == nil || s.cache == nil {
		return nil
	}
	return s.cache.SetJSON(ctx, challengeKey(address), message, ttl)
}

func (s *RedisChallengeStore) Consume(ctx context.Context, address string) (string, bool) {
	if s == nil || s.cache == nil {
		return "", false
	}
	var message string
	found, err := s.cache.GetDel(ctx, challengeKey(address), &message)
	if err != nil || !found {
		return "", false
	}
	return message, true
}
