package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
	"member/internal/errors"
)

// revocationStore implements service.RevocationStore on a redis client.
// Each operation is a single-key command, matching the atomicity the session
// layer assumes. Any transport failure surfaces as ErrStoreUnavailable so
// token validation fails closed.
type revocationStore struct {
	client *redis.Client
}

// NewRevocationStore is the constructor for revocationStore.
func NewRevocationStore(client *redis.Client) service.RevocationStore {
	return &revocationStore{client: client}
}

// Put writes a key with TTL, overwriting any previous value.
func (s *revocationStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage("redis SET failed")
	}

	return nil
}

// Get reads a key. A missing or expired key yields service.ErrKeyAbsent.
func (s *revocationStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", service.ErrKeyAbsent
		}

		return "", domainerrors.ErrStoreUnavailable.WrapMessage("redis GET failed")
	}

	return value, nil
}

// Delete removes a key. Deleting an absent key is a no-op success.
func (s *revocationStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return domainerrors.ErrStoreUnavailable.WrapMessage("redis DEL failed")
	}

	return nil
}
