package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"undangan/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps session carts in Redis as JSON values under
// "cart:<session id>". The key TTL is refreshed on every save, so a cart
// disappears on its own once the session goes idle long enough; that is the
// only expiry mechanism the cart has.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a new instance of RedisCartStore.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisCartStore) key(sessionID string) string {
	return "cart:" + sessionID
}

// Get returns the session's cart, or an empty cart if the key is missing
// or already expired.
func (s *RedisCartStore) Get(sessionID string) (models.Cart, error) {
	val, err := s.client.Get(context.Background(), s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart for session %s: %w", sessionID, err)
	}
	return cart, nil
}

// Save stores the cart and refreshes its TTL. Saving an empty cart deletes
// the key instead of keeping an empty value around.
func (s *RedisCartStore) Save(sessionID string, cart models.Cart) error {
	if cart.IsEmpty() {
		return s.Clear(sessionID)
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart for session %s: %w", sessionID, err)
	}
	if err := s.client.Set(context.Background(), s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}
	return nil
}

// Clear removes the session's cart.
func (s *RedisCartStore) Clear(sessionID string) error {
	if err := s.client.Del(context.Background(), s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}
	return nil
}
