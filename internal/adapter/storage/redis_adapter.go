package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

const (
	cartKeyPrefix     = "cart:"
	idempotencyKeyTTL = 24 * time.Hour
	defaultCartTTL    = 7 * 24 * time.Hour
)

type RedisAdapter struct {
	client  *redis.Client
	cartTTL time.Duration
}

// NewRedisAdapter stores carts that expire cartTTL after their last write.
// A zero cartTTL uses one week.
func NewRedisAdapter(client *redis.Client, cartTTL time.Duration) *RedisAdapter {
	if cartTTL <= 0 {
		cartTTL = defaultCartTTL
	}
	return &RedisAdapter{client: client, cartTTL: cartTTL}
}

func (r *RedisAdapter) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	return lines, nil
}

func (r *RedisAdapter) SaveCart(ctx context.Context, userID string, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return r.DeleteCart(ctx, userID)
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", userID, err)
	}
	return r.client.Set(ctx, cartKeyPrefix+userID, raw, r.cartTTL).Err()
}

func (r *RedisAdapter) DeleteCart(ctx context.Context, userID string) error {
	return r.client.Del(ctx, cartKeyPrefix+userID).Err()
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
