package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository stores each user's cart as a single JSON blob in Redis.
// The blob is the authoritative copy; callers hold only possibly-stale reads.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisCartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func (r *redisCartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	key := r.getKey(userID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// No cart found
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *redisCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	key := r.getKey(cart.UserID)
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *redisCartRepository) DeleteCart(ctx context.Context, userID string) error {
	key := r.getKey(userID)
	return r.client.Del(ctx, key).Err()
}
