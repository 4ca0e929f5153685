package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxWatchRetries bounds optimistic retries when another writer touched the cart.
const maxWatchRetries = 5

// ErrConcurrentUpdate is returned when a cart kept changing under WATCH.
var ErrConcurrentUpdate = errors.New("cart modified concurrently")

// redisStore keeps each cart as a JSON list under a single key.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store. A zero ttl keeps carts forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With().Str("component", "redis-cart-store").Logger(),
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Get returns the cart lines. Missing, unreadable or corrupt carts read as empty.
func (s *redisStore) Get(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	items, err := s.read(ctx, s.client, s.key(cartID))
	if err != nil {
		s.logger.Warn().Err(err).Str("cart_id", cartID.String()).Msg("failed to read cart, treating as empty")
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *redisStore) Add(ctx context.Context, cartID uuid.UUID, product model.CartItem) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return Add(items, product)
	})
}

func (s *redisStore) Remove(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return Remove(items, productID)
	})
}

func (s *redisStore) SetQuantity(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return SetQuantity(items, productID, quantity)
	})
}

func (s *redisStore) Clear(ctx context.Context, cartID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// update runs a read-modify-write under WATCH and retries on conflict.
func (s *redisStore) update(ctx context.Context, cartID uuid.UUID, fn func([]model.CartItem) []model.CartItem) ([]model.CartItem, error) {
	key := s.key(cartID)
	var result []model.CartItem

	txf := func(tx *redis.Tx) error {
		items, err := s.read(ctx, tx, key)
		if err != nil {
			return err
		}
		result = fn(items)

		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			s.logger.Debug().
				Str("cart_id", cartID.String()).
				Int("attempt", attempt+1).
				Msg("cart changed during update, retrying")
			continue
		}
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to update cart")
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}

	return nil, ErrConcurrentUpdate
}

func (s *redisStore) read(ctx context.Context, g getter, key string) ([]model.CartItem, error) {
	val, err := g.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt cart payload, starting empty")
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *redisStore) key(cartID uuid.UUID) string {
	if s.prefix == "" {
		return cartID.String()
	}
	return fmt.Sprintf("%s:%s", s.prefix, cartID)
}
