package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore keeps each cart as one JSONB row in the carts table.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a database-row cart store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "postgres-cart-store").Logger(),
	}
}

// Get returns the cart lines. Missing or unreadable carts read as empty.
func (s *postgresStore) Get(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	items, err := s.read(ctx, s.pool, cartID, false)
	if err != nil {
		s.logger.Warn().Err(err).Str("cart_id", cartID.String()).Msg("failed to read cart, treating as empty")
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *postgresStore) Add(ctx context.Context, cartID uuid.UUID, product model.CartItem) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return Add(items, product)
	})
}

func (s *postgresStore) Remove(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return Remove(items, productID)
	})
}

func (s *postgresStore) SetQuantity(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) ([]model.CartItem, error) {
	return s.update(ctx, cartID, func(items []model.CartItem) []model.CartItem {
		return SetQuantity(items, productID, quantity)
	})
}

func (s *postgresStore) Clear(ctx context.Context, cartID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// update locks the cart row for the duration of the read-modify-write.
func (s *postgresStore) update(ctx context.Context, cartID uuid.UUID, fn func([]model.CartItem) []model.CartItem) (result []model.CartItem, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	items, err := s.read(ctx, tx, cartID, true)
	if err != nil {
		return nil, err
	}
	result = fn(items)

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}

	query := `
		INSERT INTO carts (id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`
	if _, err = tx.Exec(ctx, query, cartID, data); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to commit cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return result, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *postgresStore) read(ctx context.Context, q querier, cartID uuid.UUID, lock bool) ([]model.CartItem, error) {
	query := `SELECT items FROM carts WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	var data []byte
	err := q.QueryRow(ctx, query, cartID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}
