package service

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService on top of a cart.Store.
type cartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store cart.Store, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		store:       store,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, cartID uuid.UUID) (*model.CartResponse, error) {
	items, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return newCartResponse(cartID, items), nil
}

// AddItem rejects unknown and out-of-stock products without touching the cart.
func (s *cartService) AddItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.InStock() {
		s.logger.Debug().Str("product_id", productID.String()).Msg("rejected out of stock product")
		return nil, model.ErrOutOfStock
	}

	items, err := s.store.Add(ctx, cartID, cart.ItemFromProduct(product))
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return newCartResponse(cartID, items), nil
}

func (s *cartService) UpdateItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*model.CartResponse, error) {
	items, err := s.store.SetQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return newCartResponse(cartID, items), nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartResponse, error) {
	items, err := s.store.Remove(ctx, cartID, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to remove cart item")
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return newCartResponse(cartID, items), nil
}

func (s *cartService) Clear(ctx context.Context, cartID uuid.UUID) error {
	if err := s.store.Clear(ctx, cartID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// newCartResponse builds the cart view. Shipping is always free.
func newCartResponse(cartID uuid.UUID, items []model.CartItem) *model.CartResponse {
	if items == nil {
		items = []model.CartItem{}
	}
	subtotal := cart.Subtotal(items)
	return &model.CartResponse{
		CartID:   cartID,
		Items:    items,
		Count:    cart.Count(items),
		Subtotal: subtotal,
		Shipping: decimal.Zero,
		Total:    subtotal,
	}
}
