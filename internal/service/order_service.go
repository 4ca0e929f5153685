package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/cart"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	carts       cart.Store
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	carts cart.Store,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		carts:       carts,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Checkout validates the shipping form, writes the order header and its
// items in one transaction and clears the cart once committed.
func (s *orderService) Checkout(ctx context.Context, cartID uuid.UUID, req *model.CheckoutRequest) (*model.OrderResponse, error) {
	form, err := normaliseCheckout(req)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now().UTC()
	order := &model.Order{
		ID:              uuid.New(),
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		ShippingAddress: form.ShippingAddress,
		TotalAmount:     cart.Subtotal(lines),
		Status:          model.StatusPending,
		CreatedAt:       now,
		CartID:          &cartID,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		orderItems[i] = model.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ID,
			Quantity:    line.Quantity,
			Price:       line.Price,
			CreatedAt:   now,
			ProductName: line.Name,
			ImageURL:    line.ImageURL,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order exists from here on; a stale cart is only logged.
	if clearErr := s.carts.Clear(ctx, cartID); clearErr != nil {
		s.logger.Error().Err(clearErr).
			Str("order_id", order.ID.String()).
			Str("cart_id", cartID.String()).
			Msg("failed to clear cart after checkout")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(orderItems)).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("order created successfully")

	return &model.OrderResponse{Order: *order, Items: orderItems}, nil
}

// GetByID retrieves an order by its ID with all items and product details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	if items == nil {
		items = []model.OrderItem{}
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// GetForCart is GetByID restricted to orders checked out from cartID.
// Orders from other carts are reported as not found.
func (s *orderService) GetForCart(ctx context.Context, id, cartID uuid.UUID) (*model.OrderResponse, error) {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if resp.CartID == nil || *resp.CartID != cartID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("cart_id", cartID.String()).
			Msg("order requested from another cart")
		return nil, model.ErrOrderNotFound
	}

	return resp, nil
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus accepts any known status regardless of the current one.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		s.logger.Warn().Str("status", string(status)).Msg("rejected unknown order status")
		return model.ErrInvalidStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// normaliseCheckout trims the shipping form and names the first empty field.
func normaliseCheckout(req *model.CheckoutRequest) (*model.CheckoutRequest, error) {
	if req == nil {
		return nil, model.ErrMissingField
	}

	form := &model.CheckoutRequest{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
	}

	fields := []struct {
		name  string
		value string
	}{
		{"customerName", form.CustomerName},
		{"customerEmail", form.CustomerEmail},
		{"customerPhone", form.CustomerPhone},
		{"shippingAddress", form.ShippingAddress},
	}
	for _, f := range fields {
		if f.value == "" {
			return nil, model.MissingField(f.name)
		}
	}

	return form, nil
}
