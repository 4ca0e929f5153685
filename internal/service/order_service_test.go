package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// failingClearStore behaves like a memory store whose Clear always fails.
type failingClearStore struct {
	cart.Store
}

func (failingClearStore) Clear(context.Context, uuid.UUID) error {
	return errors.New("store unavailable")
}

func validCheckout() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "555-0100",
		ShippingAddress: "1 Analytical Way",
	}
}

// fillCart puts p1 10.00 x2 and p2 5.50 x1 into a fresh cart.
func fillCart(t *testing.T, store cart.Store) (uuid.UUID, model.Product, model.Product) {
	t.Helper()
	ctx := context.Background()
	cartID := uuid.New()
	p1 := product("Notebook", "10.00", nil, 10)
	p2 := product("Pen", "5.50", nil, 10)

	for _, item := range []model.Product{p1, p1, p2} {
		_, err := store.Add(ctx, cartID, cart.ItemFromProduct(&item))
		require.NoError(t, err)
	}
	return cartID, p1, p2
}

func TestOrderService_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	cartID, p1, p2 := fillCart(t, store)

	productRepo := new(MockProductRepository)
	productRepo.On("ValidateProductsExist", ctx, []uuid.UUID{p1.ID, p2.ID}).Return(nil)

	mockTx := new(MockTx)
	mockTx.On("Commit", ctx).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	orderRepo.On("CreateOrder", ctx, mockTx, mock.MatchedBy(func(o *model.Order) bool {
		return o.Status == model.StatusPending &&
			o.TotalAmount.StringFixed(2) == "25.50" &&
			o.CustomerName == "Ada Lovelace" &&
			o.CartID != nil && *o.CartID == cartID
	})).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, mockTx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].Quantity == 2 && items[1].Quantity == 1
	})).Return(nil)

	svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())

	req := validCheckout()
	req.CustomerName = "  Ada Lovelace  "
	resp, err := svc.Checkout(ctx, cartID, req)

	require.NoError(t, err)
	assert.Equal(t, "25.50", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, model.StatusPending, resp.Status)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Notebook", resp.Items[0].ProductName)
	assert.Equal(t, "10.00", resp.Items[0].Price.StringFixed(2))
	for _, item := range resp.Items {
		assert.Equal(t, resp.ID, item.OrderID)
	}

	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)

	remaining, err := store.Get(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_MissingField(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *model.CheckoutRequest)
		field  string
	}{
		{name: "name", mutate: func(r *model.CheckoutRequest) { r.CustomerName = "" }, field: "customerName"},
		{name: "email whitespace", mutate: func(r *model.CheckoutRequest) { r.CustomerEmail = "   " }, field: "customerEmail"},
		{name: "phone", mutate: func(r *model.CheckoutRequest) { r.CustomerPhone = "" }, field: "customerPhone"},
		{name: "address", mutate: func(r *model.CheckoutRequest) { r.ShippingAddress = "\n" }, field: "shippingAddress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := cart.NewMemoryStore()
			cartID, _, _ := fillCart(t, store)
			orderRepo := new(MockOrderRepository)
			productRepo := new(MockProductRepository)

			req := validCheckout()
			tt.mutate(req)

			svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())
			_, err := svc.Checkout(ctx, cartID, req)

			assert.ErrorIs(t, err, model.ErrMissingField)
			assert.EqualError(t, err, tt.field+" is required")
			orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
			productRepo.AssertNotCalled(t, "ValidateProductsExist", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)

	svc := NewOrderService(orderRepo, productRepo, cart.NewMemoryStore(), zerolog.Nop())
	_, err := svc.Checkout(ctx, uuid.New(), validCheckout())

	assert.ErrorIs(t, err, model.ErrEmptyCart)
	orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_Checkout_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	cartID, _, _ := fillCart(t, store)

	productRepo := new(MockProductRepository)
	productRepo.On("ValidateProductsExist", ctx, mock.Anything).Return(model.ErrProductsNotFound)
	orderRepo := new(MockOrderRepository)

	svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())
	_, err := svc.Checkout(ctx, cartID, validCheckout())

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.EqualError(t, err, "One or more products not found")
	orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)

	items, err := store.Get(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestOrderService_Checkout_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	cartID, _, _ := fillCart(t, store)

	productRepo := new(MockProductRepository)
	productRepo.On("ValidateProductsExist", ctx, mock.Anything).Return(nil)

	mockTx := new(MockTx)
	mockTx.On("Rollback", ctx).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	orderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(errors.New("insert failed"))

	svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())
	resp, err := svc.Checkout(ctx, cartID, validCheckout())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)

	items, err := store.Get(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, items, 2, "cart survives a failed checkout")
}

func TestOrderService_Checkout_CommitFailure(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	cartID, _, _ := fillCart(t, store)

	productRepo := new(MockProductRepository)
	productRepo.On("ValidateProductsExist", ctx, mock.Anything).Return(nil)

	mockTx := new(MockTx)
	mockTx.On("Commit", ctx).Return(errors.New("serialization failure"))
	mockTx.On("Rollback", ctx).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	orderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(nil)

	svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())
	_, err := svc.Checkout(ctx, cartID, validCheckout())

	require.Error(t, err)
	assert.True(t, mockTx.rolledBack)

	items, err := store.Get(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestOrderService_Checkout_ClearFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	store := failingClearStore{Store: cart.NewMemoryStore()}
	cartID, _, _ := fillCart(t, store)

	productRepo := new(MockProductRepository)
	productRepo.On("ValidateProductsExist", ctx, mock.Anything).Return(nil)

	mockTx := new(MockTx)
	mockTx.On("Commit", ctx).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	orderRepo.On("CreateOrder", ctx, mockTx, mock.Anything).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, mockTx, mock.Anything).Return(nil)

	svc := NewOrderService(orderRepo, productRepo, store, zerolog.Nop())
	resp, err := svc.Checkout(ctx, cartID, validCheckout())

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.False(t, mockTx.rolledBack)
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	missing := uuid.New()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", ctx, orderID).Return(&model.Order{ID: orderID, Status: model.StatusShipped}, []model.OrderItem{
		{ID: uuid.New(), OrderID: orderID, ProductID: uuid.New(), Quantity: 1},
	}, nil)
	orderRepo.On("GetByID", ctx, missing).Return(nil, nil, nil)

	svc := NewOrderService(orderRepo, new(MockProductRepository), cart.NewMemoryStore(), zerolog.Nop())

	resp, err := svc.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, resp.ID)
	assert.Len(t, resp.Items, 1)

	_, err = svc.GetByID(ctx, missing)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_GetForCart(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()
	owned := uuid.New()
	foreign := uuid.New()
	legacy := uuid.New()
	otherCart := uuid.New()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", ctx, owned).Return(&model.Order{ID: owned, CartID: &cartID}, []model.OrderItem{}, nil)
	orderRepo.On("GetByID", ctx, foreign).Return(&model.Order{ID: foreign, CartID: &otherCart}, []model.OrderItem{}, nil)
	orderRepo.On("GetByID", ctx, legacy).Return(&model.Order{ID: legacy}, []model.OrderItem{}, nil)

	svc := NewOrderService(orderRepo, new(MockProductRepository), cart.NewMemoryStore(), zerolog.Nop())

	tests := []struct {
		name        string
		orderID     uuid.UUID
		expectedErr error
	}{
		{name: "own order", orderID: owned},
		{name: "order from another cart", orderID: foreign, expectedErr: model.ErrOrderNotFound},
		{name: "order without a cart", orderID: legacy, expectedErr: model.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetForCart(ctx, tt.orderID, cartID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.orderID, resp.ID)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name        string
		status      model.OrderStatus
		repoErr     error
		expectedErr error
		callsRepo   bool
	}{
		{name: "backwards transition allowed", status: model.StatusPending, callsRepo: true},
		{name: "cancelled allowed", status: model.StatusCancelled, callsRepo: true},
		{name: "unknown status", status: "lost", expectedErr: model.ErrInvalidStatus},
		{name: "unknown order", status: model.StatusShipped, repoErr: model.ErrOrderNotFound, expectedErr: model.ErrOrderNotFound, callsRepo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			if tt.callsRepo {
				orderRepo.On("UpdateStatus", ctx, id, tt.status).Return(tt.repoErr)
			}

			svc := NewOrderService(orderRepo, new(MockProductRepository), cart.NewMemoryStore(), zerolog.Nop())
			err := svc.UpdateStatus(ctx, id, tt.status)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			if !tt.callsRepo {
				orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
