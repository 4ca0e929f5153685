package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Create adds a category, deriving the slug from the name when none is given.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// Update replaces a category's name and slug.
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category. Products keep their dangling reference.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves all products, newest first, narrowed by filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetDetail retrieves a product together with its category, when it resolves.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error)

	// Create adds a product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update replaces the editable fields of a product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService defines operations on a session's cart.
type CartService interface {
	// Get returns the cart view. Unknown carts are empty.
	Get(ctx context.Context, cartID uuid.UUID) (*model.CartResponse, error)

	// AddItem adds one unit of an in-stock product.
	AddItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartResponse, error)

	// UpdateItem sets a line quantity; zero or less removes the line.
	UpdateItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*model.CartResponse, error)

	// RemoveItem drops a line.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartResponse, error)

	// Clear empties the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// Checkout turns the cart into a pending order and clears the cart.
	Checkout(ctx context.Context, cartID uuid.UUID, req *model.CheckoutRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// GetForCart retrieves an order only if it was checked out from cartID.
	GetForCart(ctx context.Context, id, cartID uuid.UUID) (*model.OrderResponse, error)

	// List retrieves all order headers, newest first.
	List(ctx context.Context) ([]model.Order, error)

	// UpdateStatus sets the status of an order to any known value.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}
