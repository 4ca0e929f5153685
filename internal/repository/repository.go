package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAll retrieves all categories ordered by name.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category. Returns nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetBySlug retrieves the first category with the given slug, or nil.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// Update replaces name and slug. Returns ErrCategoryNotFound for unknown IDs.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes a category. Products referencing it are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist in the database.
	// Returns error if any product ID does not exist.
	ValidateProductsExist(ctx context.Context, ids []uuid.UUID) error

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the editable product fields. Returns ErrProductNotFound for unknown IDs.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns ErrProductNotFound for unknown IDs.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetAll retrieves all order headers, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus sets the order status. Returns ErrOrderNotFound for unknown IDs.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}
