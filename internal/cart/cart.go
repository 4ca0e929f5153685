package cart

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store persists carts keyed by a stable cart ID.
// Get never fails for an unknown cart: it returns an empty list.
type Store interface {
	// Get returns the current cart lines.
	Get(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)

	// Add increments the line for product or appends it with quantity one.
	Add(ctx context.Context, cartID uuid.UUID, product model.CartItem) ([]model.CartItem, error)

	// Remove drops the line with the given product ID, if present.
	Remove(ctx context.Context, cartID uuid.UUID, productID uuid.UUID) ([]model.CartItem, error)

	// SetQuantity sets a line quantity; quantity <= 0 removes the line.
	SetQuantity(ctx context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) ([]model.CartItem, error)

	// Clear deletes the persisted cart entirely.
	Clear(ctx context.Context, cartID uuid.UUID) error
}

// Add returns items with product added: an existing line is incremented by
// one, otherwise a new line with quantity one is appended.
func Add(items []model.CartItem, product model.CartItem) []model.CartItem {
	out := clone(items)
	for i := range out {
		if out[i].ID == product.ID {
			out[i].Quantity++
			return out
		}
	}
	product.Quantity = 1
	return append(out, product)
}

// Remove returns items without the line for id.
func Remove(items []model.CartItem, id uuid.UUID) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// SetQuantity returns items with the line for id set to quantity.
// A quantity of zero or less removes the line instead.
func SetQuantity(items []model.CartItem, id uuid.UUID, quantity int) []model.CartItem {
	if quantity <= 0 {
		return Remove(items, id)
	}
	out := clone(items)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// Subtotal sums price × quantity over items, rounded to cents.
func Subtotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// Count sums the quantities over items.
func Count(items []model.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// ItemFromProduct snapshots the product fields a cart line keeps.
func ItemFromProduct(p *model.Product) model.CartItem {
	return model.CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}

func clone(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}
