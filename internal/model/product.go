package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents an item in the catalogue.
// CategoryID is a weak reference: it may point at a deleted category.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CategoryID  *uuid.UUID      `json:"categoryId" db:"category_id"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductDetail is a product together with its category, when it resolves.
type ProductDetail struct {
	Product
	Category *Category `json:"category,omitempty"`
}

// ProductRequest is the admin payload for creating or updating a product.
// Price and Stock are pointers so an omitted field is distinguishable from zero.
type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	ImageURL    string           `json:"imageUrl"`
	Stock       *int             `json:"stock"`
}

// ProductFilter narrows a product list in memory.
type ProductFilter struct {
	CategoryID *uuid.UUID
	PriceRange PriceRange
}

// PriceRange is one of the storefront price brackets.
type PriceRange string

const (
	PriceAll      PriceRange = "all"
	PriceUnder50  PriceRange = "under-50"
	Price50To100  PriceRange = "50-100"
	Price100To500 PriceRange = "100-500"
	PriceOver500  PriceRange = "over-500"
)

var (
	fifty       = decimal.NewFromInt(50)
	oneHundred  = decimal.NewFromInt(100)
	fiveHundred = decimal.NewFromInt(500)
)

// Valid reports whether r is a known bracket. The empty value means all.
func (r PriceRange) Valid() bool {
	switch r {
	case "", PriceAll, PriceUnder50, Price50To100, Price100To500, PriceOver500:
		return true
	}
	return false
}

// Contains reports whether price falls inside the bracket.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	switch r {
	case PriceUnder50:
		return price.LessThan(fifty)
	case Price50To100:
		return price.GreaterThanOrEqual(fifty) && price.LessThan(oneHundred)
	case Price100To500:
		return price.GreaterThanOrEqual(oneHundred) && price.LessThan(fiveHundred)
	case PriceOver500:
		return price.GreaterThanOrEqual(fiveHundred)
	default:
		return true
	}
}
