// Package domain defines core business types and interfaces.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

// ListFilter allows filtering and sorting results from List
type ListFilter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // "name", "price"
	Order    string // "asc" or "desc"
}

// Catalog is the read-only product lookup the store resolves cart additions against.
type Catalog interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
}

// ValidateProduct checks the fields a catalog entry must satisfy.
func ValidateProduct(p Product) error {
	if p.ID == "" {
		return NewInvalidProductError("id", "cannot be empty", p.ID)
	}
	if p.Name == "" {
		return NewInvalidProductError("name", "cannot be empty", p.Name)
	}
	if p.Price.IsNegative() {
		return NewInvalidProductError("price", "must be non-negative", p.Price)
	}
	return nil
}
