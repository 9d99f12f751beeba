// Package store provides the in-memory storefront state and its catalog sources.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/domain"
)

// MemoryCatalog is a thread-safe read-only domain.Catalog held in memory.
// List returns products in the order they were loaded unless a sort is requested.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// compile-time assertion that MemoryCatalog implements domain.Catalog
var _ domain.Catalog = (*MemoryCatalog)(nil)

// NewMemoryCatalog validates products and builds a catalog from them.
func NewMemoryCatalog(products []domain.Product) (*MemoryCatalog, error) {
	c := &MemoryCatalog{
		products: make(map[string]domain.Product, len(products)),
		order:    make([]string, 0, len(products)),
	}
	for _, p := range products {
		if err := domain.ValidateProduct(p); err != nil {
			return nil, err
		}
		if _, exists := c.products[p.ID]; exists {
			return nil, domain.NewDuplicateProductError(p.ID)
		}
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// NewDefaultCatalog returns a MemoryCatalog holding DefaultProducts.
func NewDefaultCatalog() *MemoryCatalog {
	c, err := NewMemoryCatalog(DefaultProducts())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultProducts is the storefront's built-in product line.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Wireless Headphones",
			Price:       decimal.RequireFromString("99.99"),
			Description: "Premium wireless headphones with noise cancellation",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
		},
		{
			ID:          "2",
			Name:        "Smart Watch",
			Price:       decimal.RequireFromString("199.99"),
			Description: "Feature-rich smartwatch with health tracking",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30",
		},
		{
			ID:          "3",
			Name:        "Bluetooth Speaker",
			Price:       decimal.RequireFromString("79.99"),
			Description: "Portable Bluetooth speaker with deep bass",
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1",
		},
		{
			ID:          "4",
			Name:        "Laptop Backpack",
			Price:       decimal.RequireFromString("49.99"),
			Description: "Durable laptop backpack with multiple compartments",
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62",
		},
		{
			ID:          "5",
			Name:        "Wireless Charger",
			Price:       decimal.RequireFromString("29.99"),
			Description: "Fast wireless charger for smartphones",
			Image:       "https://images.unsplash.com/photo-1583394838336-acd977736f90",
		},
	}
}

func (c *MemoryCatalog) Get(ctx context.Context, id string) (domain.Product, error) {
	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	default:
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError(domain.KindProduct, id)
	}
	return p, nil
}

func (c *MemoryCatalog) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.products[id]
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	desc := filter.Order == "desc"
	switch filter.SortBy {
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Name > out[j].Name
			}
			return out[i].Name < out[j].Name
		})
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Price.GreaterThan(out[j].Price)
			}
			return out[i].Price.LessThan(out[j].Price)
		})
	}

	return out, nil
}
