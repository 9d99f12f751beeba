package store

import "storefront/domain"

// CartLedger holds the active cart's line items in insertion order, at most one
// per product id. It is not safe for concurrent use; Store serializes access.
type CartLedger struct {
	items []domain.CartLineItem
}

// NewCartLedger returns an empty cart.
func NewCartLedger() *CartLedger {
	return &CartLedger{}
}

func (c *CartLedger) indexOf(productID string) int {
	for i, it := range c.items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p by quantity, appending a new line when p is not
// yet in the cart. quantity must be at least 1.
func (c *CartLedger) Add(p domain.Product, quantity int) ([]domain.CartLineItem, error) {
	if quantity < 1 {
		return nil, domain.NewInvalidQuantityError(quantity)
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, domain.CartLineItem{Product: p, Quantity: quantity})
	}
	return c.Items(), nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity of zero
// or less removes the line.
func (c *CartLedger) SetQuantity(productID string, quantity int) ([]domain.CartLineItem, error) {
	i := c.indexOf(productID)
	if i < 0 {
		return nil, domain.NewNotFoundError(domain.KindCartItem, productID)
	}
	if quantity <= 0 {
		c.removeAt(i)
	} else {
		c.items[i].Quantity = quantity
	}
	return c.Items(), nil
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *CartLedger) Remove(productID string) []domain.CartLineItem {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
	return c.Items()
}

func (c *CartLedger) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// Clear empties the cart.
func (c *CartLedger) Clear() []domain.CartLineItem {
	c.items = nil
	return c.Items()
}

// Items returns a copy of the line items. The result is never nil.
func (c *CartLedger) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of distinct lines.
func (c *CartLedger) Len() int {
	return len(c.items)
}
