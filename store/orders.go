package store

import "storefront/domain"

// OrderLedger is the append-only history of placed orders.
// It is not safe for concurrent use; Store serializes access.
type OrderLedger struct {
	orders []domain.Order
}

// NewOrderLedger returns an empty ledger.
func NewOrderLedger() *OrderLedger {
	return &OrderLedger{}
}

// Append records o as the newest order and returns the ledger length.
func (l *OrderLedger) Append(o domain.Order) int {
	l.orders = append(l.orders, o)
	return len(l.orders)
}

// List returns every order in creation order.
func (l *OrderLedger) List() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// FindByID returns the order with the given id.
func (l *OrderLedger) FindByID(id string) (domain.Order, error) {
	for _, o := range l.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return domain.Order{}, domain.NewNotFoundError(domain.KindOrder, id)
}

// Len reports the number of orders placed.
func (l *OrderLedger) Len() int {
	return len(l.orders)
}

// cloneOrder copies the line item slice so callers cannot reach ledger storage.
func cloneOrder(o domain.Order) domain.Order {
	items := make([]domain.CartLineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
