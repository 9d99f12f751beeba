package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem pairs a product with a quantity. The product is held by value
// so copying a slice of line items yields an independent snapshot.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DiscountCode is a single-use percentage discount.
type DiscountCode struct {
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"percentage"`
	Used       bool            `json:"used"`
}

// Order is the immutable record produced by a successful checkout.
// DiscountCode is empty when no code was applied.
type Order struct {
	ID             string          `json:"id"`
	Items          []CartLineItem  `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountCode   string          `json:"discount_code,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ItemCount returns the number of units across all line items.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// AdminStats is the reporting rollup over orders and discount codes.
type AdminStats struct {
	TotalItemsPurchased int             `json:"total_items_purchased"`
	TotalPurchaseAmount decimal.Decimal `json:"total_purchase_amount"`
	TotalDiscountAmount decimal.Decimal `json:"total_discount_amount"`
	DiscountCodes       []DiscountCode  `json:"discount_codes"`
}
