package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals is the priced view of a list of line items.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// DiscountLookup resolves a discount code by its exact string.
type DiscountLookup interface {
	Lookup(code string) (DiscountCode, bool)
}

// ComputeTotals prices items and applies code when lookup finds it unused.
// It never redeems the code.
func ComputeTotals(items []CartLineItem, code string, lookup DiscountLookup) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	discount := decimal.Zero
	if code != "" && lookup != nil {
		if dc, ok := lookup.Lookup(code); ok && !dc.Used {
			discount = subtotal.Mul(dc.Percentage).Div(hundred)
		}
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}
}
