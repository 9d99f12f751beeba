package httpapi

import "storefront/domain"

// AddItemRequest is the body of POST /cart/items. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// UpdateItemRequest is the body of PUT /cart/items/{id}.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// ValidateDiscountRequest is the body of POST /discounts/validate.
type ValidateDiscountRequest struct {
	Code string `json:"code"`
}

// ValidateDiscountResponse reports the validity of a code.
type ValidateDiscountResponse struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

// CheckoutRequest is the optional body of POST /checkout.
type CheckoutRequest struct {
	DiscountCode string `json:"discount_code,omitempty"`
}

// CartResponse is returned by every cart endpoint.
type CartResponse struct {
	Items  []domain.CartLineItem `json:"items"`
	Totals domain.Totals         `json:"totals"`
}

// ErrorResponse carries a machine-readable error code and a message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
