// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
)

// Kinds of entity a NotFoundError can refer to.
const (
	KindProduct  = "product"
	KindCartItem = "cart item"
	KindOrder    = "order"
)

// NotFoundError is returned when a product, cart line item or order does not exist
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%s", e.Kind, e.ID)
}

// Is allows proper error type checking with errors.Is()
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// EmptyCartError is returned when checkout is attempted on an empty cart
type EmptyCartError struct{}

// Error implements the error interface for EmptyCartError
func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// Is allows proper error type checking with errors.Is()
func (e *EmptyCartError) Is(target error) bool {
	_, ok := target.(*EmptyCartError)
	return ok
}

// InvalidDiscountError is returned when a supplied discount code is unknown or already used.
// The two cases are deliberately reported the same way.
type InvalidDiscountError struct {
	Code string
}

// Error implements the error interface for InvalidDiscountError
func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount code: %q", e.Code)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidDiscountError) Is(target error) bool {
	_, ok := target.(*InvalidDiscountError)
	return ok
}

// InvalidQuantityError is returned when a cart addition asks for fewer than one unit
type InvalidQuantityError struct {
	Quantity int
}

// Error implements the error interface for InvalidQuantityError
func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d, must be at least 1", e.Quantity)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidQuantityError) Is(target error) bool {
	_, ok := target.(*InvalidQuantityError)
	return ok
}

// InvalidProductError is returned when a catalog entry fails validation
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// DuplicateProductError is returned when a catalog source lists the same ID twice
type DuplicateProductError struct {
	ProductID string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product: id=%s already exists", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// Helper functions for creating errors with context

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// NewEmptyCartError creates a new EmptyCartError
func NewEmptyCartError() error {
	return &EmptyCartError{}
}

// NewInvalidDiscountError creates a new InvalidDiscountError
func NewInvalidDiscountError(code string) error {
	return &InvalidDiscountError{Code: code}
}

// NewInvalidQuantityError creates a new InvalidQuantityError
func NewInvalidQuantityError(quantity int) error {
	return &InvalidQuantityError{Quantity: quantity}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(productID string) error {
	return &DuplicateProductError{ProductID: productID}
}

// Type assertion helpers for use with errors.As()

// IsNotFoundError checks if an error is a NotFoundError
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsEmptyCartError checks if an error is an EmptyCartError
func IsEmptyCartError(err error) bool {
	var ec *EmptyCartError
	return errors.As(err, &ec)
}

// IsInvalidDiscountError checks if an error is an InvalidDiscountError
func IsInvalidDiscountError(err error) bool {
	var ide *InvalidDiscountError
	return errors.As(err, &ide)
}

// IsInvalidQuantityError checks if an error is an InvalidQuantityError
func IsInvalidQuantityError(err error) bool {
	var iqe *InvalidQuantityError
	return errors.As(err, &iqe)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}
