package domain

import "go-storefront/pkg/errors"

// Domain-specific errors
var (
	ErrUnknownStatus = errors.NewValidation("unknown order status", nil)
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id string) error {
	return errors.NewNotFound("order", id)
}

// NewInvalidTransition creates a conflict error for an out-of-order
// status transition
func NewInvalidTransition(from, to OrderStatus) error {
	return errors.NewConflict("order status cannot move from '" + string(from) + "' to '" + string(to) + "'")
}
