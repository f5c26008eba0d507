package shop

import "errors"

// Sentinel errors for shop operations. Callers branch on them with errors.Is.
var (
	// ErrNotFound is returned when a product, cart or invoice lookup misses.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an operation is not allowed in the
	// current state, such as checking out an empty cart.
	ErrInvalidState = errors.New("invalid state")

	// ErrPaymentRejected is returned when the payment gateway declines a charge.
	ErrPaymentRejected = errors.New("payment rejected")
)
