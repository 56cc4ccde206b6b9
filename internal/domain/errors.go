package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced product id does not exist.
var ErrNotFound = errors.New("ledger: product not found")

// ErrInvalidQuantity indicates a non-positive quantity on a posting.
var ErrInvalidQuantity = errors.New("ledger: quantity must be positive")

// ErrInsufficientStock indicates a sale quantity above available stock.
var ErrInsufficientStock = errors.New("ledger: insufficient stock")

// ValidationError reports a missing or malformed field on create/edit.
// The message is user-facing; the rejected operation leaves state unchanged.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger: invalid %s: %s", e.Field, e.Msg)
}
