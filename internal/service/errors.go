package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrValidation    = errors.New("validation")                 // 400
	ErrNotFound      = errors.New("not found")                  // 404
	ErrNotAuthorized = errors.New("not authorized")             // 403
	ErrWrongState    = errors.New("wrong current state")        // 409
	ErrUnavailable   = errors.New("order no longer available")  // 409, lost claim or stale state
)

// InsufficientStockError aborts a whole checkout and names the product that
// ran out so the caller can fix the cart instead of blindly retrying.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}
