package product

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is the sentinel for every stock shortfall.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports how many units could have been served and
// how many were asked for.
type InsufficientStockError struct {
	Available int
	Requested int
}

func NewInsufficientStockError(available, requested int) *InsufficientStockError {
	return &InsufficientStockError{
		Available: available,
		Requested: requested,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: available %d, requested %d", ErrInsufficientStock, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
