package carrier

import (
	"errors"
	"fmt"
)

// ErrCarrierUnavailable is the sentinel for a carrier at full capacity.
var ErrCarrierUnavailable = errors.New("carrier unavailable")

// UnavailableError reports the carrier's load at the moment it refused an order.
type UnavailableError struct {
	ActiveCount int
	Max         int
}

func NewUnavailableError(activeCount, maxOrders int) *UnavailableError {
	return &UnavailableError{
		ActiveCount: activeCount,
		Max:         maxOrders,
	}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %d of %d concurrent orders in use", ErrCarrierUnavailable, e.ActiveCount, e.Max)
}

func (e *UnavailableError) Unwrap() error {
	return ErrCarrierUnavailable
}
