package shipment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalTransition is the sentinel for every rejected status change.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError carries the rejected move together with the moves
// that would have been accepted, so callers can present them.
type IllegalTransitionError struct {
	Current   StatusName
	Requested StatusName
	Allowed   []StatusName
}

func NewIllegalTransitionError(current, requested StatusName) *IllegalTransitionError {
	return &IllegalTransitionError{
		Current:   current,
		Requested: requested,
		Allowed:   AllowedFrom(current),
	}
}

func (e *IllegalTransitionError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, string(s))
	}
	return fmt.Sprintf("%s: %s -> %s (allowed: [%s])",
		ErrIllegalTransition, e.Current, e.Requested, strings.Join(allowed, ", "))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
