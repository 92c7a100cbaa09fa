package shipment

import (
	"fmt"
	"slices"
	"strings"

	"logistics/internal/pkg/errs"
)

// StatusName is the fixed vocabulary of shipment states an order moves through.
//
// Transitions:
//
//	PENDING ──> PREPARATION ──> IN_TRANSIT ──> DELIVERED
//	   │             │              │    ▲
//	   │             │              ▼    │
//	   └─────────────┴──> CANCELLED   NOT_DELIVERED
//
// DELIVERED and CANCELLED are terminal. NOT_DELIVERED may be retried by going
// back IN_TRANSIT.
type StatusName string

const (
	Pending      StatusName = "PENDING"
	Preparation  StatusName = "PREPARATION"
	InTransit    StatusName = "IN_TRANSIT"
	Delivered    StatusName = "DELIVERED"
	NotDelivered StatusName = "NOT_DELIVERED"
	Cancelled    StatusName = "CANCELLED"
)

// transitions is the complete table of legal status changes. A name absent
// from the keys has no outgoing edges.
var transitions = map[StatusName][]StatusName{
	Pending:      {Preparation, Cancelled},
	Preparation:  {InTransit, Cancelled},
	InTransit:    {Delivered, NotDelivered},
	Delivered:    {},
	NotDelivered: {InTransit},
	Cancelled:    {},
}

// activeStatuses are the states that occupy a slot of the carrier's capacity.
var activeStatuses = []StatusName{Pending, Preparation, InTransit}

// AllStatusNames returns the vocabulary in display order.
func AllStatusNames() []StatusName {
	return []StatusName{Pending, Preparation, InTransit, Delivered, NotDelivered, Cancelled}
}

// IsAllowed reports whether an order in current may move to next.
// Unknown names are never allowed in either position.
func IsAllowed(current, next StatusName) bool {
	return slices.Contains(transitions[current], next)
}

// AllowedFrom returns the states reachable from current in a single step.
// The result is a copy and may be modified by the caller.
func AllowedFrom(current StatusName) []StatusName {
	return slices.Clone(transitions[current])
}

// CheckTransition returns an IllegalTransitionError when current may not move to next.
func CheckTransition(current, next StatusName) error {
	if !IsAllowed(current, next) {
		return NewIllegalTransitionError(current, next)
	}
	return nil
}

// ActiveStatuses returns the states counted against a carrier's
// max_concurrent_orders.
func ActiveStatuses() []StatusName {
	return slices.Clone(activeStatuses)
}

// ParseStatusName normalizes raw (trim, upper-case) and checks it belongs to
// the vocabulary.
func ParseStatusName(raw string) (StatusName, error) {
	name := StatusName(strings.ToUpper(strings.TrimSpace(raw)))
	if err := name.Validate(); err != nil {
		return "", err
	}
	return name, nil
}

// Validate rejects names outside the vocabulary.
func (s StatusName) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known shipment status", string(s)))
	}
	return nil
}

// IsActive reports whether an order in this state counts against carrier capacity.
func (s StatusName) IsActive() bool {
	return slices.Contains(activeStatuses, s)
}

// IsTerminal reports whether no transition leaves this state.
func (s StatusName) IsTerminal() bool {
	edges, ok := transitions[s]
	return ok && len(edges) == 0
}

func (s StatusName) String() string {
	return string(s)
}
