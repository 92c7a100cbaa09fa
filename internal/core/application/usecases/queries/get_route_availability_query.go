package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetRouteAvailabilityQueryIsNotConstructed = errors.New(
	"GetRouteAvailabilityQuery must be created via NewGetRouteAvailabilityQuery constructor",
)

// GetRouteAvailabilityQuery asks whether a route runs at a given instant.
type GetRouteAvailabilityQuery struct {
	routeID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

// NewGetRouteAvailabilityQuery checks the route at instant at. The hour is
// read in at's own location, so callers pass a time in the route's zone.
func NewGetRouteAvailabilityQuery(routeID kernel.UUID, at time.Time) (GetRouteAvailabilityQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteAvailabilityQuery{}, errs.NewValueIsRequiredErrorWithCause("routeId", err)
	}
	if at.IsZero() {
		return GetRouteAvailabilityQuery{}, errs.NewValueIsRequiredError("at")
	}
	return GetRouteAvailabilityQuery{routeID: routeID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRouteAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteAvailabilityQueryIsNotConstructed)
}

func (q GetRouteAvailabilityQuery) RouteID() kernel.UUID { return q.routeID }
func (q GetRouteAvailabilityQuery) At() time.Time        { return q.at }

// RouteAvailability explains the answer in Reason when Available is false.
type RouteAvailability struct {
	RouteID   kernel.UUID
	Code      string
	Active    bool
	Hours     route.OperatingHours
	At        time.Time
	Available bool
	Reason    string
}
