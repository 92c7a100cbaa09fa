package route

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
	ErrRouteIsInactive       = errors.New("route is inactive")
)

// OperatingHours is the daily window [Start, End) during which a route runs.
// Both bounds are hours of the day with 0 <= Start < End <= 23.
type OperatingHours struct {
	Start int
	End   int
}

// Validate checks the window bounds.
func (h OperatingHours) Validate() error {
	if h.Start < 0 || h.Start > 22 {
		return errs.NewValueIsOutOfRangeError("startHour", h.Start, 0, 22)
	}
	if h.End <= h.Start || h.End > 23 {
		return errs.NewValueIsOutOfRangeError("endHour", h.End, h.Start+1, 23)
	}
	return nil
}

// Contains reports whether hour falls inside the window.
func (h OperatingHours) Contains(hour int) bool {
	return h.Start <= hour && hour < h.End
}

// Route is a scheduled origin-destination lane served by one carrier.
type Route struct {
	id          kernel.UUID
	code        string
	origin      string
	destination string
	hours       OperatingHours
	carrierID   kernel.UUID
	active      bool

	guard guard.ConstructorGuard
}

// NewRoute creates an active route. code is upper-cased.
func NewRoute(
	id kernel.UUID,
	code, origin, destination string,
	hours OperatingHours,
	carrierID kernel.UUID,
) (*Route, error) {
	return RestoreRoute(id, code, origin, destination, hours, carrierID, true)
}

// RestoreRoute rebuilds a route loaded from storage.
func RestoreRoute(
	id kernel.UUID,
	code, origin, destination string,
	hours OperatingHours,
	carrierID kernel.UUID,
	active bool,
) (*Route, error) {
	r := &Route{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCode(code),
		r.setEndpoints(origin, destination),
		r.setHours(hours),
		r.setCarrierID(carrierID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() kernel.UUID                { return r.id }
func (r *Route) Code() string                   { return r.code }
func (r *Route) Origin() string                 { return r.origin }
func (r *Route) Destination() string            { return r.destination }
func (r *Route) OperatingHours() OperatingHours { return r.hours }
func (r *Route) CarrierID() kernel.UUID         { return r.carrierID }
func (r *Route) IsActive() bool                 { return r.active }

// IsOperatingAt reports whether the route is active and running at the hour of at.
// The hour is read in at's own location.
func (r *Route) IsOperatingAt(at time.Time) bool {
	return r.active && r.hours.Contains(at.Hour())
}

// EnsureActive fails for routes taken out of service.
func (r *Route) EnsureActive() error {
	if !r.active {
		return errs.NewValueIsInvalidErrorWithCause("routeId", fmt.Errorf("%w: %s", ErrRouteIsInactive, r.code))
	}
	return nil
}

func (r *Route) Deactivate() {
	r.active = false
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	r.code = code
	return nil
}

func (r *Route) setEndpoints(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	var joined []error
	if origin == "" {
		joined = append(joined, errs.NewValueIsRequiredError("origin"))
	}
	if destination == "" {
		joined = append(joined, errs.NewValueIsRequiredError("destination"))
	}
	if err := errors.Join(joined...); err != nil {
		return err
	}

	r.origin = origin
	r.destination = destination
	return nil
}

func (r *Route) setHours(hours OperatingHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}
	r.hours = hours
	return nil
}

func (r *Route) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("carrierId", err)
	}
	r.carrierID = carrierID
	return nil
}
