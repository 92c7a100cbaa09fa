package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand opens a lane between origin and destination, served by
// carrierID during hours.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	code        string
	origin      string
	destination string
	hours       route.OperatingHours
	carrierID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(
	code, origin, destination string,
	hours route.OperatingHours,
	carrierID kernel.UUID,
) (CreateRouteCommand, error) {
	cmd := CreateRouteCommand{
		code:        strings.TrimSpace(code),
		origin:      strings.TrimSpace(origin),
		destination: strings.TrimSpace(destination),
		hours:       hours,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("code", cmd.code),
		required("origin", cmd.origin),
		required("destination", cmd.destination),
		hours.Validate(),
		requireID("carrierId", carrierID, &cmd.carrierID),
	); err != nil {
		return CreateRouteCommand{}, err
	}

	return cmd, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) Code() string                         { return c.code }
func (c CreateRouteCommand) Origin() string                       { return c.origin }
func (c CreateRouteCommand) Destination() string                  { return c.destination }
func (c CreateRouteCommand) OperatingHours() route.OperatingHours { return c.hours }
func (c CreateRouteCommand) CarrierID() kernel.UUID               { return c.carrierID }
