package commands

import (
	"errors"
	"strings"

	"logistics/internal/pkg/guard"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

// CreateCarrierCommand registers a carrier. vehicleType and
// maxConcurrentOrders may be left empty or zero to take the defaults.
type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	name                string
	document            string
	phone               string
	vehicleType         string
	maxConcurrentOrders int

	guard guard.ConstructorGuard
}

func NewCreateCarrierCommand(name, document, phone, vehicleType string, maxConcurrentOrders int) (CreateCarrierCommand, error) {
	cmd := CreateCarrierCommand{
		name:                strings.TrimSpace(name),
		document:            strings.TrimSpace(document),
		phone:               strings.TrimSpace(phone),
		vehicleType:         strings.TrimSpace(vehicleType),
		maxConcurrentOrders: maxConcurrentOrders,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("name", cmd.name),
		required("document", cmd.document),
	); err != nil {
		return CreateCarrierCommand{}, err
	}

	return cmd, nil
}

func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

func (c CreateCarrierCommand) Name() string             { return c.name }
func (c CreateCarrierCommand) Document() string         { return c.document }
func (c CreateCarrierCommand) Phone() string            { return c.phone }
func (c CreateCarrierCommand) VehicleType() string      { return c.vehicleType }
func (c CreateCarrierCommand) MaxConcurrentOrders() int { return c.maxConcurrentOrders }
