package commands

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a client. Field formats are checked when the
// handler builds the aggregate; the constructor only rejects missing fields.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	name    string
	email   string
	phone   string
	address string

	guard guard.ConstructorGuard
}

func NewCreateClientCommand(name, email, phone, address string) (CreateClientCommand, error) {
	cmd := CreateClientCommand{
		name:    strings.TrimSpace(name),
		email:   strings.TrimSpace(email),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("name", cmd.name),
		required("email", cmd.email),
		required("phone", cmd.phone),
		required("address", cmd.address),
	); err != nil {
		return CreateClientCommand{}, err
	}

	return cmd, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) Name() string    { return c.name }
func (c CreateClientCommand) Email() string   { return c.email }
func (c CreateClientCommand) Phone() string   { return c.phone }
func (c CreateClientCommand) Address() string { return c.address }

func required(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
