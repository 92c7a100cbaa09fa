package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to another status by name.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  shipment.StatusName
	notes   string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand normalizes statusName (trimmed, upper-cased) and
// rejects names outside the status vocabulary.
func NewChangeOrderStatusCommand(orderID kernel.UUID, statusName, notes string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderId", orderID, &cmd.orderID),
		cmd.setStatus(statusName),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID        { return c.orderID }
func (c ChangeOrderStatusCommand) Status() shipment.StatusName { return c.status }
func (c ChangeOrderStatusCommand) Notes() string               { return c.notes }

func (c *ChangeOrderStatusCommand) setStatus(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errs.NewValueIsRequiredError("status")
	}

	name, err := shipment.ParseStatusName(raw)
	if err != nil {
		return err
	}

	c.status = name
	return nil
}
