package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderPatch lists the editable fields of an order. A nil field is left as it
// is. The status is not part of the patch; it only changes through
// ChangeOrderStatusCommand.
type OrderPatch struct {
	ClientID          *kernel.UUID
	ProductID         *kernel.UUID
	CarrierID         *kernel.UUID
	RouteID           *kernel.UUID
	Quantity          *int
	Notes             *string
	EstimatedDelivery *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return p.ClientID == nil && p.ProductID == nil && p.CarrierID == nil && p.RouteID == nil &&
		p.Quantity == nil && p.Notes == nil && p.EstimatedDelivery == nil
}

// UpdateOrderCommand edits an order that has not left PREPARATION yet.
//
// Example:
//
//	qty := 5
//	cmd, err := NewUpdateOrderCommand(orderID, OrderPatch{Quantity: &qty})
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   OrderPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID kernel.UUID, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("orderId", orderID, &cmd.orderID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderCommand) Patch() OrderPatch    { return c.patch }

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.IsEmpty() {
		return errs.NewValueIsRequiredError("patch")
	}

	var problems []error
	for _, ref := range []struct {
		name string
		id   *kernel.UUID
	}{
		{"clientId", patch.ClientID},
		{"productId", patch.ProductID},
		{"carrierId", patch.CarrierID},
		{"routeId", patch.RouteID},
	} {
		if ref.id == nil {
			continue
		}
		if err := ref.id.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(ref.name, err))
		}
	}
	if patch.Quantity != nil && *patch.Quantity < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("quantity", *patch.Quantity, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.patch = patch
	return nil
}
