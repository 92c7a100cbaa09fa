package commands

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderOptions carries the optional fields of a new order.
type OrderOptions struct {
	// StatusID, when set, must reference the PENDING status.
	StatusID          *kernel.UUID
	Notes             string
	OrderDate         *time.Time
	EstimatedDelivery *time.Time
}

// CreateOrderCommand represents a request to place an order for quantity
// units of a product, shipped by a carrier along a route.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(clientID, productID, carrierID, routeID, 3, OrderOptions{
//	    Notes: "leave at the reception",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, logger)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID  kernel.UUID
	productID kernel.UUID
	carrierID kernel.UUID
	routeID   kernel.UUID
	quantity  int
	options   OrderOptions

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and quantity. Existence and
// activity of the referenced entities are checked by the handler.
func NewCreateOrderCommand(
	clientID, productID, carrierID, routeID kernel.UUID,
	quantity int,
	options OrderOptions,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("clientId", clientID, &cmd.clientID),
		requireID("productId", productID, &cmd.productID),
		requireID("carrierId", carrierID, &cmd.carrierID),
		requireID("routeId", routeID, &cmd.routeID),
		cmd.setQuantity(quantity),
		cmd.setOptions(options),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ClientID() kernel.UUID  { return c.clientID }
func (c CreateOrderCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateOrderCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c CreateOrderCommand) RouteID() kernel.UUID   { return c.routeID }
func (c CreateOrderCommand) Quantity() int          { return c.quantity }
func (c CreateOrderCommand) Options() OrderOptions  { return c.options }

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setOptions(options OrderOptions) error {
	if options.StatusID != nil {
		if err := options.StatusID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("statusId", err)
		}
	}
	if options.OrderDate != nil && options.EstimatedDelivery != nil &&
		options.EstimatedDelivery.Before(*options.OrderDate) {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDelivery",
			errors.New("estimated delivery precedes the order date"))
	}

	options.Notes = strings.TrimSpace(options.Notes)
	c.options = options
	return nil
}

// requireID validates id and stores it in dst.
func requireID(paramName string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}

	*dst = id
	return nil
}
