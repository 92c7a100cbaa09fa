package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAdjustProductStockCommandIsNotConstructed = errors.New(
	"AdjustProductStockCommand must be created via NewAdjustProductStockCommand constructor",
)

// StockOperation is the direction of a manual stock adjustment.
type StockOperation string

const (
	StockAdd      StockOperation = "ADD"
	StockSubtract StockOperation = "SUBTRACT"
)

// AdjustProductStockCommand adds units to or removes units from a product
// outside of any order, e.g. after a delivery from a supplier or a stock take.
type AdjustProductStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	operation StockOperation

	guard guard.ConstructorGuard
}

func NewAdjustProductStockCommand(productID kernel.UUID, quantity int, operation string) (AdjustProductStockCommand, error) {
	cmd := AdjustProductStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("productId", productID, &cmd.productID),
		cmd.setQuantity(quantity),
		cmd.setOperation(operation),
	); err != nil {
		return AdjustProductStockCommand{}, err
	}

	return cmd, nil
}

func (c AdjustProductStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustProductStockCommandIsNotConstructed)
}

func (c AdjustProductStockCommand) ProductID() kernel.UUID    { return c.productID }
func (c AdjustProductStockCommand) Quantity() int             { return c.quantity }
func (c AdjustProductStockCommand) Operation() StockOperation { return c.operation }

// Delta is the signed stock change.
func (c AdjustProductStockCommand) Delta() int {
	if c.operation == StockSubtract {
		return -c.quantity
	}
	return c.quantity
}

func (c *AdjustProductStockCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	c.quantity = quantity
	return nil
}

func (c *AdjustProductStockCommand) setOperation(raw string) error {
	op := StockOperation(strings.ToUpper(strings.TrimSpace(raw)))
	if op != StockAdd && op != StockSubtract {
		return errs.NewValueIsInvalidErrorWithCause("operation", fmt.Errorf("%q is neither ADD nor SUBTRACT", raw))
	}

	c.operation = op
	return nil
}
