package product

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// MovementReason tells why a stock level changed.
type MovementReason string

const (
	ReasonOrderCreated     MovementReason = "ORDER_CREATED"
	ReasonOrderUpdated     MovementReason = "ORDER_UPDATED"
	ReasonOrderCancelled   MovementReason = "ORDER_CANCELLED"
	ReasonOrderDeleted     MovementReason = "ORDER_DELETED"
	ReasonManualAdjustment MovementReason = "MANUAL_ADJUSTMENT"
)

func (r MovementReason) Validate() error {
	switch r {
	case ReasonOrderCreated, ReasonOrderUpdated, ReasonOrderCancelled, ReasonOrderDeleted, ReasonManualAdjustment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason", fmt.Errorf("%q is not a stock movement reason", string(r)))
	}
}

// Movement is an append-only ledger entry for one stock change. Summing the
// deltas of a product's movements reproduces its stock drift since creation.
type Movement struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	OrderID     *kernel.UUID
	Delta       int
	StockBefore int
	StockAfter  int
	Reason      MovementReason
	CreatedAt   time.Time
}

// NewMovement records the change from stockBefore to the product's current stock.
func NewMovement(p *Product, stockBefore int, reason MovementReason, orderID *kernel.UUID, now time.Time) (Movement, error) {
	if err := p.Validate(); err != nil {
		return Movement{}, err
	}
	if err := reason.Validate(); err != nil {
		return Movement{}, err
	}
	delta := p.Stock() - stockBefore
	if delta == 0 {
		return Movement{}, errs.NewValueIsInvalidErrorWithCause("delta", errors.New("stock did not change"))
	}

	return Movement{
		ID:          kernel.NewUUID(),
		ProductID:   p.ID(),
		OrderID:     orderID,
		Delta:       delta,
		StockBefore: stockBefore,
		StockAfter:  p.Stock(),
		Reason:      reason,
		CreatedAt:   now.UTC(),
	}, nil
}
