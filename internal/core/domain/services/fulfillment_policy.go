package services

import (
	"errors"
	"slices"
	"strings"
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
)

// StockChange pairs a product whose stock was just changed with its level
// before the change. Commands persist the product and turn each change into a
// ledger movement.
type StockChange struct {
	Product *product.Product
	Before  int
}

// Placement gathers everything needed to place one order. Product and Carrier
// must have been loaded under a row lock in the current transaction and
// CarrierLoad counted after that lock was taken.
type Placement struct {
	Client            *client.Client
	Product           *product.Product
	Carrier           *carrier.Carrier
	Route             *route.Route
	Pending           order.StatusRef
	CarrierLoad       int
	Quantity          int
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	Notes             string
}

// FulfillmentPolicy holds the cross-aggregate rules of order placement and
// editing: every party must be active, stock must cover the quantity and the
// carrier must have a free slot.
//
// The policy only mutates the aggregates it is handed. Loading, locking and
// persisting them is the caller's job, so the rules stay testable without a
// database.
//
// Example:
//
//	policy := services.NewFulfillmentPolicy()
//	o, change, err := policy.Place(kernel.NewUUID(), services.Placement{...})
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // nothing was reserved
//	}
type FulfillmentPolicy struct{}

func NewFulfillmentPolicy() FulfillmentPolicy {
	return FulfillmentPolicy{}
}

// Place checks the placement and, when it holds, reserves the stock and builds
// a PENDING order. Checks run in a fixed order: activity of every party, then
// stock, then carrier capacity. On error no aggregate is modified.
func (FulfillmentPolicy) Place(id kernel.UUID, p Placement) (*order.Order, StockChange, error) {
	if err := errors.Join(
		p.Client.Validate(),
		p.Product.Validate(),
		p.Carrier.Validate(),
		p.Route.Validate(),
	); err != nil {
		return nil, StockChange{}, err
	}
	if err := errors.Join(
		p.Client.EnsureActive(),
		p.Product.EnsureActive(),
		p.Carrier.EnsureActive(),
		p.Route.EnsureActive(),
	); err != nil {
		return nil, StockChange{}, err
	}

	o, err := order.NewOrder(id, order.Draft{
		ClientID:          p.Client.ID(),
		ProductID:         p.Product.ID(),
		CarrierID:         p.Carrier.ID(),
		RouteID:           p.Route.ID(),
		Status:            p.Pending,
		Quantity:          p.Quantity,
		UnitPrice:         p.Product.Price(),
		OrderDate:         p.OrderDate,
		EstimatedDelivery: p.EstimatedDelivery,
		Notes:             p.Notes,
	})
	if err != nil {
		return nil, StockChange{}, err
	}

	if p.Product.Stock() < p.Quantity {
		return nil, StockChange{}, product.NewInsufficientStockError(p.Product.Stock(), p.Quantity)
	}
	if err = p.Carrier.EnsureCapacity(p.CarrierLoad); err != nil {
		return nil, StockChange{}, err
	}

	before, err := p.Product.Reserve(p.Quantity)
	if err != nil {
		return nil, StockChange{}, err
	}

	return o, StockChange{Product: p.Product, Before: before}, nil
}

// AcceptCarrier checks that c can take one more order given its current load.
func (FulfillmentPolicy) AcceptCarrier(c *carrier.Carrier, load int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.EnsureActive(); err != nil {
		return err
	}
	return c.EnsureCapacity(load)
}

// Rebook moves the stock reservation of an editable order to target with the
// given quantity, then reprices the order. current is the product the order
// holds today; target may be the same aggregate.
//
// Same product: the held units count as available (stock + held >= quantity).
// Other product: the held units go back to current and the full quantity is
// reserved on target.
//
// When neither product nor quantity changes nothing happens and no change is
// returned.
func (FulfillmentPolicy) Rebook(o *order.Order, current, target *product.Product, quantity int) ([]StockChange, error) {
	if err := o.EnsureEditable(); err != nil {
		return nil, err
	}

	if current.ID().IsEqual(target.ID()) {
		if quantity == o.Quantity() {
			return nil, nil
		}
		before, err := target.Rebook(o.Quantity(), quantity)
		if err != nil {
			return nil, err
		}
		if err = o.Reprice(target.ID(), quantity, target.Price()); err != nil {
			return nil, err
		}
		return []StockChange{{Product: target, Before: before}}, nil
	}

	if err := target.EnsureActive(); err != nil {
		return nil, err
	}
	if target.Stock() < quantity {
		return nil, product.NewInsufficientStockError(target.Stock(), quantity)
	}

	releasedFrom, err := current.Release(o.Quantity())
	if err != nil {
		return nil, err
	}
	reservedFrom, err := target.Reserve(quantity)
	if err != nil {
		return nil, err
	}
	if err = o.Reprice(target.ID(), quantity, target.Price()); err != nil {
		return nil, err
	}

	return []StockChange{
		{Product: current, Before: releasedFrom},
		{Product: target, Before: reservedFrom},
	}, nil
}

// LockOrder returns ids sorted by their textual form. Commands that lock more
// than one row of the same table take the locks in this order.
func LockOrder(ids ...kernel.UUID) []kernel.UUID {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return slices.CompactFunc(sorted, func(a, b kernel.UUID) bool {
		return a.IsEqual(b)
	})
}
