package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/actor"
)

// UpdateOrderCommandHandler applies an OrderPatch to an editable order.
//
// Locks are taken order, carrier, products; the products in LockOrder order
// when the patch swaps one product for another. A quantity change on the same
// product counts the units the order already holds as available, so shrinking
// an order never fails for lack of stock.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.FulfillmentPolicy
	now        func() time.Time
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewFulfillmentPolicy(),
		now:        time.Now,
		logger:     logger.With("component", "UpdateOrderCommandHandler"),
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := withTransaction(ctx, h.uowFactory, "UpdateOrder",
		func(ctx context.Context, uow UoW) (*order.Order, error) {
			return h.apply(ctx, uow, cmd)
		})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order updated",
		"order_id", updated.ID().String(),
		"quantity", updated.Quantity(),
		"total", updated.Total().String(),
		"actor", actor.SubjectOf(ctx))

	return updated, nil
}

func (h *UpdateOrderCommandHandler) apply(ctx context.Context, uow UoW, cmd UpdateOrderCommand) (*order.Order, error) {
	patch := cmd.Patch()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.EnsureEditable(); err != nil {
		return nil, err
	}

	clientID, routeID, carrierID := o.ClientID(), o.RouteID(), o.CarrierID()

	if patch.ClientID != nil && !patch.ClientID.IsEqual(clientID) {
		cl, err := uow.ClientRepository().Get(ctx, *patch.ClientID)
		if err != nil {
			return nil, err
		}
		if err = cl.EnsureActive(); err != nil {
			return nil, err
		}
		clientID = cl.ID()
	}

	if patch.RouteID != nil && !patch.RouteID.IsEqual(routeID) {
		rt, err := uow.RouteRepository().Get(ctx, *patch.RouteID)
		if err != nil {
			return nil, err
		}
		if err = rt.EnsureActive(); err != nil {
			return nil, err
		}
		routeID = rt.ID()
	}

	if patch.CarrierID != nil && !patch.CarrierID.IsEqual(carrierID) {
		cr, err := uow.CarrierRepository().GetForUpdate(ctx, *patch.CarrierID)
		if err != nil {
			return nil, err
		}
		load, err := carrierActiveOrderCount(ctx, uow, cr.ID())
		if err != nil {
			return nil, err
		}
		if err = h.policy.AcceptCarrier(cr, load); err != nil {
			return nil, err
		}
		carrierID = cr.ID()
	}

	if err = h.rebook(ctx, uow, o, patch); err != nil {
		return nil, err
	}

	if err = o.Reassign(clientID, carrierID, routeID); err != nil {
		return nil, err
	}
	if patch.Notes != nil {
		if err = o.ReplaceNotes(*patch.Notes); err != nil {
			return nil, err
		}
	}
	if patch.EstimatedDelivery != nil {
		if err = o.Reschedule(patch.EstimatedDelivery); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// rebook moves the stock reservation when the patch touches product or quantity.
func (h *UpdateOrderCommandHandler) rebook(ctx context.Context, uow UoW, o *order.Order, patch OrderPatch) error {
	targetID := o.ProductID()
	if patch.ProductID != nil {
		targetID = *patch.ProductID
	}
	quantity := o.Quantity()
	if patch.Quantity != nil {
		quantity = *patch.Quantity
	}
	if targetID.IsEqual(o.ProductID()) && quantity == o.Quantity() {
		return nil
	}

	locked := make(map[string]*product.Product, 2)
	for _, id := range services.LockOrder(o.ProductID(), targetID) {
		p, err := uow.ProductRepository().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		locked[id.String()] = p
	}

	changes, err := h.policy.Rebook(o, locked[o.ProductID().String()], locked[targetID.String()], quantity)
	if err != nil {
		return err
	}

	orderID := o.ID()
	now := h.now()
	for _, change := range changes {
		if err = persistStockChange(ctx, uow, change, product.ReasonOrderUpdated, &orderID, now); err != nil {
			return err
		}
	}
	return nil
}
