package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/actor"
)

// StatusChange is the outcome of a successful status change.
type StatusChange struct {
	OrderID  kernel.UUID
	Previous shipment.StatusName
	Current  shipment.StatusName
}

// ChangeOrderStatusCommandHandler applies the transition table to one order.
// Cancelling returns the order's quantity to stock in the same transaction;
// delivering stamps the actual delivery time. A retried delivery
// (NOT_DELIVERED back to IN_TRANSIT) takes a carrier slot again, so it is
// checked against the carrier's capacity like a new order.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
		logger:     logger.With("component", "ChangeOrderStatusCommandHandler"),
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (StatusChange, error) {
	if err := cmd.Validate(); err != nil {
		return StatusChange{}, err
	}

	result, err := withTransaction(ctx, h.uowFactory, "ChangeOrderStatus",
		func(ctx context.Context, uow UoW) (StatusChange, error) {
			o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
			if err != nil {
				return StatusChange{}, err
			}
			next, err := uow.ShipmentStatusRepository().GetByName(ctx, cmd.Status())
			if err != nil {
				return StatusChange{}, err
			}

			if err = shipment.CheckTransition(o.Status().Name, next.Name()); err != nil {
				return StatusChange{}, err
			}
			if !o.Status().Name.IsActive() && next.Name().IsActive() {
				if err = h.reclaimCarrierSlot(ctx, uow, o); err != nil {
					return StatusChange{}, err
				}
			}

			now := h.now()
			previous, err := o.ChangeStatus(order.RefOf(next), cmd.Notes(), now)
			if err != nil {
				return StatusChange{}, err
			}

			if next.Name() == shipment.Cancelled {
				orderID := o.ID()
				if _, err = adjustStock(ctx, uow, o.ProductID(), o.Quantity(),
					product.ReasonOrderCancelled, &orderID, now); err != nil {
					return StatusChange{}, err
				}
			}

			if err = uow.OrderRepository().Update(ctx, o); err != nil {
				return StatusChange{}, err
			}

			return StatusChange{OrderID: o.ID(), Previous: previous.Name, Current: next.Name()}, nil
		})
	if err != nil {
		return StatusChange{}, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", result.OrderID.String(),
		"from", result.Previous,
		"to", result.Current,
		"actor", actor.SubjectOf(ctx))

	return result, nil
}

func (h *ChangeOrderStatusCommandHandler) reclaimCarrierSlot(ctx context.Context, uow UoW, o *order.Order) error {
	c, err := uow.CarrierRepository().GetForUpdate(ctx, o.CarrierID())
	if err != nil {
		return err
	}
	load, err := carrierActiveOrderCount(ctx, uow, c.ID())
	if err != nil {
		return err
	}
	return c.EnsureCapacity(load)
}
