package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/actor"
)

// DeleteOrderCommandHandler deletes an order row. A PENDING order still holds
// its units, so they are returned to stock before the row goes away.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
		logger:     logger.With("component", "DeleteOrderCommandHandler"),
	}
}

// Handle returns the id of the deleted order.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	restored := 0
	deleted, err := withTransaction(ctx, h.uowFactory, "DeleteOrder",
		func(ctx context.Context, uow UoW) (kernel.UUID, error) {
			o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
			if err != nil {
				return kernel.UUID{}, err
			}
			if err = o.EnsureDeletable(); err != nil {
				return kernel.UUID{}, err
			}

			orderID := o.ID()
			if o.HoldsStock() {
				if _, err = adjustStock(ctx, uow, o.ProductID(), o.Quantity(),
					product.ReasonOrderDeleted, &orderID, h.now()); err != nil {
					return kernel.UUID{}, err
				}
				restored = o.Quantity()
			}

			if err = uow.OrderRepository().Delete(ctx, orderID); err != nil {
				return kernel.UUID{}, err
			}
			return orderID, nil
		})
	if err != nil {
		return kernel.UUID{}, err
	}

	h.logger.InfoContext(ctx, "order deleted",
		"order_id", deleted.String(),
		"restored_units", restored,
		"actor", actor.SubjectOf(ctx))

	return deleted, nil
}
