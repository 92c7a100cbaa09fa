package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/actor"
	"logistics/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders.
//
// Inside one transaction it loads the client and route, resolves the PENDING
// status, locks the carrier row and then the product row, counts the carrier's
// active orders and hands everything to the fulfillment policy. The order, the
// decremented stock and the ledger movement are committed together.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // stock is untouched
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.FulfillmentPolicy
	now        func() time.Time
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewFulfillmentPolicy(),
		now:        time.Now,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle places the order and returns it as committed.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := withTransaction(ctx, h.uowFactory, "CreateOrder",
		func(ctx context.Context, uow UoW) (*order.Order, error) {
			return h.place(ctx, uow, cmd)
		})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", created.ID().String(),
		"product_id", created.ProductID().String(),
		"carrier_id", created.CarrierID().String(),
		"quantity", created.Quantity(),
		"actor", actor.SubjectOf(ctx))

	return created, nil
}

func (h *CreateOrderCommandHandler) place(ctx context.Context, uow UoW, cmd CreateOrderCommand) (*order.Order, error) {
	opts := cmd.Options()

	cl, err := uow.ClientRepository().Get(ctx, cmd.ClientID())
	if err != nil {
		return nil, err
	}
	rt, err := uow.RouteRepository().Get(ctx, cmd.RouteID())
	if err != nil {
		return nil, err
	}
	pending, err := resolvePendingStatus(ctx, uow, opts.StatusID)
	if err != nil {
		return nil, err
	}

	// carrier before product, on every path that locks both
	cr, err := uow.CarrierRepository().GetForUpdate(ctx, cmd.CarrierID())
	if err != nil {
		return nil, err
	}
	pr, err := uow.ProductRepository().GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}
	load, err := carrierActiveOrderCount(ctx, uow, cr.ID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	orderDate := now
	if opts.OrderDate != nil {
		orderDate = *opts.OrderDate
	}

	placed, change, err := h.policy.Place(kernel.NewUUID(), services.Placement{
		Client:            cl,
		Product:           pr,
		Carrier:           cr,
		Route:             rt,
		Pending:           pending,
		CarrierLoad:       load,
		Quantity:          cmd.Quantity(),
		OrderDate:         orderDate,
		EstimatedDelivery: opts.EstimatedDelivery,
		Notes:             opts.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	orderID := placed.ID()
	if err = persistStockChange(ctx, uow, change, product.ReasonOrderCreated, &orderID, now); err != nil {
		return nil, err
	}

	return placed, nil
}

// resolvePendingStatus returns the catalog row new orders start in. An explicit
// statusID must point at that same row and the row must be active.
func resolvePendingStatus(ctx context.Context, uow UoW, statusID *kernel.UUID) (order.StatusRef, error) {
	repo := uow.ShipmentStatusRepository()

	if statusID == nil {
		pending, err := repo.GetByName(ctx, shipment.Pending)
		if err != nil {
			return order.StatusRef{}, err
		}
		return order.RefOf(pending), nil
	}

	status, err := repo.Get(ctx, *statusID)
	if err != nil {
		return order.StatusRef{}, err
	}
	if status.Name() != shipment.Pending {
		return order.StatusRef{}, errs.NewValueIsInvalidErrorWithCause("statusId",
			fmt.Errorf("new orders start in %s, got %s", shipment.Pending, status.Name()))
	}
	if err = status.EnsureActive(); err != nil {
		return order.StatusRef{}, err
	}
	return order.RefOf(status), nil
}
