package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/actor"
)

type CreateCarrierCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCreateCarrierCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreateCarrierCommandHandler"),
	}
}

func (h *CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) (*carrier.Carrier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := carrier.NewCarrier(kernel.NewUUID(), cmd.Name(), cmd.Document(), cmd.Phone(),
		cmd.VehicleType(), cmd.MaxConcurrentOrders())
	if err != nil {
		return nil, err
	}

	if _, err = withTransaction(ctx, h.uowFactory, "CreateCarrier",
		func(ctx context.Context, uow UoW) (struct{}, error) {
			return struct{}{}, uow.CarrierRepository().Add(ctx, created)
		}); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "carrier created",
		"carrier_id", created.ID().String(),
		"max_concurrent_orders", created.MaxConcurrentOrders(),
		"actor", actor.SubjectOf(ctx))
	return created, nil
}
