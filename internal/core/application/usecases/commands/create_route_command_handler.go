package commands

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/actor"
)

type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCreateRouteCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreateRouteCommandHandler"),
	}
}

// Handle stores the route after checking the carrier exists. An inactive
// carrier is accepted: the route simply cannot take orders until both are active.
func (h *CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := route.NewRoute(kernel.NewUUID(), cmd.Code(), cmd.Origin(), cmd.Destination(),
		cmd.OperatingHours(), cmd.CarrierID())
	if err != nil {
		return nil, err
	}

	if _, err = withTransaction(ctx, h.uowFactory, "CreateRoute",
		func(ctx context.Context, uow UoW) (struct{}, error) {
			if _, err := uow.CarrierRepository().Get(ctx, cmd.CarrierID()); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, uow.RouteRepository().Add(ctx, created)
		}); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "route created",
		"route_id", created.ID().String(),
		"code", created.Code(),
		"actor", actor.SubjectOf(ctx))
	return created, nil
}
