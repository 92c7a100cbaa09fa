package commands

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/actor"
)

// Removal reports what RemoveEntity did with the row.
type Removal struct {
	ID          kernel.UUID
	Kind        EntityKind
	Deactivated bool
}

// RemoveEntityCommandHandler deletes unreferenced catalog rows and
// deactivates referenced ones, so orders and the stock ledger never point at
// a missing row.
//
// References checked per kind:
//
//	client          orders
//	product         orders, stock movements
//	carrier         orders, routes
//	route           orders
//	shipment-status orders
type RemoveEntityCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewRemoveEntityCommandHandler(uowFactory UoWFactory, logger *slog.Logger) RemoveEntityCommandHandler {
	return RemoveEntityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "RemoveEntityCommandHandler"),
	}
}

func (h *RemoveEntityCommandHandler) Handle(ctx context.Context, cmd RemoveEntityCommand) (Removal, error) {
	if err := cmd.Validate(); err != nil {
		return Removal{}, err
	}

	result, err := withTransaction(ctx, h.uowFactory, "RemoveEntity",
		func(ctx context.Context, uow UoW) (Removal, error) {
			deactivated, err := h.remove(ctx, uow, cmd.Kind(), cmd.ID())
			if err != nil {
				return Removal{}, err
			}
			return Removal{ID: cmd.ID(), Kind: cmd.Kind(), Deactivated: deactivated}, nil
		})
	if err != nil {
		return Removal{}, err
	}

	h.logger.InfoContext(ctx, "entity removed",
		"kind", result.Kind,
		"id", result.ID.String(),
		"deactivated", result.Deactivated,
		"actor", actor.SubjectOf(ctx))
	return result, nil
}

func (h *RemoveEntityCommandHandler) remove(ctx context.Context, uow UoW, kind EntityKind, id kernel.UUID) (bool, error) {
	orders := uow.OrderRepository()

	switch kind {
	case KindClient:
		repo := uow.ClientRepository()
		c, err := repo.Get(ctx, id)
		if err != nil {
			return false, err
		}
		refs, err := orders.CountReferencing(ctx, ports.ReferenceClient, id)
		if err != nil {
			return false, err
		}
		if refs > 0 {
			c.Deactivate()
			return true, repo.Update(ctx, c)
		}
		return false, repo.Delete(ctx, id)

	case KindProduct:
		repo := uow.ProductRepository()
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return false, err
		}
		refs, err := orders.CountReferencing(ctx, ports.ReferenceProduct, id)
		if err != nil {
			return false, err
		}
		moved, err := repo.HasMovements(ctx, id)
		if err != nil {
			return false, err
		}
		if refs > 0 || moved {
			p.Deactivate()
			return true, repo.Update(ctx, p)
		}
		return false, repo.Delete(ctx, id)

	case KindCarrier:
		repo := uow.CarrierRepository()
		c, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return false, err
		}
		refs, err := orders.CountReferencing(ctx, ports.ReferenceCarrier, id)
		if err != nil {
			return false, err
		}
		routes, err := uow.RouteRepository().CountByCarrier(ctx, id)
		if err != nil {
			return false, err
		}
		if refs > 0 || routes > 0 {
			c.Deactivate()
			return true, repo.Update(ctx, c)
		}
		return false, repo.Delete(ctx, id)

	case KindRoute:
		repo := uow.RouteRepository()
		r, err := repo.Get(ctx, id)
		if err != nil {
			return false, err
		}
		refs, err := orders.CountReferencing(ctx, ports.ReferenceRoute, id)
		if err != nil {
			return false, err
		}
		if refs > 0 {
			r.Deactivate()
			return true, repo.Update(ctx, r)
		}
		return false, repo.Delete(ctx, id)

	case KindShipmentStatus:
		repo := uow.ShipmentStatusRepository()
		s, err := repo.Get(ctx, id)
		if err != nil {
			return false, err
		}
		refs, err := orders.CountReferencing(ctx, ports.ReferenceStatus, id)
		if err != nil {
			return false, err
		}
		if refs > 0 {
			s.Deactivate()
			return true, repo.Update(ctx, s)
		}
		return false, repo.Delete(ctx, id)
	}

	return false, fmt.Errorf("unhandled entity kind %q", kind)
}
