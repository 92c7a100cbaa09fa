package commands

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/actor"
	"logistics/internal/pkg/errs"
)

// SeedShipmentStatusesCommandHandler makes sure the status catalog holds one
// row per status name. It is run at startup and is safe to run repeatedly:
// existing rows are kept as they are.
type SeedShipmentStatusesCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewSeedShipmentStatusesCommandHandler(uowFactory UoWFactory, logger *slog.Logger) SeedShipmentStatusesCommandHandler {
	return SeedShipmentStatusesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "SeedShipmentStatusesCommandHandler"),
	}
}

// Handle returns the catalog in display order, created or found.
func (h *SeedShipmentStatusesCommandHandler) Handle(ctx context.Context) ([]*shipment.ShipmentStatus, error) {
	created := 0
	statuses, err := withTransaction(ctx, h.uowFactory, "SeedShipmentStatuses",
		func(ctx context.Context, uow UoW) ([]*shipment.ShipmentStatus, error) {
			repo := uow.ShipmentStatusRepository()
			defs := shipment.DefaultDefinitions()
			out := make([]*shipment.ShipmentStatus, 0, len(defs))

			for _, def := range defs {
				existing, err := repo.GetByName(ctx, def.Name)
				if err == nil {
					out = append(out, existing)
					continue
				}
				if !errors.Is(err, errs.ErrObjectNotFound) {
					return nil, err
				}

				status, err := shipment.NewShipmentStatus(kernel.NewUUID(), def)
				if err != nil {
					return nil, err
				}
				if err = repo.Add(ctx, status); err != nil {
					return nil, err
				}
				out = append(out, status)
				created++
			}
			return out, nil
		})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "shipment statuses seeded",
		"created", created,
		"total", len(statuses),
		"actor", actor.SubjectOf(ctx))
	return statuses, nil
}
