package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/actor"
)

type CreateProductCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCreateProductCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "CreateProductCommandHandler"),
	}
}

// Handle stores the product. A non-zero initial stock is written to the ledger
// as a manual adjustment so the movements always add up to the stock level.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := product.NewProduct(kernel.NewUUID(), cmd.Code(), cmd.Name(), cmd.Price(),
		cmd.Stock(), cmd.StockMinimum(), cmd.Category())
	if err != nil {
		return nil, err
	}

	if _, err = withTransaction(ctx, h.uowFactory, "CreateProduct",
		func(ctx context.Context, uow UoW) (struct{}, error) {
			if err := uow.ProductRepository().Add(ctx, created); err != nil {
				return struct{}{}, err
			}
			if created.Stock() == 0 {
				return struct{}{}, nil
			}
			opening, err := product.NewMovement(created, 0, product.ReasonManualAdjustment, nil, time.Now())
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, uow.ProductRepository().RecordMovement(ctx, opening)
		}); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "product created",
		"product_id", created.ID().String(),
		"code", created.Code(),
		"stock", created.Stock(),
		"actor", actor.SubjectOf(ctx))
	return created, nil
}
