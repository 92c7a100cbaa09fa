package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/pkg/actor"
)

// StockAdjustment is the outcome of a manual adjustment. LowStock is set when
// the new level is at or below the product's minimum.
type StockAdjustment struct {
	ProductID kernel.UUID
	Before    int
	After     int
	LowStock  bool
}

type AdjustProductStockCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
	logger     *slog.Logger
}

func NewAdjustProductStockCommandHandler(uowFactory UoWFactory, logger *slog.Logger) AdjustProductStockCommandHandler {
	return AdjustProductStockCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
		logger:     logger.With("component", "AdjustProductStockCommandHandler"),
	}
}

// Handle applies the adjustment. Subtracting more than is in stock fails with
// product.InsufficientStockError and changes nothing.
func (h *AdjustProductStockCommandHandler) Handle(ctx context.Context, cmd AdjustProductStockCommand) (StockAdjustment, error) {
	if err := cmd.Validate(); err != nil {
		return StockAdjustment{}, err
	}

	result, err := withTransaction(ctx, h.uowFactory, "AdjustProductStock",
		func(ctx context.Context, uow UoW) (StockAdjustment, error) {
			change, err := adjustStock(ctx, uow, cmd.ProductID(), cmd.Delta(),
				product.ReasonManualAdjustment, nil, h.now())
			if err != nil {
				return StockAdjustment{}, err
			}
			return StockAdjustment{
				ProductID: change.Product.ID(),
				Before:    change.Before,
				After:     change.Product.Stock(),
				LowStock:  change.Product.IsLowStock(),
			}, nil
		})
	if err != nil {
		return StockAdjustment{}, err
	}

	log := h.logger.InfoContext
	if result.LowStock {
		log = h.logger.WarnContext
	}
	log(ctx, "product stock adjusted",
		"product_id", result.ProductID.String(),
		"before", result.Before,
		"after", result.After,
		"low_stock", result.LowStock,
		"actor", actor.SubjectOf(ctx))

	return result, nil
}
