package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/services"
)

// carrierActiveOrderCount counts the carrier's orders occupying a capacity
// slot. It reads through uow, so the caller must already hold the carrier
// row lock for the count to be stable.
func carrierActiveOrderCount(ctx context.Context, uow UoW, carrierID kernel.UUID) (int, error) {
	return uow.OrderRepository().CountActiveByCarrier(ctx, carrierID)
}

// adjustStock locks the product, applies delta with the non-negative floor
// check and records the movement. It never commits.
func adjustStock(
	ctx context.Context,
	uow UoW,
	productID kernel.UUID,
	delta int,
	reason product.MovementReason,
	orderID *kernel.UUID,
	now time.Time,
) (services.StockChange, error) {
	p, err := uow.ProductRepository().GetForUpdate(ctx, productID)
	if err != nil {
		return services.StockChange{}, err
	}

	before, err := p.AdjustStock(delta)
	if err != nil {
		return services.StockChange{}, err
	}

	change := services.StockChange{Product: p, Before: before}
	if err = persistStockChange(ctx, uow, change, reason, orderID, now); err != nil {
		return services.StockChange{}, err
	}
	return change, nil
}

// persistStockChange saves a product whose stock was changed in memory and
// appends the matching ledger movement.
func persistStockChange(
	ctx context.Context,
	uow UoW,
	change services.StockChange,
	reason product.MovementReason,
	orderID *kernel.UUID,
	now time.Time,
) error {
	if err := uow.ProductRepository().Update(ctx, change.Product); err != nil {
		return err
	}

	movement, err := product.NewMovement(change.Product, change.Before, reason, orderID, now)
	if err != nil {
		return err
	}
	return uow.ProductRepository().RecordMovement(ctx, movement)
}
