package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

// GetLowStockProductsQuery lists active products whose stock is at or below
// their minimum.
type GetLowStockProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLowStockProductsQuery() GetLowStockProductsQuery {
	return GetLowStockProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}

type LowStockProduct struct {
	ID           kernel.UUID
	Code         string
	Name         string
	Category     string
	Stock        int
	StockMinimum int
}

// Shortfall is how many units would bring stock back above the minimum.
func (p LowStockProduct) Shortfall() int {
	return p.StockMinimum - p.Stock + 1
}
