package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLowStockProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockProductsQueryHandler(db *gorm.DB) GetLowStockProductsQueryHandler {
	return GetLowStockProductsQueryHandler{db: db}
}

// Handle returns the most depleted products first.
func (h GetLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockProductsQuery,
) ([]LowStockProduct, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]LowStockProduct, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			name,
			category,
			stock,
			stock_minimum
		FROM products
		WHERE active = ? AND stock <= stock_minimum
		ORDER BY stock, code
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p LowStockProduct
		var id uuid.UUID

		if err = rows.Scan(&id, &p.Code, &p.Name, &p.Category, &p.Stock, &p.StockMinimum); err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		p.ID = productID
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
