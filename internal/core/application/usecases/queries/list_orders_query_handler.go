package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	filtered := func() *gorm.DB {
		return joinedOrders(h.db.WithContext(ctx)).Scopes(filterScope(query.Filter()))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var rows []orderRow
	err := filtered().
		Select(orderViewColumns).
		Order("o.order_date DESC").
		Order("o.id").
		Limit(query.Limit()).
		Offset((query.Page() - 1) * query.Limit()).
		Scan(&rows).Error
	if err != nil {
		return OrderPage{}, err
	}

	items := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, err := row.view()
		if err != nil {
			return OrderPage{}, err
		}
		items = append(items, view)
	}

	return OrderPage{
		Items: items,
		Meta:  newPageMeta(total, query.Page(), query.Limit()),
	}, nil
}

func filterScope(f OrderFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("s.name = ?", string(*f.Status))
		}
		if f.ClientID != nil {
			db = db.Where("o.client_id = ?", f.ClientID.Bytes())
		}
		if f.CarrierID != nil {
			db = db.Where("o.carrier_id = ?", f.CarrierID.Bytes())
		}
		if f.From != nil {
			db = db.Where("o.order_date >= ?", f.From.UTC())
		}
		if f.To != nil {
			db = db.Where("o.order_date <= ?", f.To.UTC())
		}
		return db
	}
}
