package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListShipmentStatusesQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentStatusesQueryHandler(db *gorm.DB) ListShipmentStatusesQueryHandler {
	return ListShipmentStatusesQueryHandler{db: db}
}

type statusRow struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Color        string
	DisplayOrder int
	Active       bool
}

// Handle returns the catalog in display order.
func (h ListShipmentStatusesQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentStatusesQuery,
) ([]ShipmentStatusView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("shipment_statuses")
	if !query.IncludeInactive() {
		db = db.Where("active = ?", true)
	}

	var rows []statusRow
	if err := db.Order("display_order").Order("name").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ShipmentStatusView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		name := shipment.StatusName(row.Name)
		views = append(views, ShipmentStatusView{
			ID:           id,
			Name:         name,
			Description:  row.Description,
			Color:        row.Color,
			DisplayOrder: row.DisplayOrder,
			Active:       row.Active,
			Next:         shipment.AllowedFrom(name),
		})
	}
	return views, nil
}
