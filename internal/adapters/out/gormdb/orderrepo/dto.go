// Package orderrepo persists order aggregates.
package orderrepo

import (
	"time"

	"logistics/internal/adapters/out/gormdb/carrierrepo"
	"logistics/internal/adapters/out/gormdb/clientrepo"
	"logistics/internal/adapters/out/gormdb/productrepo"
	"logistics/internal/adapters/out/gormdb/routerepo"
	"logistics/internal/adapters/out/gormdb/statusrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Every reference is RESTRICT so catalog rows
// still used by an order cannot be deleted underneath it.
type OrderDTO struct {
	ID                uuid.UUID                     `gorm:"type:char(36);primaryKey"`
	ClientID          uuid.UUID                     `gorm:"type:char(36);not null;index"`
	Client            *clientrepo.ClientDTO         `gorm:"foreignKey:ClientID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	ProductID         uuid.UUID                     `gorm:"type:char(36);not null;index"`
	Product           *productrepo.ProductDTO       `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	CarrierID         uuid.UUID                     `gorm:"type:char(36);not null;index:idx_orders_carrier_status,priority:1"`
	Carrier           *carrierrepo.CarrierDTO       `gorm:"foreignKey:CarrierID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	RouteID           uuid.UUID                     `gorm:"type:char(36);not null;index"`
	Route             *routerepo.RouteDTO           `gorm:"foreignKey:RouteID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	ShipmentStatusID  uuid.UUID                     `gorm:"type:char(36);not null;index:idx_orders_carrier_status,priority:2"`
	ShipmentStatus    *statusrepo.ShipmentStatusDTO `gorm:"foreignKey:ShipmentStatusID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Quantity          int                           `gorm:"not null"`
	Total             decimal.Decimal               `gorm:"type:decimal(10,2);not null"`
	OrderDate         time.Time                     `gorm:"not null;index"`
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                o.ID().Bytes(),
		ClientID:          o.ClientID().Bytes(),
		ProductID:         o.ProductID().Bytes(),
		CarrierID:         o.CarrierID().Bytes(),
		RouteID:           o.RouteID().Bytes(),
		ShipmentStatusID:  o.Status().ID.Bytes(),
		Quantity:          o.Quantity(),
		Total:             o.Total().Decimal(),
		OrderDate:         o.OrderDate(),
		EstimatedDelivery: o.EstimatedDelivery(),
		ActualDelivery:    o.ActualDelivery(),
		Notes:             o.Notes(),
	}
}

func toDomain(dto OrderDTO, statusName string) (*order.Order, error) {
	ids := make([]kernel.UUID, 0, 6)
	for _, raw := range []uuid.UUID{dto.ID, dto.ClientID, dto.ProductID, dto.CarrierID, dto.RouteID, dto.ShipmentStatusID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(ids[0], order.Snapshot{
		ClientID:          ids[1],
		ProductID:         ids[2],
		CarrierID:         ids[3],
		RouteID:           ids[4],
		Status:            order.StatusRef{ID: ids[5], Name: shipment.StatusName(statusName)},
		Quantity:          dto.Quantity,
		Total:             total,
		OrderDate:         dto.OrderDate,
		EstimatedDelivery: dto.EstimatedDelivery,
		ActualDelivery:    dto.ActualDelivery,
		Notes:             dto.Notes,
	})
}
