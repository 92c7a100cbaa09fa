// Package statusrepo persists the shipment status catalog.
package statusrepo

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

type ShipmentStatusDTO struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name         string    `gorm:"size:20;not null;uniqueIndex"`
	Description  string    `gorm:"size:255"`
	Color        string    `gorm:"size:7;not null"`
	DisplayOrder int       `gorm:"not null"`
	Active       bool      `gorm:"not null"`
}

func (ShipmentStatusDTO) TableName() string {
	return "shipment_statuses"
}

func fromDomain(s *shipment.ShipmentStatus) ShipmentStatusDTO {
	return ShipmentStatusDTO{
		ID:           s.ID().Bytes(),
		Name:         string(s.Name()),
		Description:  s.Description(),
		Color:        s.Color(),
		DisplayOrder: s.DisplayOrder(),
		Active:       s.IsActive(),
	}
}

func toDomain(dto ShipmentStatusDTO) (*shipment.ShipmentStatus, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return shipment.RestoreShipmentStatus(id, shipment.Definition{
		Name:         shipment.StatusName(dto.Name),
		Description:  dto.Description,
		Color:        dto.Color,
		DisplayOrder: dto.DisplayOrder,
	}, dto.Active)
}
