// Package carrierrepo persists carriers.
package carrierrepo

import (
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CarrierDTO struct {
	ID                  uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name                string    `gorm:"size:100;not null"`
	Document            string    `gorm:"size:50;not null;uniqueIndex"`
	Phone               string    `gorm:"size:20"`
	VehicleType         string    `gorm:"size:30;not null"`
	MaxConcurrentOrders int       `gorm:"not null"`
	Active              bool      `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (CarrierDTO) TableName() string {
	return "carriers"
}

func fromDomain(c *carrier.Carrier) CarrierDTO {
	return CarrierDTO{
		ID:                  c.ID().Bytes(),
		Name:                c.Name(),
		Document:            c.Document(),
		Phone:               c.Phone(),
		VehicleType:         c.VehicleType(),
		MaxConcurrentOrders: c.MaxConcurrentOrders(),
		Active:              c.IsActive(),
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return carrier.RestoreCarrier(id, dto.Name, dto.Document, dto.Phone, dto.VehicleType, dto.MaxConcurrentOrders, dto.Active)
}
