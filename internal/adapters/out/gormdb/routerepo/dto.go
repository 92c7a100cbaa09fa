// Package routerepo persists routes.
package routerepo

import (
	"time"

	"logistics/internal/adapters/out/gormdb/carrierrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"

	"github.com/google/uuid"
)

type RouteDTO struct {
	ID          uuid.UUID               `gorm:"type:char(36);primaryKey"`
	Code        string                  `gorm:"size:20;not null;uniqueIndex"`
	Origin      string                  `gorm:"size:100;not null"`
	Destination string                  `gorm:"size:100;not null"`
	StartHour   int                     `gorm:"not null"`
	EndHour     int                     `gorm:"not null"`
	CarrierID   uuid.UUID               `gorm:"type:char(36);not null;index"`
	Carrier     *carrierrepo.CarrierDTO `gorm:"foreignKey:CarrierID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Active      bool                    `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	return RouteDTO{
		ID:          r.ID().Bytes(),
		Code:        r.Code(),
		Origin:      r.Origin(),
		Destination: r.Destination(),
		StartHour:   r.OperatingHours().Start,
		EndHour:     r.OperatingHours().End,
		CarrierID:   r.CarrierID().Bytes(),
		Active:      r.IsActive(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}
	hours := route.OperatingHours{Start: dto.StartHour, End: dto.EndHour}
	return route.RestoreRoute(id, dto.Code, dto.Origin, dto.Destination, hours, carrierID, dto.Active)
}
