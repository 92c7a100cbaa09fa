package statusrepo

import (
	"context"

	"logistics/internal/adapters/out/gormdb/dberr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormShipmentStatusRepository implements ports.ShipmentStatusRepository.
type GormShipmentStatusRepository struct {
	db *gorm.DB
}

func NewGormShipmentStatusRepository(db *gorm.DB) *GormShipmentStatusRepository {
	return &GormShipmentStatusRepository{db: db}
}

func (r *GormShipmentStatusRepository) Add(ctx context.Context, aggregate *shipment.ShipmentStatus) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "name", aggregate.Name())
}

func (r *GormShipmentStatusRepository) Update(ctx context.Context, aggregate *shipment.ShipmentStatus) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentStatusDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	return dberr.CheckAffected(result, "statusId", aggregate.ID().String())
}

func (r *GormShipmentStatusRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.ShipmentStatus, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentStatusDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "statusId", id.String())
	}
	return toDomain(dto)
}

func (r *GormShipmentStatusRepository) GetByName(ctx context.Context, name shipment.StatusName) (*shipment.ShipmentStatus, error) {
	var dto ShipmentStatusDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", string(name)).Error; err != nil {
		return nil, dberr.Translate(err, "status", string(name))
	}
	return toDomain(dto)
}

func (r *GormShipmentStatusRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentStatusDTO{}, "id = ?", id.Bytes())
	return dberr.CheckAffected(result, "statusId", id.String())
}
