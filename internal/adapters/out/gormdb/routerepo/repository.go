package routerepo

import (
	"context"

	"logistics/internal/adapters/out/gormdb/dberr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Translate(err, "code", aggregate.Code())
}

func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	return dberr.CheckAffected(result, "routeId", aggregate.ID().String())
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "routeId", id.String())
	}
	return toDomain(dto)
}

func (r *GormRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RouteDTO{}, "id = ?", id.Bytes())
	return dberr.CheckAffected(result, "routeId", id.String())
}

func (r *GormRouteRepository) CountByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&RouteDTO{}).Where("carrier_id = ?", carrierID.Bytes()).Count(&n).Error
	return int(n), err
}
