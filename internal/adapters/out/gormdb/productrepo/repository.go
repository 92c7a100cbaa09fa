package productrepo

import (
	"context"

	"logistics/internal/adapters/out/gormdb/dberr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ports.ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberr.Translate(r.db.WithContext(ctx).Create(&dto).Error, "code", aggregate.Code())
}

func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	return dberr.CheckAffected(result, "productId", aggregate.ID().String())
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate reads the product with SELECT ... FOR UPDATE.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProductRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "productId", id.String())
	}
	return toDomain(dto)
}

func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes())
	return dberr.CheckAffected(result, "productId", id.String())
}

func (r *GormProductRepository) RecordMovement(ctx context.Context, movement product.Movement) error {
	if err := movement.Reason.Validate(); err != nil {
		return err
	}

	dto := movementFromDomain(movement)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Translate(err, "productId", movement.ProductID.String())
}

func (r *GormProductRepository) HasMovements(ctx context.Context, id kernel.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&MovementDTO{}).Where("product_id = ?", id.Bytes()).Count(&n).Error
	return n > 0, err
}
