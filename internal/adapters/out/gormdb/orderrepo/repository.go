package orderrepo

import (
	"context"
	"fmt"

	"logistics/internal/adapters/out/gormdb/dberr"
	"logistics/internal/adapters/out/gormdb/statusrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var referenceColumns = map[ports.OrderReference]string{
	ports.ReferenceClient:  "client_id",
	ports.ReferenceProduct: "product_id",
	ports.ReferenceCarrier: "carrier_id",
	ports.ReferenceRoute:   "route_id",
	ports.ReferenceStatus:  "shipment_status_id",
}

// GormOrderRepository implements ports.OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Translate(err, "orderId", aggregate.ID().String())
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	return dberr.CheckAffected(result, "orderId", aggregate.ID().String())
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// get reads the status name with a second statement so the row lock, when
// requested, covers the orders table alone.
func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "orderId", id.String())
	}

	var status statusrepo.ShipmentStatusDTO
	if err := r.db.WithContext(ctx).Select("name").First(&status, "id = ?", dto.ShipmentStatusID).Error; err != nil {
		return nil, fmt.Errorf("load status of order %s: %w", id, err)
	}

	return toDomain(dto, status.Name)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	return dberr.CheckAffected(result, "orderId", id.String())
}

func (r *GormOrderRepository) CountActiveByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error) {
	names := make([]string, 0, len(shipment.ActiveStatuses()))
	for _, name := range shipment.ActiveStatuses() {
		names = append(names, string(name))
	}

	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Joins("JOIN shipment_statuses ON shipment_statuses.id = orders.shipment_status_id").
		Where("orders.carrier_id = ? AND shipment_statuses.name IN ?", carrierID.Bytes(), names).
		Count(&n).Error
	return int(n), err
}

func (r *GormOrderRepository) CountReferencing(ctx context.Context, ref ports.OrderReference, id kernel.UUID) (int, error) {
	column, ok := referenceColumns[ref]
	if !ok {
		return 0, fmt.Errorf("unknown order reference %q", ref)
	}

	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where(column+" = ?", id.Bytes()).Count(&n).Error
	return int(n), err
}
