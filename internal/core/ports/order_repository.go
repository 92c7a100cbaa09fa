package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderReference names the foreign key by which orders point at a catalog entity.
type OrderReference string

const (
	ReferenceClient  OrderReference = "client"
	ReferenceProduct OrderReference = "product"
	ReferenceCarrier OrderReference = "carrier"
	ReferenceRoute   OrderReference = "route"
	ReferenceStatus  OrderReference = "status"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order row.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountActiveByCarrier counts the carrier's orders in PENDING, PREPARATION
	// or IN_TRANSIT. Callers lock the carrier row first so the count cannot
	// race with another placement.
	CountActiveByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error)

	// CountReferencing counts orders whose ref column equals id.
	CountReferencing(ctx context.Context, ref OrderReference, id kernel.UUID) (int, error)
}
