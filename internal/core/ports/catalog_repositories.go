package ports

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
)

// ClientRepository persists client aggregates. Add fails with
// errs.ObjectAlreadyExistsError on a duplicate email.
type ClientRepository interface {
	Add(ctx context.Context, aggregate *client.Client) error
	Update(ctx context.Context, aggregate *client.Client) error
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// ProductRepository persists products and their stock ledger.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error
	Update(ctx context.Context, aggregate *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
	// GetForUpdate locks the product row; every stock mutation goes through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)
	Delete(ctx context.Context, id kernel.UUID) error
	// RecordMovement appends a ledger entry.
	RecordMovement(ctx context.Context, movement product.Movement) error
	// HasMovements reports whether the ledger references the product.
	HasMovements(ctx context.Context, id kernel.UUID) (bool, error)
}

// CarrierRepository persists carriers.
type CarrierRepository interface {
	Add(ctx context.Context, aggregate *carrier.Carrier) error
	Update(ctx context.Context, aggregate *carrier.Carrier) error
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)
	// GetForUpdate locks the carrier row, serializing capacity checks.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// RouteRepository persists routes.
type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Route) error
	Update(ctx context.Context, aggregate *route.Route) error
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
	Delete(ctx context.Context, id kernel.UUID) error
	// CountByCarrier counts routes served by the carrier.
	CountByCarrier(ctx context.Context, carrierID kernel.UUID) (int, error)
}

// ShipmentStatusRepository persists the status catalog.
type ShipmentStatusRepository interface {
	Add(ctx context.Context, aggregate *shipment.ShipmentStatus) error
	Update(ctx context.Context, aggregate *shipment.ShipmentStatus) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.ShipmentStatus, error)
	// GetByName looks a catalog row up by its vocabulary name.
	GetByName(ctx context.Context, name shipment.StatusName) (*shipment.ShipmentStatus, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
