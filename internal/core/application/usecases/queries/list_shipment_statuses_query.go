package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/guard"
)

var ErrListShipmentStatusesQueryIsNotConstructed = errors.New(
	"ListShipmentStatusesQuery must be created via NewListShipmentStatusesQuery constructor",
)

type ListShipmentStatusesQuery struct {
	includeInactive bool

	guard guard.ConstructorGuard
}

func NewListShipmentStatusesQuery(includeInactive bool) ListShipmentStatusesQuery {
	return ListShipmentStatusesQuery{includeInactive: includeInactive, guard: guard.NewConstructorGuard()}
}

func (q ListShipmentStatusesQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentStatusesQueryIsNotConstructed)
}

func (q ListShipmentStatusesQuery) IncludeInactive() bool { return q.includeInactive }

// ShipmentStatusView is a catalog row together with the statuses it may move to.
type ShipmentStatusView struct {
	ID           kernel.UUID
	Name         shipment.StatusName
	Description  string
	Color        string
	DisplayOrder int
	Active       bool
	Next         []shipment.StatusName
}
