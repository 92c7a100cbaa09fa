package queries

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRouteAvailabilityQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteAvailabilityQueryHandler(db *gorm.DB) GetRouteAvailabilityQueryHandler {
	return GetRouteAvailabilityQueryHandler{db: db}
}

type routeRow struct {
	ID          uuid.UUID
	Code        string
	Origin      string
	Destination string
	StartHour   int
	EndHour     int
	CarrierID   uuid.UUID
	Active      bool
}

func (h GetRouteAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetRouteAvailabilityQuery,
) (RouteAvailability, error) {
	if err := query.Validate(); err != nil {
		return RouteAvailability{}, err
	}

	var rows []routeRow
	err := h.db.WithContext(ctx).Table("routes").
		Where("id = ?", query.RouteID().Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return RouteAvailability{}, err
	}
	if len(rows) == 0 {
		return RouteAvailability{}, errs.NewObjectNotFoundError("routeId", query.RouteID().String())
	}

	r, err := rows[0].route()
	if err != nil {
		return RouteAvailability{}, err
	}

	availability := RouteAvailability{
		RouteID:   r.ID(),
		Code:      r.Code(),
		Active:    r.IsActive(),
		Hours:     r.OperatingHours(),
		At:        query.At(),
		Available: r.IsOperatingAt(query.At()),
	}
	switch {
	case !r.IsActive():
		availability.Reason = "route is inactive"
	case !availability.Available:
		availability.Reason = fmt.Sprintf("outside operating hours %dh-%dh", r.OperatingHours().Start, r.OperatingHours().End)
	}
	return availability, nil
}

func (row routeRow) route() (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(row.CarrierID[:])
	if err != nil {
		return nil, err
	}
	hours := route.OperatingHours{Start: row.StartHour, End: row.EndHour}
	return route.RestoreRoute(id, row.Code, row.Origin, row.Destination, hours, carrierID, row.Active)
}
