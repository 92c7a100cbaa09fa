package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/route"

	"github.com/labstack/echo/v4"
)

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(c echo.Context) error {
	var req NewClientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateClientCommand(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateClient.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdClient(created))
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(c echo.Context) error {
	var req NewProductRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateProductCommand(req.Code, req.Name, req.Price, req.Stock, req.StockMinimum, req.Category)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdProduct(created))
}

// AdjustProductStock handles PATCH /api/v1/products/{id}/stock.
func (s *Server) AdjustProductStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req StockAdjustmentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewAdjustProductStockCommand(id, req.Quantity, req.Operation)
	if err != nil {
		return err
	}

	adjusted, err := s.handlers.AdjustProductStock.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StockAdjustmentResponse{
		ProductID:   adjusted.ProductID.Bytes(),
		StockBefore: adjusted.Before,
		StockAfter:  adjusted.After,
		LowStock:    adjusted.LowStock,
	})
}

// GetLowStockProducts handles GET /api/v1/products/low-stock.
func (s *Server) GetLowStockProducts(c echo.Context) error {
	products, err := s.handlers.GetLowStockProducts.Handle(c.Request().Context(), queries.NewGetLowStockProductsQuery())
	if err != nil {
		return err
	}

	resp := make([]LowStockProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, LowStockProductResponse{
			ID:           p.ID.Bytes(),
			Code:         p.Code,
			Name:         p.Name,
			Category:     p.Category,
			Stock:        p.Stock,
			StockMinimum: p.StockMinimum,
			Shortfall:    p.Shortfall(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(c echo.Context) error {
	var req NewCarrierRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateCarrierCommand(req.Name, req.Document, req.Phone, req.VehicleType, req.MaxConcurrentOrders)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateCarrier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdCarrier(created))
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(c echo.Context) error {
	var req NewRouteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	carrierID, err := parseID("carrierId", req.CarrierID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateRouteCommand(
		req.Code, req.Origin, req.Destination,
		route.OperatingHours{Start: req.StartHour, End: req.EndHour},
		carrierID,
	)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdRoute(created))
}

// GetRouteAvailability handles GET /api/v1/routes/{id}/availability. Without
// an "at" parameter the current time is used.
func (s *Server) GetRouteAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var at *time.Time
	if err = queryParam(c, "at", &at); err != nil {
		return err
	}
	when := time.Now()
	if at != nil {
		when = *at
	}

	query, err := queries.NewGetRouteAvailabilityQuery(id, when)
	if err != nil {
		return err
	}
	availability, err := s.handlers.GetRouteAvailability.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RouteAvailabilityResponse{
		RouteID:   availability.RouteID.Bytes(),
		Code:      availability.Code,
		Active:    availability.Active,
		StartHour: availability.Hours.Start,
		EndHour:   availability.Hours.End,
		At:        availability.At,
		Available: availability.Available,
		Reason:    availability.Reason,
	})
}

// ListShipmentStatuses handles GET /api/v1/shipment-statuses.
func (s *Server) ListShipmentStatuses(c echo.Context) error {
	var includeInactive *bool
	if err := queryParam(c, "includeInactive", &includeInactive); err != nil {
		return err
	}
	query := queries.NewListShipmentStatusesQuery(includeInactive != nil && *includeInactive)

	statuses, err := s.handlers.ListShipmentStatuses.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	resp := make([]ShipmentStatusResponse, 0, len(statuses))
	for _, v := range statuses {
		resp = append(resp, newShipmentStatusResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// SeedShipmentStatuses handles POST /api/v1/shipment-statuses/seed.
func (s *Server) SeedShipmentStatuses(c echo.Context) error {
	statuses, err := s.handlers.SeedStatuses.Handle(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]ShipmentStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		resp = append(resp, seededStatusResponse(st))
	}
	return c.JSON(http.StatusOK, resp)
}

// remove handles DELETE for every catalog entity of kind.
func (s *Server) remove(kind commands.EntityKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		cmd, err := commands.NewRemoveEntityCommand(kind, id)
		if err != nil {
			return err
		}

		removal, err := s.handlers.RemoveEntity.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, newRemovalResponse(removal))
	}
}
