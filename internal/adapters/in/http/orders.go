package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const headerIdempotencyKey = "Idempotency-Key"

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var (
		page, limit         *int
		status              *string
		clientID, carrierID *string
		from, to            *time.Time
	)
	if err := errors.Join(
		queryParam(c, "page", &page),
		queryParam(c, "limit", &limit),
		queryParam(c, "status", &status),
		queryParam(c, "clientId", &clientID),
		queryParam(c, "carrierId", &carrierID),
		queryParam(c, "from", &from),
		queryParam(c, "to", &to),
	); err != nil {
		return err
	}

	filter := queries.OrderFilter{From: from, To: to}
	if status != nil {
		name, err := shipment.ParseStatusName(*status)
		if err != nil {
			return err
		}
		filter.Status = &name
	}
	var err error
	if filter.ClientID, err = parseOptionalID("clientId", clientID); err != nil {
		return err
	}
	if filter.CarrierID, err = parseOptionalID("carrierId", carrierID); err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(deref(page), deref(limit), filter)
	if err != nil {
		return err
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderPageResponse(result))
}

// CreateOrder handles POST /api/v1/orders. A repeated Idempotency-Key is
// refused with 409 and, once the first request finished, the id of the
// order it created.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := req.command()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	key := strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey))
	if key == "" || s.idempotency == nil {
		created, err := s.handlers.CreateOrder.Handle(ctx, cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, newOrderResponse(created))
	}

	if err = s.idempotency.Reserve(ctx, key); err != nil {
		if errors.Is(err, ports.ErrIdempotencyKeyInUse) {
			return s.replayConflict(c, key, err)
		}
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
			s.logger.WarnContext(ctx, "failed to release idempotency key", "key", key, "error", releaseErr)
		}
		return err
	}

	if err = s.idempotency.Complete(ctx, key, created.ID().String()); err != nil {
		s.logger.WarnContext(ctx, "failed to complete idempotency key", "key", key, "error", err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(created))
}

func (s *Server) replayConflict(c echo.Context, key string, cause error) error {
	resp := toErrorResponse(cause)
	orderID, ok, err := s.idempotency.Lookup(c.Request().Context(), key)
	if err != nil {
		return err
	}
	if ok {
		resp.Details = map[string]any{"orderId": orderID}
	}
	return c.JSON(resp.Code, resp)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderDetailsResponse(view))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req StatusChangeRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewChangeOrderStatusCommand(id, req.Status, req.Notes)
	if err != nil {
		return err
	}

	change, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusChangeResponse{
		OrderID:        change.OrderID.Bytes(),
		PreviousStatus: change.Previous,
		NewStatus:      change.Current,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req OrderPatchRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := req.command(id)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return err
	}

	deleted, err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeletedResponse{ID: deleted.Bytes()})
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
