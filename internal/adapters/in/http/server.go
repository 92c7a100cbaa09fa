package http

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
)

// UseCase is the shape shared by every command and query handler.
type UseCase[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// StatusSeeder creates the missing rows of the status catalog.
type StatusSeeder interface {
	Handle(ctx context.Context) ([]*shipment.ShipmentStatus, error)
}

// Handlers lists the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder       UseCase[commands.CreateOrderCommand, *order.Order]
	ChangeOrderStatus UseCase[commands.ChangeOrderStatusCommand, commands.StatusChange]
	UpdateOrder       UseCase[commands.UpdateOrderCommand, *order.Order]
	DeleteOrder       UseCase[commands.DeleteOrderCommand, kernel.UUID]

	CreateClient       UseCase[commands.CreateClientCommand, *client.Client]
	CreateProduct      UseCase[commands.CreateProductCommand, *product.Product]
	CreateCarrier      UseCase[commands.CreateCarrierCommand, *carrier.Carrier]
	CreateRoute        UseCase[commands.CreateRouteCommand, *route.Route]
	RemoveEntity       UseCase[commands.RemoveEntityCommand, commands.Removal]
	AdjustProductStock UseCase[commands.AdjustProductStockCommand, commands.StockAdjustment]
	SeedStatuses       StatusSeeder

	GetOrder             UseCase[queries.GetOrderQuery, queries.OrderView]
	ListOrders           UseCase[queries.ListOrdersQuery, queries.OrderPage]
	GetLowStockProducts  UseCase[queries.GetLowStockProductsQuery, []queries.LowStockProduct]
	GetRouteAvailability UseCase[queries.GetRouteAvailabilityQuery, queries.RouteAvailability]
	ListShipmentStatuses UseCase[queries.ListShipmentStatusesQuery, []queries.ShipmentStatusView]
}

// Server translates HTTP requests into commands and queries and their results
// back into JSON.
type Server struct {
	handlers    Handlers
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

// NewServer creates a server over handlers. idempotency may be nil, in which
// case the Idempotency-Key header is ignored.
func NewServer(handlers Handlers, idempotency ports.IdempotencyStore, logger *slog.Logger) *Server {
	return &Server{
		handlers:    handlers,
		idempotency: idempotency,
		logger:      logger.With("component", "HTTPServer"),
	}
}
