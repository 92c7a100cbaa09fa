package cmd

import (
	"fmt"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/gormdb"
	redisout "logistics/internal/adapters/out/redis"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler over one database handle and, when
// configured, one redis client.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	redis      *redis.Client
	uowFactory *gormdb.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		redis:      redisClient,
		uowFactory: gormdb.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() *commands.CreateClientCommandHandler {
	h := commands.NewCreateClientCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() *commands.CreateProductCommandHandler {
	h := commands.NewCreateProductCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateCarrierCommandHandler() *commands.CreateCarrierCommandHandler {
	h := commands.NewCreateCarrierCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() *commands.CreateRouteCommandHandler {
	h := commands.NewCreateRouteCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateRemoveEntityCommandHandler() *commands.RemoveEntityCommandHandler {
	h := commands.NewRemoveEntityCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateAdjustProductStockCommandHandler() *commands.AdjustProductStockCommandHandler {
	h := commands.NewAdjustProductStockCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateSeedShipmentStatusesCommandHandler() *commands.SeedShipmentStatusesCommandHandler {
	h := commands.NewSeedShipmentStatusesCommandHandler(c.unitOfWorkFactory(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockProductsQueryHandler() queries.GetLowStockProductsQueryHandler {
	return queries.NewGetLowStockProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteAvailabilityQueryHandler() queries.GetRouteAvailabilityQueryHandler {
	return queries.NewGetRouteAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentStatusesQueryHandler() queries.ListShipmentStatusesQueryHandler {
	return queries.NewListShipmentStatusesQueryHandler(c.gormDB)
}

// CreateIdempotencyStore returns nil when no redis client is configured.
func (c *CompositionRoot) CreateIdempotencyStore() ports.IdempotencyStore {
	if c.redis == nil {
		return nil
	}
	return redisout.NewIdempotencyStore(c.redis, redisout.DefaultTTL)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewLowStockReportJob(c.CreateGetLowStockProductsQueryHandler(), c.config.LowStockCron, c.logger),
	)
}

func (c *CompositionRoot) CreateAuthenticator() (httpin.Authenticator, error) {
	if c.config.JWTSecret == "" {
		c.logger.Warn("JWT_SECRET is not set, trusting X-Dev-User and X-Dev-Roles headers")
		return httpin.DevAuthenticator{}, nil
	}
	return httpin.NewJWTAuthenticator(c.config.JWTSecret)
}

// CreateHTTPRouter wires every use case into the echo router.
func (c *CompositionRoot) CreateHTTPRouter() (*echo.Echo, error) {
	auth, err := c.CreateAuthenticator()
	if err != nil {
		return nil, fmt.Errorf("create authenticator: %w", err)
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		UpdateOrder:          c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:          c.CreateDeleteOrderCommandHandler(),
		CreateClient:         c.CreateCreateClientCommandHandler(),
		CreateProduct:        c.CreateCreateProductCommandHandler(),
		CreateCarrier:        c.CreateCreateCarrierCommandHandler(),
		CreateRoute:          c.CreateCreateRouteCommandHandler(),
		RemoveEntity:         c.CreateRemoveEntityCommandHandler(),
		AdjustProductStock:   c.CreateAdjustProductStockCommandHandler(),
		SeedStatuses:         c.CreateSeedShipmentStatusesCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		ListOrders:           c.CreateListOrdersQueryHandler(),
		GetLowStockProducts:  c.CreateGetLowStockProductsQueryHandler(),
		GetRouteAvailability: c.CreateGetRouteAvailabilityQueryHandler(),
		ListShipmentStatuses: c.CreateListShipmentStatusesQueryHandler(),
	}, c.CreateIdempotencyStore(), c.logger)

	return httpin.NewRouter(server, httpin.RouterConfig{
		Authenticator: auth,
		RateLimit:     c.config.RateLimitPerSecond,
		Swagger:       c.config.Swagger,
	}, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
