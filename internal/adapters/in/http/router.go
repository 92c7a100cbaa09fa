package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"logistics/api"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/pkg/actor"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	Authenticator Authenticator
	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables limiting.
	RateLimit float64
	// Swagger mounts the API browser under /swagger.
	Swagger bool
}

// NewRouter builds the echo instance serving every route of the API.
func NewRouter(s *Server, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	if cfg.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validateContract, err := contractValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(gommonlog.WARN)
	e.Validator = structValidator{}
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     max(1, int(cfg.RateLimit*2)),
				ExpiresIn: 3 * time.Minute,
			},
		)))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Swagger {
		if err = registerSwaggerDoc(doc); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	var (
		admin          = requireRoles(actor.RoleAdmin)
		adminOrSeller  = requireRoles(actor.RoleAdmin, actor.RoleSeller)
		adminOrCarrier = requireRoles(actor.RoleAdmin, actor.RoleCarrier)
	)

	v1 := e.Group("/api/v1", authenticate(cfg.Authenticator), validateContract)

	v1.GET("/orders", s.ListOrders)
	v1.POST("/orders", s.CreateOrder, adminOrSeller)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PATCH("/orders/:id", s.UpdateOrder, adminOrSeller)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus, adminOrCarrier)
	v1.DELETE("/orders/:id", s.DeleteOrder, admin)

	v1.POST("/clients", s.CreateClient, adminOrSeller)
	v1.DELETE("/clients/:id", s.remove(commands.KindClient), admin)

	v1.POST("/products", s.CreateProduct, admin)
	v1.GET("/products/low-stock", s.GetLowStockProducts, adminOrSeller)
	v1.PATCH("/products/:id/stock", s.AdjustProductStock, adminOrSeller)
	v1.DELETE("/products/:id", s.remove(commands.KindProduct), admin)

	v1.POST("/carriers", s.CreateCarrier, admin)
	v1.DELETE("/carriers/:id", s.remove(commands.KindCarrier), admin)

	v1.POST("/routes", s.CreateRoute, admin)
	v1.GET("/routes/:id/availability", s.GetRouteAvailability)
	v1.DELETE("/routes/:id", s.remove(commands.KindRoute), admin)

	v1.GET("/shipment-statuses", s.ListShipmentStatuses)
	v1.POST("/shipment-statuses/seed", s.SeedShipmentStatuses, admin)
	v1.DELETE("/shipment-statuses/:id", s.remove(commands.KindShipmentStatus), admin)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"actor", actor.SubjectOf(c.Request().Context()),
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request", slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}
