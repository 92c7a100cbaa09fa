package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics/cmd"
	"logistics/internal/adapters/out/gormdb"
	"logistics/internal/pkg/actor"
	"logistics/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	serviceName     = "logistics"
	shutdownTimeout = 10 * time.Second
)

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	if err = run(config, logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(config cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, config.OTelEndpoint)
	if err != nil {
		return err
	}
	defer shutdown(logger, "tracing", shutdownTracing)

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer closeDatabase(logger, db)

	redisClient := openRedis(ctx, config, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis client", "error", err)
			}
		}()
	}

	app := cmd.NewCompositionRoot(config, db, redisClient, logger)

	seedCtx := actor.WithActor(ctx, actor.System())
	if _, err = app.CreateSeedShipmentStatusesCommandHandler().Handle(seedCtx); err != nil {
		return fmt.Errorf("seed shipment statuses: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateHTTPRouter()
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gormdb.Open(config.Database())
	if err != nil {
		return nil, err
	}
	if config.DBAutoMigrate {
		if err = gormdb.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func closeDatabase(logger *slog.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to get database handle", "error", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Warn("failed to close database", "error", err)
	}
}

// openRedis returns nil when REDIS_ADDR is empty or the server does not
// answer; order creation then ignores Idempotency-Key.
func openRedis(ctx context.Context, config cmd.Config, logger *slog.Logger) *redis.Client {
	if config.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, idempotency keys disabled", "addr", config.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

func shutdown(logger *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Warn("shutdown failed", "component", name, "error", err)
	}
}
