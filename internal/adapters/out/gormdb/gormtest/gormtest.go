// Package gormtest starts a throwaway postgres for integration suites.
package gormtest

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/gormdb"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Tables lists every table in truncation-safe order.
const Tables = "stock_movements, orders, routes, shipment_statuses, carriers, products, clients"

// Database is a migrated postgres running in a container.
type Database struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// Start runs postgres, opens a connection the way production does and
// migrates the schema.
func Start(t testing.TB) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gormdb.OpenDialector(gormpostgres.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, gormdb.Migrate(db))

	return &Database{DB: db, container: container}
}

// Truncate empties every table.
func (d *Database) Truncate(t testing.TB) {
	t.Helper()
	require.NoError(t, d.DB.Exec("TRUNCATE TABLE "+Tables).Error)
}

func (d *Database) Stop(t testing.TB) {
	t.Helper()
	if d.container != nil {
		require.NoError(t, d.container.Terminate(context.Background()))
	}
}
