// Package gormdb is the relational storage adapter. One schema serves both
// postgres and mysql; the dialect is picked by Settings.Driver.
package gormdb

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/adapters/out/gormdb/carrierrepo"
	"logistics/internal/adapters/out/gormdb/clientrepo"
	"logistics/internal/adapters/out/gormdb/orderrepo"
	"logistics/internal/adapters/out/gormdb/productrepo"
	"logistics/internal/adapters/out/gormdb/routerepo"
	"logistics/internal/adapters/out/gormdb/statusrepo"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type Settings struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the connection string for the configured driver.
func (s Settings) DSN() (string, error) {
	switch s.Driver {
	case DriverPostgres, "":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode), nil
	case DriverMySQL:
		cfg := mysqldriver.NewConfig()
		cfg.User = s.User
		cfg.Passwd = s.Password
		cfg.Net = "tcp"
		cfg.Addr = s.Host + ":" + s.Port
		cfg.DBName = s.Name
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		// Report matched rather than changed rows so an update that rewrites
		// identical values is not mistaken for a missing row.
		cfg.ClientFoundRows = true
		return cfg.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// Open connects with error translation enabled, which dberr relies on.
func Open(s Settings) (*gorm.DB, error) {
	dsn, err := s.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if s.Driver == DriverMySQL {
		dialector = mysql.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}
	return OpenDialector(dialector)
}

func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clientrepo.ClientDTO{},
		&productrepo.ProductDTO{},
		&carrierrepo.CarrierDTO{},
		&statusrepo.ShipmentStatusDTO{},
		&routerepo.RouteDTO{},
		&orderrepo.OrderDTO{},
		&productrepo.MovementDTO{},
	)
}
