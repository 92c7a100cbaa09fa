package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"logistics/internal/adapters/out/gormdb"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBDriver      string `env:"DB_DRIVER"       envDefault:"postgres"`
	DBHost        string `env:"DB_HOST"         envDefault:"localhost"`
	DBPort        string `env:"DB_PORT"         envDefault:"5432"`
	DBUser        string `env:"DB_USER"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME"`
	DBSslMode     string `env:"DB_SSLMODE"      envDefault:"disable"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// RedisAddr enables Idempotency-Key support on order creation when set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// JWTSecret switches authentication from the dev headers to HS256 tokens.
	JWTSecret          string  `env:"JWT_SECRET"`
	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"20"`
	Swagger            bool    `env:"SWAGGER"               envDefault:"true"`

	LowStockCron string `env:"LOW_STOCK_CRON"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads path (usually ".env") if it exists and then parses the
// environment. Variables already set win over the file.
func LoadConfig(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var joined []error
	switch c.DBDriver {
	case gormdb.DriverPostgres, gormdb.DriverMySQL:
	default:
		joined = append(joined, fmt.Errorf("%w: DB_DRIVER=%q", gormdb.ErrUnknownDriver, c.DBDriver))
	}
	if c.DBName == "" {
		joined = append(joined, errors.New("DB_NAME is required"))
	}
	if c.RateLimitPerSecond < 0 {
		joined = append(joined, errors.New("RATE_LIMIT_PER_SECOND must not be negative"))
	}
	return errors.Join(joined...)
}

func (c Config) Database() gormdb.Settings {
	return gormdb.Settings{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// SlogLevel maps LOG_LEVEL onto slog. Unknown values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
