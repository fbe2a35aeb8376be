package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultSQLitePath = "Resources/hawaii.sqlite"

type Config struct {
	AppEnv       string     `envconfig:"APP_ENV" default:"dev" validate:"oneof=dev prod"`
	LogLevelName string     `envconfig:"LOG_LEVEL" default:"info"`
	LogLevel     slog.Level `ignored:"true"`
	HTTPAddr     string     `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`

	// Driver selects the store: sqlite3 (cgo), sqlite (pure Go), postgres, mysql or mssql.
	Driver string `envconfig:"DB_DRIVER" default:"sqlite3" validate:"oneof=sqlite3 sqlite postgres mysql mssql"`
	// DSN overrides Path for SQLite and is required for every other driver.
	DSN             string        `envconfig:"DB_DSN"`
	Path            string        `envconfig:"SQLITE_PATH" default:"Resources/hawaii.sqlite"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"4" validate:"gte=0"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2" validate:"gte=0"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"0s" validate:"gte=0"`
	LogSQL          bool          `envconfig:"DB_LOG_SQL" default:"false"`

	MetricsEnabled  bool          `envconfig:"METRICS_ENABLED" default:"true"`
	GzipEnabled     bool          `envconfig:"GZIP_ENABLED" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

// LoadFromEnv reads a .env file when one is present, then the process
// environment. Variables already set in the environment win over .env.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.AppEnv = strings.TrimSpace(cfg.AppEnv)
	if cfg.AppEnv == "" {
		cfg.AppEnv = "dev"
	}
	cfg.HTTPAddr = strings.TrimSpace(cfg.HTTPAddr)
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	if cfg.Driver == "" {
		cfg.Driver = "sqlite3"
	}
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Path == "" {
		cfg.Path = defaultSQLitePath
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	level, err := parseLogLevel(cfg.LogLevelName)
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if !cfg.IsSQLite() && cfg.DSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required for DB_DRIVER %q", cfg.Driver)
	}

	return cfg, nil
}

func (c Config) IsSQLite() bool {
	return c.Driver == "sqlite3" || c.Driver == "sqlite"
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
