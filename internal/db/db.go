package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"climate-server/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// Open returns a pooled handle to the observation store described by cfg,
// along with the SQL dialect repositories should bind their queries for.
// SQLite files are opened read-only.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	dsn, err := buildDSN(cfg, dialect)
	if err != nil {
		return nil, Dialect{}, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		connector, err := NewLoggingConnector(dialect.DriverName, dsn, logger)
		if err != nil {
			return nil, Dialect{}, err
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(dialect.DriverName, dsn)
		if err != nil {
			return nil, Dialect{}, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Validate connectivity early
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("db ping: %w", err)
	}

	return db, dialect, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func buildDSN(cfg config.Config, dialect Dialect) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if !dialect.IsSQLite() {
		return "", fmt.Errorf("DB_DSN is required for DB_DRIVER %q", dialect.Name)
	}

	// The dataset is provisioned externally; never create an empty file in its place.
	path := strings.TrimPrefix(cfg.Path, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("sqlite database %s: %w", path, err)
	}

	var params []string
	switch dialect.Name {
	case "sqlite3":
		// mattn/go-sqlite3 options
		params = []string{"mode=ro", "_busy_timeout=5000", "_query_only=1"}
	case "sqlite":
		// modernc.org/sqlite options
		params = []string{"mode=ro", "_pragma=busy_timeout(5000)", "_pragma=query_only(1)"}
	}

	// If caller provided something like "file:/data/hawaii.sqlite?x=y" as Path, don't double-wrap
	if strings.HasPrefix(cfg.Path, "file:") {
		sep := "?"
		if strings.Contains(cfg.Path, "?") {
			sep = "&"
		}
		return cfg.Path + sep + strings.Join(params, "&"), nil
	}

	return fmt.Sprintf("file:%s?%s", cfg.Path, strings.Join(params, "&")), nil
}
