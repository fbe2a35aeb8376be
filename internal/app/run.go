package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"climate-server/internal/config"
	"climate-server/internal/db"
	"climate-server/internal/httpapi"
	"climate-server/internal/modules/climate"
)

func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"dbLogSQL", cfg.LogSQL,
		"metricsEnabled", cfg.MetricsEnabled,
		"gzipEnabled", cfg.GzipEnabled,
	)

	dbConn, dialect, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			logger.Error("db close", "error", closeErr)
		}
	}()

	var ok int
	err = dbConn.QueryRowContext(ctx, `SELECT 1`).Scan(&ok)
	if err != nil {
		return err
	}
	if ok != 1 {
		return errors.New("database connection failed")
	}
	logger.Info("database connection successful", "driver", dialect.DriverName)

	srv := httpapi.NewServer(cfg, NewHandler(cfg, dbConn, dialect, logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	logger.Info("http shutting down", "timeout", cfg.ShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}

// NewHandler wires the climate feature onto the root router.
func NewHandler(cfg config.Config, dbConn *sql.DB, dialect db.Dialect, logger *slog.Logger) http.Handler {
	opts := httpapi.RouterOptions{Logger: logger, Gzip: cfg.GzipEnabled}
	if cfg.MetricsEnabled {
		opts.Metrics = httpapi.NewMetrics(dbConn)
	}
	r := httpapi.NewRouter(dbConn, opts)
	climate.RegisterFeature(r, dbConn, dialect, logger)
	return r
}
