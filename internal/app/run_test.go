package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"climate-server/internal/config"
	"climate-server/internal/db"
	"climate-server/internal/modules/climate/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDataset creates a file-backed store with the schema and a few rows.
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open dataset: %v", err)
	}
	defer func() { _ = conn.Close() }()
	for _, stmt := range []string{
		repository.Schema,
		`INSERT INTO station (id, station, name, latitude, longitude, elevation) VALUES
			(1, 'USC00519397', 'WAIKIKI 717.2, HI US', 21.2716, -157.8168, 3.0)`,
		`INSERT INTO measurement (id, station, date, prcp, tobs) VALUES
			(1, 'USC00519397', '2017-01-01', 0.00, 70),
			(2, 'USC00519397', '2017-08-23', 0.08, 81)`,
	} {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("seed dataset: %v", err)
		}
	}
	return path
}

func testConfig(path string) config.Config {
	return config.Config{
		AppEnv:          "dev",
		HTTPAddr:        "127.0.0.1:0",
		Driver:          "sqlite3",
		Path:            path,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		MetricsEnabled:  true,
		GzipEnabled:     true,
		ShutdownTimeout: 2 * time.Second,
	}
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig(writeDataset(t))
	conn, dialect, err := db.Open(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	ts := httptest.NewServer(NewHandler(cfg, conn, dialect, discardLogger()))
	t.Cleanup(ts.Close)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/healthz", status: http.StatusOK, body: `"status":"ok"`},
		{path: "/", status: http.StatusOK, body: `"/api/v1.0/stations"`},
		{path: "/api/v1.0/precipitation", status: http.StatusOK, body: `"2017-08-23":0.08`},
		{path: "/api/v1.0/stations", status: http.StatusOK, body: `"id":"USC00519397"`},
		{path: "/api/v1.0/tobs", status: http.StatusOK, body: `"station":"USC00519397"`},
		{path: "/api/v1.0/2017-01-01/2017-01-01", status: http.StatusOK, body: `{"mintemp":70,"avetemp":70,"maxtemp":70}`},
		{path: "/api/v1.0/2017-01-01", status: http.StatusOK, body: `"maxtemp":81`},
		{path: "/api/v1.0/2021-13-40", status: http.StatusBadRequest, body: `2021-13-40`},
		{path: "/metrics", status: http.StatusOK, body: `climate_http_requests_total`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := ts.Client().Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer func() { _ = resp.Body.Close() }()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d; want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			if !strings.Contains(string(body), tt.body) {
				t.Errorf("body = %s; want it to contain %s", body, tt.body)
			}
		})
	}
}

func TestNewHandler_MetricsDisabled(t *testing.T) {
	cfg := testConfig(writeDataset(t))
	cfg.MetricsEnabled = false
	conn, dialect, err := db.Open(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	rec := httptest.NewRecorder()
	NewHandler(cfg, conn, dialect, discardLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("body = %s; want JSON error", rec.Body.String())
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, testConfig(writeDataset(t)), discardLogger()) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v; want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_MissingDataset(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "absent.sqlite"))

	err := Run(context.Background(), cfg, discardLogger())
	if err == nil {
		t.Fatal("Run with a missing dataset returned nil")
	}
	if !strings.Contains(err.Error(), "absent.sqlite") {
		t.Errorf("error = %v; want it to name the path", err)
	}
}
