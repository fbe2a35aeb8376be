package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"
)

// captureHandler records log records for assertion in tests.
type captureHandler struct {
	mu    sync.Mutex
	attrs []map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := make(map[string]slog.Value)
	m["msg"] = slog.StringValue(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	h.attrs = append(h.attrs, m)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(name string) slog.Handler { return h }

func (h *captureHandler) recordsFor(t *testing.T, msg string) []map[string]slog.Value {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []map[string]slog.Value
	for _, m := range h.attrs {
		if m["msg"].String() == msg {
			out = append(out, m)
		}
	}
	return out
}

func (h *captureHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attrs = nil
}

func openLogged(t *testing.T, driverName string, logger *slog.Logger) *sql.DB {
	t.Helper()
	connector, err := NewLoggingConnector(driverName, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	db := sql.OpenDB(connector)
	// every :memory: connection is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewLoggingConnector_nilLoggerUsesDefault(t *testing.T) {
	conn, err := NewLoggingConnector("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	lc, ok := conn.(*loggingConnector)
	if !ok {
		t.Fatalf("conn type = %T, want *loggingConnector", conn)
	}
	if lc.logger != slog.Default() {
		t.Error("logger is not slog.Default()")
	}
}

func TestNewLoggingConnector_unknownDriver(t *testing.T) {
	if _, err := NewLoggingConnector("no-such-driver", "", nil); err == nil {
		t.Fatal("NewLoggingConnector(no-such-driver): error = nil, want non-nil")
	}
}

func TestLoggingConnector_ExecAndQueryLogged(t *testing.T) {
	for _, driverName := range []string{"sqlite3", "sqlite"} {
		t.Run(driverName, func(t *testing.T) {
			handler := &captureHandler{}
			db := openLogged(t, driverName, slog.New(handler))

			if _, err := db.Exec(`CREATE TABLE station (id INTEGER PRIMARY KEY, station TEXT)`); err != nil {
				t.Fatalf("create table: %v", err)
			}
			recs := handler.recordsFor(t, "sql")
			if len(recs) == 0 {
				t.Fatal("expected at least one sql log record for Exec")
			}
			got := recs[len(recs)-1]
			if got["op"].String() != "exec" {
				t.Errorf("op: got %q, want exec", got["op"].String())
			}
			if got["sql"].String() != `CREATE TABLE station (id INTEGER PRIMARY KEY, station TEXT)` {
				t.Errorf("sql: got %q", got["sql"].String())
			}
			if _, ok := got["duration_ms"]; !ok {
				t.Error("expected duration_ms attribute in log")
			}

			handler.reset()
			var one int
			if err := db.QueryRow(`SELECT 1`).Scan(&one); err != nil {
				t.Fatalf("query row: %v", err)
			}
			recs = handler.recordsFor(t, "sql")
			if len(recs) == 0 {
				t.Fatal("expected sql log record for QueryRow")
			}
			got = recs[len(recs)-1]
			if got["op"].String() != "query" {
				t.Errorf("op: got %q, want query", got["op"].String())
			}
			if got["sql"].String() != `SELECT 1` {
				t.Errorf("sql: got %q", got["sql"].String())
			}
		})
	}
}

func TestLoggingConnector_QueryWithArgsLogged(t *testing.T) {
	handler := &captureHandler{}
	db := openLogged(t, "sqlite3", slog.New(handler))

	if _, err := db.Exec(`CREATE TABLE measurement (station TEXT, date TEXT, prcp REAL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO measurement VALUES (?, ?, ?)`, "USC00519397", "2017-08-23", nil); err != nil {
		t.Fatalf("insert: %v", err)
	}
	handler.reset()

	rows, err := db.Query(`SELECT date, prcp FROM measurement WHERE date BETWEEN ? AND ?`, "2016-08-23", "2017-08-23")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	_ = rows.Close()

	recs := handler.recordsFor(t, "sql")
	if len(recs) == 0 {
		t.Fatal("expected sql log for Query with args")
	}
	args := recs[len(recs)-1]["args"].Any()
	list, ok := args.([]string)
	if !ok {
		t.Fatalf("args type = %T, want []string", args)
	}
	if len(list) != 2 || list[0] != "2016-08-23" || list[1] != "2017-08-23" {
		t.Errorf("args = %v", list)
	}
}

func TestLoggingConnector_ErrorLogged(t *testing.T) {
	handler := &captureHandler{}
	db := openLogged(t, "sqlite3", slog.New(handler))

	if _, err := db.Exec(`INSERT INTO missing_table VALUES (?)`, 1); err == nil {
		t.Fatal("insert into missing table: error = nil, want non-nil")
	}
	// sqlite rejects the statement at prepare time, so nothing reaches the stmt wrapper
	if recs := handler.recordsFor(t, "sql"); len(recs) != 0 {
		t.Errorf("got %d sql records for a statement that failed to prepare", len(recs))
	}
}

func TestLoggingConnector_PingSucceeds(t *testing.T) {
	db := openLogged(t, "sqlite3", slog.Default())
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestFormatArg(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: "NULL"},
		{in: []byte("abc"), want: "abc"},
		{in: int64(70), want: "70"},
		{in: 0.08, want: "0.08"},
	}
	for _, tt := range tests {
		if got := formatArg(tt.in); got != tt.want {
			t.Errorf("formatArg(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
