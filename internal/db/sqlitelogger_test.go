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
	mu      sync.Mutex
	records []map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := map[string]slog.Value{"msg": slog.StringValue(r.Message)}
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value
		return true
	})
	h.records = append(h.records, m)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func (h *captureHandler) statements() []map[string]slog.Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []map[string]slog.Value
	for _, m := range h.records {
		if m["msg"].String() == statementMsg {
			out = append(out, m)
		}
	}
	return out
}

func (h *captureHandler) last(t *testing.T) map[string]slog.Value {
	t.Helper()
	recs := h.statements()
	if len(recs) == 0 {
		t.Fatal("no sql statement records captured")
	}
	return recs[len(recs)-1]
}

func (h *captureHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}

func openLogged(t *testing.T) (*sql.DB, *captureHandler) {
	t.Helper()
	handler := &captureHandler{}
	connector, err := NewLoggingConnector(":memory:", slog.New(handler))
	if err != nil {
		t.Fatalf("NewLoggingConnector: %v", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db, handler
}

func TestNewLoggingConnector(t *testing.T) {
	t.Run("nil logger uses default", func(t *testing.T) {
		conn, err := NewLoggingConnector(":memory:", nil)
		if err != nil {
			t.Fatalf("NewLoggingConnector: %v", err)
		}
		if conn.(*loggingConnector).logger == nil {
			t.Fatal("logger is nil")
		}
	})

	t.Run("empty dsn is rejected", func(t *testing.T) {
		if _, err := NewLoggingConnector("", nil); err == nil {
			t.Fatal("NewLoggingConnector(\"\") error = nil, want non-nil")
		}
	})
}

func TestLoggingConnector_ExecAndQueryLogged(t *testing.T) {
	db, handler := openLogged(t)

	if _, err := db.Exec(`CREATE TABLE measurements (day TEXT, parameter TEXT, value REAL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	got := handler.last(t)
	if got["op"].String() != "exec" {
		t.Errorf("op = %q, want exec", got["op"].String())
	}
	if got["sql"].String() != `CREATE TABLE measurements (day TEXT, parameter TEXT, value REAL)` {
		t.Errorf("sql = %q", got["sql"].String())
	}
	if _, ok := got["elapsed_ms"]; !ok {
		t.Error("elapsed_ms attribute missing")
	}

	handler.reset()
	if _, err := db.Exec(`INSERT INTO measurements VALUES (?, ?, ?)`, "2026-01-01", "PM2.5", 25.0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got = handler.last(t)
	args, ok := got["args"].Any().([]string)
	if !ok {
		t.Fatalf("args type = %T, want []string", got["args"].Any())
	}
	if len(args) != 3 || args[0] != "2026-01-01" || args[1] != "PM2.5" || args[2] != "25" {
		t.Errorf("args = %v", args)
	}

	handler.reset()
	var value float64
	if err := db.QueryRow(`SELECT value FROM measurements WHERE parameter = ?`, "PM2.5").Scan(&value); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if value != 25 {
		t.Errorf("value = %v, want 25", value)
	}
	got = handler.last(t)
	if got["op"].String() != "query" {
		t.Errorf("op = %q, want query", got["op"].String())
	}
}

func TestLoggingConnector_MultiStatementExec(t *testing.T) {
	db, _ := openLogged(t)

	script := `
CREATE TABLE a (id INTEGER);
CREATE TABLE b (id INTEGER);
INSERT INTO b (id) VALUES (1), (2);
`
	if _, err := db.Exec(script); err != nil {
		t.Fatalf("exec script: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM b`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows in b = %d, want 2 (every statement of the script must run)", n)
	}
}

func TestLoggingConnector_PreparedStatementLogged(t *testing.T) {
	db, handler := openLogged(t)

	if _, err := db.Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	stmt, err := db.Prepare(`INSERT INTO t (id) VALUES (?)`)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	defer func() { _ = stmt.Close() }()

	handler.reset()
	if _, err := stmt.Exec(7); err != nil {
		t.Fatalf("stmt exec: %v", err)
	}
	got := handler.last(t)
	if got["sql"].String() != `INSERT INTO t (id) VALUES (?)` {
		t.Errorf("sql = %q", got["sql"].String())
	}
}

func TestLoggingConnector_ErrorLogged(t *testing.T) {
	db, handler := openLogged(t)

	if _, err := db.Exec(`SELECT * FROM missing_table`); err == nil {
		t.Fatal("expected error for missing table")
	}
	recs := handler.statements()
	if len(recs) == 0 {
		t.Fatal("no records for failing statement")
	}
	if _, ok := recs[len(recs)-1]["error"]; !ok {
		t.Error("error attribute missing on failing statement")
	}
}

func TestLoggingConnector_PingSucceeds(t *testing.T) {
	db, _ := openLogged(t)
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
