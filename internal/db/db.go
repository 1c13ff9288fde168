package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"airquality-server/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// memoryName names the shared-cache in-memory database so every pooled
// connection sees the same tables.
const memoryName = "airquality"

func Open(cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.SQLiteLogStatements {
		connector, err := NewLoggingConnector(dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("db connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		db, err = sql.Open(cfg.SQLiteDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	maxIdle, maxLifetime := cfg.SQLiteMaxIdleConns, cfg.SQLiteConnMaxLifetime
	// An in-memory database is dropped with its last connection, so the pool
	// must always keep one open.
	if isMemoryDSN(dsn) && (maxIdle < 1 || maxLifetime > 0) {
		logger.Warn("in-memory database keeps one connection open; ignoring pool settings",
			"maxIdleConns", maxIdle,
			"connMaxLifetime", maxLifetime,
		)
		maxIdle, maxLifetime = max(1, maxIdle), 0
	}

	if cfg.SQLiteMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.SQLiteMaxOpenConns)
	}
	if maxIdle >= 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == config.MemoryPath || strings.Contains(dsn, "mode=memory")
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.SQLiteDSN != "" {
		return cfg.SQLiteDSN, nil
	}

	params := []string{
		"_foreign_keys=on",
		"_busy_timeout=5000",
	}

	path := cfg.SQLitePath
	if path == "" || path == config.MemoryPath {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared&%s", memoryName, strings.Join(params, "&")), nil
	}

	// File-backed databases get WAL and a parent directory.
	params = append(params, "_journal_mode=WAL")

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
