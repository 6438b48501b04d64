package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

//go:embed schema.sql schema_mysql.sql
var schemaFS embed.FS

// Open connects to the row store and applies the schema for the dialect.
func Open(dialect, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db dsn is required")
	}

	driver, err := driverName(dialect)
	if err != nil {
		return nil, err
	}

	if driver == DialectMySQL {
		dsn, err = mysqlDSN(dsn)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DialectSQLite:
		// A single connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	case DialectMySQL:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := ApplySchema(context.Background(), db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func driverName(dialect string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", DialectSQLite, "sqlite3":
		return DialectSQLite, nil
	case DialectMySQL:
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("unsupported db dialect %q", dialect)
	}
}

// mysqlDSN forces parseTime so DATETIME columns scan into time.Time.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// ApplySchema creates the tables if they are missing.
func ApplySchema(ctx context.Context, db *sql.DB, dialect string) error {
	name := "schema.sql"
	if dialect == DialectMySQL {
		name = "schema_mysql.sql"
	}

	schemaSQL, err := schemaFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	// The mysql driver rejects multi-statement Exec unless the DSN opts in.
	for _, stmt := range splitStatements(string(schemaSQL)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	stmts := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			stmts = append(stmts, trimmed)
		}
	}
	return stmts
}
