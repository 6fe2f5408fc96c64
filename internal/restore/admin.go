package restore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DatabaseAdmin runs the server-level statements around a restore.
type DatabaseAdmin interface {
	TerminateSessions(ctx context.Context, dbName string) (int64, error)
	DropDatabase(ctx context.Context, dbName string) error
	CreateDatabase(ctx context.Context, dbName, owner string) error
	CountTables(ctx context.Context) (int, error)
	Close() error
}

const (
	terminateSessionsQuery = `SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()`
	countTablesQuery       = `SELECT count(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`
)

// SQLAdmin implements DatabaseAdmin over database/sql with the pgx driver.
type SQLAdmin struct {
	db *sql.DB
}

// NewSQLAdmin wraps an open handle.
func NewSQLAdmin(db *sql.DB) *SQLAdmin {
	return &SQLAdmin{db: db}
}

// OpenAdmin connects to dsn and checks the connection.
func OpenAdmin(ctx context.Context, dsn string) (DatabaseAdmin, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	return NewSQLAdmin(db), nil
}

func (a *SQLAdmin) TerminateSessions(ctx context.Context, dbName string) (int64, error) {
	res, err := a.db.ExecContext(ctx, terminateSessionsQuery, dbName)
	if err != nil {
		return 0, fmt.Errorf("terminate sessions on %s: %w", dbName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count terminated sessions on %s: %w", dbName, err)
	}
	return n, nil
}

// DropDatabase drops dbName if it exists. Identifiers cannot be bound, so
// the name is quoted instead.
func (a *SQLAdmin) DropDatabase(ctx context.Context, dbName string) error {
	stmt := "DROP DATABASE IF EXISTS " + pgx.Identifier{dbName}.Sanitize()
	if _, err := a.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("drop database %s: %w", dbName, err)
	}
	return nil
}

func (a *SQLAdmin) CreateDatabase(ctx context.Context, dbName, owner string) error {
	stmt := "CREATE DATABASE " + pgx.Identifier{dbName}.Sanitize() + " OWNER " + pgx.Identifier{owner}.Sanitize()
	if _, err := a.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	return nil
}

// CountTables counts the base tables in the public schema of the connected database.
func (a *SQLAdmin) CountTables(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, countTablesQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return n, nil
}

func (a *SQLAdmin) Close() error {
	return a.db.Close()
}
