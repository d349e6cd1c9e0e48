package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// database/sql driver names registered by the imported drivers.
const (
	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

// Drivers lists the accepted driver names.
func Drivers() []string {
	return []string{DriverPgx, DriverPQ}
}

// Rows is the subset of *sql.Rows the describer decodes from.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Client runs catalog queries. Query must be safe for concurrent use.
type Client interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Close() error
}

// Opener opens a Client whose pool holds at most maxConns connections.
type Opener func(ctx context.Context, driver, dsn string, maxConns int) (Client, error)

type sqlClient struct {
	db *sql.DB
}

// Open establishes a database/sql pool and pings it to test the connection.
func Open(ctx context.Context, driver, dsn string, maxConns int) (Client, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return &sqlClient{db: db}, nil
}

func (c *sqlClient) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *sqlClient) Close() error {
	return c.db.Close()
}
