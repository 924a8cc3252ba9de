package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rulesaide/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

// timeLayout keeps a fixed width so TEXT timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Client struct {
	db  *sql.DB
	now func() time.Time
}

func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if driverDSN == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db, now: time.Now}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
