// Package store persists the grudge damage log and encumbrance snapshots.
package store

import (
	"context"
	"fmt"
	"strings"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	RecordGrudge(ctx context.Context, g GrudgeInput) (*GrudgeEntry, error)
	ListGrudges(ctx context.Context, victim string, limit int) ([]GrudgeEntry, error)
	GrudgeTotals(ctx context.Context, victim string) ([]GrudgeTotal, error)
	ClearGrudges(ctx context.Context, victim string) (int64, error)

	SaveEncumbrance(ctx context.Context, snapshot EncumbranceSnapshot) error
	GetEncumbrance(ctx context.Context, actor string) (*EncumbranceSnapshot, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Driver names the backend selected by a DSN.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

func DriverFor(dsn string) (Driver, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database dsn scheme: %q", dsn)
	}
}

func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
