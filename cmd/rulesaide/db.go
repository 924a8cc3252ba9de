package main

import (
	"context"

	"rulesaide/internal/config"
	"rulesaide/internal/store"
	"rulesaide/internal/store/postgres"
	"rulesaide/internal/store/sqlite"
)

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	driver, err := store.DriverFor(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var db store.Store
	switch driver {
	case store.DriverPostgres:
		db, err = postgres.New(ctx, cfg.Database.DSN)
	default:
		db, err = sqlite.New(ctx, cfg.Database.DSN)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return db, nil
}
