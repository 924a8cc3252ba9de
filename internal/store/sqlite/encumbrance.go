package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rulesaide/internal/store"
)

func (c *Client) SaveEncumbrance(ctx context.Context, snapshot store.EncumbranceSnapshot) error {
	if strings.TrimSpace(snapshot.Actor) == "" {
		return fmt.Errorf("actor is required")
	}
	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = c.now()
	}

	query := `
	INSERT INTO encumbrance (actor_normalized, actor, load, capacity, level, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (actor_normalized) DO UPDATE SET
		actor = excluded.actor,
		load = excluded.load,
		capacity = excluded.capacity,
		level = excluded.level,
		updated_at = excluded.updated_at
	`
	_, err := c.db.ExecContext(ctx, query,
		store.Normalize(snapshot.Actor),
		snapshot.Actor,
		snapshot.Load,
		snapshot.Capacity,
		snapshot.Level,
		updatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving encumbrance: %w", err)
	}
	return nil
}

func (c *Client) GetEncumbrance(ctx context.Context, actor string) (*store.EncumbranceSnapshot, error) {
	query := `
	SELECT actor, load, capacity, level, updated_at
	FROM encumbrance
	WHERE actor_normalized = ?
	`

	var snapshot store.EncumbranceSnapshot
	var updatedAt string
	err := c.db.QueryRowContext(ctx, query, store.Normalize(actor)).Scan(
		&snapshot.Actor,
		&snapshot.Load,
		&snapshot.Capacity,
		&snapshot.Level,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting encumbrance: %w", err)
	}

	snapshot.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &snapshot, nil
}
