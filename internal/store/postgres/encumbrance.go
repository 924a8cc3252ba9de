package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

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
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (actor_normalized) DO UPDATE SET
    actor = EXCLUDED.actor,
    load = EXCLUDED.load,
    capacity = EXCLUDED.capacity,
    level = EXCLUDED.level,
    updated_at = EXCLUDED.updated_at
`
	_, err := c.pool.Exec(ctx, query,
		store.Normalize(snapshot.Actor),
		snapshot.Actor,
		snapshot.Load,
		snapshot.Capacity,
		snapshot.Level,
		updatedAt.UTC(),
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
WHERE actor_normalized = $1
`

	var snapshot store.EncumbranceSnapshot
	err := c.pool.QueryRow(ctx, query, store.Normalize(actor)).Scan(
		&snapshot.Actor,
		&snapshot.Load,
		&snapshot.Capacity,
		&snapshot.Level,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting encumbrance: %w", err)
	}
	return &snapshot, nil
}
