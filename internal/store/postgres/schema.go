package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All statements run in one implicit transaction; IF NOT EXISTS keeps
	// repeated runs idempotent.
	ddl := `
CREATE TABLE IF NOT EXISTS grudges (
    id                TEXT PRIMARY KEY,
    victim            TEXT NOT NULL,
    victim_normalized TEXT NOT NULL,
    attacker          TEXT NOT NULL,
    amount            INTEGER NOT NULL,
    critical          BOOLEAN NOT NULL DEFAULT FALSE,
    source_message    TEXT NOT NULL DEFAULT '',
    recorded_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS encumbrance (
    actor_normalized TEXT PRIMARY KEY,
    actor            TEXT NOT NULL,
    load             DOUBLE PRECISION NOT NULL,
    capacity         DOUBLE PRECISION NOT NULL,
    level            TEXT NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_grudges_victim ON grudges (victim_normalized);
CREATE INDEX IF NOT EXISTS idx_grudges_victim_recorded ON grudges (victim_normalized, recorded_at DESC);
CREATE INDEX IF NOT EXISTS idx_grudges_attacker ON grudges (attacker);
`

	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
