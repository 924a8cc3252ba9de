package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS grudges (
		id                TEXT PRIMARY KEY,
		victim            TEXT NOT NULL,
		victim_normalized TEXT NOT NULL,
		attacker          TEXT NOT NULL,
		amount            INTEGER NOT NULL,
		critical          INTEGER NOT NULL DEFAULT 0,
		source_message    TEXT DEFAULT '',
		recorded_at       TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS encumbrance (
		actor_normalized TEXT PRIMARY KEY,
		actor            TEXT NOT NULL,
		load             REAL NOT NULL,
		capacity         REAL NOT NULL,
		level            TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_grudges_victim ON grudges (victim_normalized);
	CREATE INDEX IF NOT EXISTS idx_grudges_victim_recorded ON grudges (victim_normalized, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_grudges_attacker ON grudges (attacker);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
