package sqlite

import (
	"context"
	"fmt"

	"rulesaide/internal/store"
)

func (c *Client) ClearGrudges(ctx context.Context, victim string) (int64, error) {
	result, err := c.db.ExecContext(ctx, `DELETE FROM grudges WHERE victim_normalized = ?`, store.Normalize(victim))
	if err != nil {
		return 0, fmt.Errorf("clearing grudges: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return affected, nil
}
