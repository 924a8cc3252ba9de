package postgres

import (
	"context"
	"fmt"

	"rulesaide/internal/store"
)

func (c *Client) ClearGrudges(ctx context.Context, victim string) (int64, error) {
	tag, err := c.pool.Exec(ctx, `DELETE FROM grudges WHERE victim_normalized = $1`, store.Normalize(victim))
	if err != nil {
		return 0, fmt.Errorf("clearing grudges: %w", err)
	}
	return tag.RowsAffected(), nil
}
