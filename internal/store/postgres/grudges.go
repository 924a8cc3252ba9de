package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rulesaide/internal/store"
)

func (c *Client) RecordGrudge(ctx context.Context, g store.GrudgeInput) (*store.GrudgeEntry, error) {
	if strings.TrimSpace(g.Victim) == "" || strings.TrimSpace(g.Attacker) == "" {
		return nil, fmt.Errorf("victim and attacker are required")
	}
	recordedAt := g.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = c.now()
	}

	entry := &store.GrudgeEntry{
		ID:            uuid.NewString(),
		Victim:        g.Victim,
		Attacker:      g.Attacker,
		Amount:        g.Amount,
		Critical:      g.Critical,
		SourceMessage: g.SourceMessage,
		RecordedAt:    recordedAt.UTC(),
	}

	query := `
INSERT INTO grudges (id, victim, victim_normalized, attacker, amount, critical, source_message, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := c.pool.Exec(ctx, query,
		entry.ID,
		entry.Victim,
		store.Normalize(entry.Victim),
		entry.Attacker,
		entry.Amount,
		entry.Critical,
		entry.SourceMessage,
		entry.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("recording grudge: %w", err)
	}
	return entry, nil
}

func (c *Client) ListGrudges(ctx context.Context, victim string, limit int) ([]store.GrudgeEntry, error) {
	query := `
SELECT id, victim, attacker, amount, critical, source_message, recorded_at
FROM grudges
WHERE victim_normalized = $1
ORDER BY recorded_at DESC, id ASC
LIMIT NULLIF($2, 0)
`

	if limit < 0 {
		limit = 0
	}
	rows, err := c.pool.Query(ctx, query, store.Normalize(victim), limit)
	if err != nil {
		return nil, fmt.Errorf("listing grudges: %w", err)
	}
	defer rows.Close()

	entries := make([]store.GrudgeEntry, 0)
	for rows.Next() {
		var e store.GrudgeEntry
		if err := rows.Scan(&e.ID, &e.Victim, &e.Attacker, &e.Amount, &e.Critical, &e.SourceMessage, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning grudge: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grudges: %w", err)
	}
	return entries, nil
}

func (c *Client) GrudgeTotals(ctx context.Context, victim string) ([]store.GrudgeTotal, error) {
	query := `
SELECT attacker, SUM(amount)::int, COUNT(*)::int, COUNT(*) FILTER (WHERE critical)::int
FROM grudges
WHERE victim_normalized = $1
GROUP BY attacker
ORDER BY SUM(amount) DESC, attacker ASC
`

	rows, err := c.pool.Query(ctx, query, store.Normalize(victim))
	if err != nil {
		return nil, fmt.Errorf("totalling grudges: %w", err)
	}
	defer rows.Close()

	totals := make([]store.GrudgeTotal, 0)
	for rows.Next() {
		var total store.GrudgeTotal
		if err := rows.Scan(&total.Attacker, &total.Total, &total.Hits, &total.Criticals); err != nil {
			return nil, fmt.Errorf("scanning grudge total: %w", err)
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grudge totals: %w", err)
	}
	return totals, nil
}
