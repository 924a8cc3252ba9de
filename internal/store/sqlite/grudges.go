package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	recordedAt = recordedAt.UTC()

	entry := &store.GrudgeEntry{
		ID:            uuid.NewString(),
		Victim:        g.Victim,
		Attacker:      g.Attacker,
		Amount:        g.Amount,
		Critical:      g.Critical,
		SourceMessage: g.SourceMessage,
		RecordedAt:    recordedAt,
	}

	query := `
	INSERT INTO grudges (id, victim, victim_normalized, attacker, amount, critical, source_message, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.ExecContext(ctx, query,
		entry.ID,
		entry.Victim,
		store.Normalize(entry.Victim),
		entry.Attacker,
		entry.Amount,
		boolToInt(entry.Critical),
		entry.SourceMessage,
		recordedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("recording grudge: %w", err)
	}
	return entry, nil
}

func (c *Client) ListGrudges(ctx context.Context, victim string, limit int) ([]store.GrudgeEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
	SELECT id, victim, attacker, amount, critical, source_message, recorded_at
	FROM grudges
	WHERE victim_normalized = ?
	ORDER BY recorded_at DESC, id ASC
	LIMIT ?
	`

	rows, err := c.db.QueryContext(ctx, query, store.Normalize(victim), limit)
	if err != nil {
		return nil, fmt.Errorf("listing grudges: %w", err)
	}
	defer rows.Close()

	entries := make([]store.GrudgeEntry, 0)
	for rows.Next() {
		var e store.GrudgeEntry
		var critical int
		var recordedAt string
		if err := rows.Scan(&e.ID, &e.Victim, &e.Attacker, &e.Amount, &critical, &e.SourceMessage, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning grudge: %w", err)
		}
		e.Critical = critical != 0
		e.RecordedAt, err = time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
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
	SELECT attacker, SUM(amount), COUNT(*), SUM(critical)
	FROM grudges
	WHERE victim_normalized = ?
	GROUP BY attacker
	ORDER BY SUM(amount) DESC, attacker ASC
	`

	rows, err := c.db.QueryContext(ctx, query, store.Normalize(victim))
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

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
